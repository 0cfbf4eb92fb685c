// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/csaf-poc/vex_reader/nvd"
	"github.com/csaf-poc/vex_reader/util"
	"github.com/csaf-poc/vex_reader/vex"
)

// report renders the normalized view of a VEX document.
type report struct {
	Summary        *vex.DocumentSummary
	Packages       *vex.Packages
	NVD            *nvd.CVSSData
	ShowComponents bool
}

// write writes the whole report to w.
func (r *report) write(w io.Writer) error {
	s := r.Summary

	fmt.Fprintln(w, s.CVE)
	fmt.Fprintln(w, strings.Repeat("-", len(s.CVE)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Public on : %s\n", s.ReleaseDate)
	if s.Severity != "" {
		fmt.Fprintf(w, "Impact    : %s\n", s.Severity)
	}
	if score, ok := r.vendorScore(); ok {
		fmt.Fprintf(w, "CVSS Score: %v\n", score)
	}
	fmt.Fprintln(w)

	for _, category := range []string{
		"summary", "description", "general", "legal_disclaimer",
	} {
		if text, ok := s.Notes[category]; ok {
			fmt.Fprintln(w, text)
			fmt.Fprintln(w)
		}
	}

	if s.Statement != "" {
		fmt.Fprintln(w, "Statement")
		fmt.Fprintf(w, "  %s\n\n", s.Statement)
	}

	r.writeMitigations(w)
	r.writeReferences(w)
	r.writePackages(w)
	r.writeScores(w)

	if len(s.Acknowledgements) > 0 {
		fmt.Fprintln(w, "Acknowledgements")
		for _, ack := range s.Acknowledgements {
			fmt.Fprintf(w, "  %s\n", ack)
		}
		fmt.Fprintln(w)
	}

	if s.Distribution != "" {
		fmt.Fprintln(w, s.Distribution)
	}
	return nil
}

func (r *report) writeMitigations(w io.Writer) {
	if len(r.Packages.Mitigations) == 0 {
		return
	}
	fmt.Fprintln(w, "Mitigation")
	if len(r.Packages.Mitigations) > 1 {
		fmt.Fprintln(w, "**WARNING**: MORE THAN ONE MITIGATION DISCOVERED!")
	}
	for _, m := range r.Packages.Mitigations {
		fmt.Fprintln(w, m.Details)
	}
	fmt.Fprintln(w)
}

func (r *report) writeReferences(w io.Writer) {
	s := r.Summary

	var refs []string
	if s.BugzillaID != "" {
		refs = append(refs, fmt.Sprintf("  Bugzilla: %s", s.BugzillaID))
	}
	if s.CWEID != "" {
		refs = append(refs, fmt.Sprintf("  %s : %s", s.CWEID, s.CWEName))
	}
	if len(refs) > 0 {
		fmt.Fprintln(w, "Additional Information")
		for _, ref := range refs {
			fmt.Fprintln(w, ref)
		}
		fmt.Fprintln(w)
	}

	if len(s.References) > 0 {
		fmt.Fprintln(w, "External References")
		for _, url := range s.References {
			fmt.Fprintf(w, "  %s\n", url)
		}
		fmt.Fprintln(w)
	}
}

func (r *report) writePackages(w io.Writer) {
	pkgs := r.Packages

	if len(pkgs.Fixes) > 0 {
		fmt.Fprintf(w, "%s affected packages and issued errata\n", r.publisher())
		for _, fix := range pkgs.Fixes {
			fmt.Fprintf(w, "  %s -- %s\n", fix.ID, fix.Product)
			if r.ShowComponents {
				for _, c := range util.Deduplicate(fix.Components) {
					fmt.Fprintf(w, "             %s\n", c)
				}
			}
		}
		fmt.Fprintln(w)
	}

	if len(pkgs.Workarounds) > 0 {
		fmt.Fprintln(w, "Workarounds")
		for _, wa := range pkgs.Workarounds {
			fmt.Fprintf(w, "  %s\n", wa.Details)
		}
		fmt.Fprintln(w)
	}

	if len(pkgs.NotAffected) > 0 {
		fmt.Fprintln(w, "Packages that are not affected")
		for _, na := range pkgs.NotAffected {
			fmt.Fprintf(w, "  %s (%s)\n", na.Product, strings.Join(na.Components, ", "))
		}
		fmt.Fprintln(w)
	}

	if len(pkgs.WontFix) > 0 {
		fmt.Fprintln(w, "Affected packages without fixes")
		for _, wf := range pkgs.WontFix {
			fmt.Fprintf(w, "  %s (%s): %s\n", wf.Product, wf.Component, wf.Reason)
		}
		fmt.Fprintln(w)
	}

	if len(pkgs.Affected) > 0 {
		fmt.Fprintln(w, "Packages known to be affected")
		for _, a := range pkgs.Affected {
			fmt.Fprintf(w, "  %s (%s)\n", a.Product, strings.Join(a.Components, ", "))
		}
		fmt.Fprintln(w)
	}
}

// vendorScore returns the vendor supplied base score if any.
func (r *report) vendorScore() (float64, bool) {
	s := r.Summary
	switch {
	case s.CVSS3 != nil && s.CVSS3.BaseScore != nil:
		return *s.CVSS3.BaseScore, true
	case s.CVSS2 != nil && s.CVSS2.BaseScore != nil:
		return *s.CVSS2.BaseScore, true
	}
	return 0, false
}

// publisher returns a short form of the publisher name.
func (r *report) publisher() string {
	// The Red Hat VEX publisher is "Red Hat Product Security" which
	// reads odd in the report.
	if r.Summary.Publisher == "Red Hat Product Security" {
		return "Red Hat"
	}
	if r.Summary.Publisher == "" {
		return "Unknown"
	}
	return r.Summary.Publisher
}

// writeScores renders the CVSS vector and the side by side breakdown
// of the vendor and the NVD metrics.
func (r *report) writeScores(w io.Writer) {
	s := r.Summary
	cvssType := s.CVSSType()
	if cvssType == "" {
		return
	}

	publisher := r.publisher()

	fmt.Fprintf(w, "CVSS %s Vector\n", cvssType)
	fmt.Fprintf(w, "  %s: %s\n", publisher, r.vendorVector())
	if r.NVD != nil {
		fmt.Fprintf(w, "  NVD: %s\n", r.NVD.VectorString)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "CVSS %s Score Breakdown\n", cvssType)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "  \t%s\tNVD\n", publisher)

	nvdValue := func(get func(*nvd.CVSSData) string) string {
		if r.NVD == nil {
			return ""
		}
		return get(r.NVD)
	}
	row := func(label string, vendor *string, get func(*nvd.CVSSData) string) {
		// Not all VEX break down the metrics.
		if vendor == nil {
			return
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			label, capitalize(*vendor), capitalize(nvdValue(get)))
	}

	if c := s.CVSS3; c != nil {
		if c.BaseScore != nil {
			fmt.Fprintf(tw, "  CVSS v3 Base Score\t%v\t%s\n",
				*c.BaseScore, nvdValue(func(n *nvd.CVSSData) string {
					return fmt.Sprintf("%v", n.BaseScore)
				}))
		}
		row("Attack Vector", c.AttackVector,
			func(n *nvd.CVSSData) string { return n.AttackVector })
		row("Attack Complexity", c.AttackComplexity,
			func(n *nvd.CVSSData) string { return n.AttackComplexity })
		row("Privileges Required", c.PrivilegesRequired,
			func(n *nvd.CVSSData) string { return n.PrivilegesRequired })
		row("User Interaction", c.UserInteraction,
			func(n *nvd.CVSSData) string { return n.UserInteraction })
		row("Scope", c.Scope,
			func(n *nvd.CVSSData) string { return n.Scope })
		row("Confidentiality Impact", c.ConfidentialityImpact,
			func(n *nvd.CVSSData) string { return n.ConfidentialityImpact })
		row("Integrity Impact", c.IntegrityImpact,
			func(n *nvd.CVSSData) string { return n.IntegrityImpact })
		row("Availability Impact", c.AvailabilityImpact,
			func(n *nvd.CVSSData) string { return n.AvailabilityImpact })
	} else if c := s.CVSS2; c != nil {
		if c.BaseScore != nil {
			fmt.Fprintf(tw, "  CVSS v2 Base Score\t%v\t%s\n",
				*c.BaseScore, nvdValue(func(n *nvd.CVSSData) string {
					return fmt.Sprintf("%v", n.BaseScore)
				}))
		}
		row("Access Vector", c.AccessVector,
			func(n *nvd.CVSSData) string { return n.AccessVector })
		row("Access Complexity", c.AccessComplexity,
			func(n *nvd.CVSSData) string { return n.AccessComplexity })
		row("Authentication", c.Authentication,
			func(n *nvd.CVSSData) string { return n.Authentication })
		row("Confidentiality Impact", c.ConfidentialityImpact,
			func(n *nvd.CVSSData) string { return n.ConfidentialityImpact })
		row("Integrity Impact", c.IntegrityImpact,
			func(n *nvd.CVSSData) string { return n.IntegrityImpact })
		row("Availability Impact", c.AvailabilityImpact,
			func(n *nvd.CVSSData) string { return n.AvailabilityImpact })
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// vendorVector returns the vendor supplied vector string.
func (r *report) vendorVector() string {
	s := r.Summary
	switch {
	case s.CVSS3 != nil && s.CVSS3.VectorString != nil:
		return *s.CVSS3.VectorString
	case s.CVSS2 != nil && s.CVSS2.VectorString != nil:
		return *s.CVSS2.VectorString
	}
	return ""
}

// capitalize upper cases the first rune of a word.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
