// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"strings"

	"github.com/csaf-poc/vex_reader/util"
)

const (
	titleExpr        = `$.document.title`
	publisherExpr    = `$.document.publisher.name`
	severityExpr     = `$.document.aggregate_severity.text`
	distributionExpr = `$.document.distribution.text`

	cveExpr         = `$.vulnerabilities[0].cve`
	releaseDateExpr = `$.vulnerabilities[0].release_date`
	cweIDExpr       = `$.vulnerabilities[0].cwe.id`
	cweNameExpr     = `$.vulnerabilities[0].cwe.name`
	referencesExpr  = `$.vulnerabilities[0].references[*].url`
	notesExpr       = `$.vulnerabilities[0].notes`
	idsExpr         = `$.vulnerabilities[0].ids[? @.system_name=="Red Hat Bugzilla ID"].text`
	acksExpr        = `$.vulnerabilities[0].acknowledgments`
	cvss3Expr       = `$.vulnerabilities[0].scores[0].cvss_v3`
	cvss2Expr       = `$.vulnerabilities[0].scores[0].cvss_v2`
)

// DocumentSummary is a summary of the essentials of a VEX document
// used by the report rendering.
type DocumentSummary struct {
	CVE              string
	Title            string
	Publisher        string
	Severity         string
	ReleaseDate      string
	Distribution     string
	BugzillaID       string
	CWEID            string
	CWEName          string
	Statement        string
	Notes            map[string]string
	References       []string
	Acknowledgements []string

	// CVSS3 and CVSS2 carry the vendor supplied global score,
	// at most one of them is set.
	CVSS3 *CVSS3
	CVSS2 *CVSS2
}

// CVSSType returns "v3", "v2" or "" depending on which global score
// the document carries.
func (ds *DocumentSummary) CVSSType() string {
	switch {
	case ds.CVSS3 != nil:
		return "v3"
	case ds.CVSS2 != nil:
		return "v2"
	}
	return ""
}

// NewDocumentSummary creates a summary from a generic decoded VEX
// document with the help of an expression evaluator.
func NewDocumentSummary(
	eval *util.PathEval,
	doc any,
) (*DocumentSummary, error) {

	ds := &DocumentSummary{Notes: map[string]string{}}

	// Most fields are optional in the wild, so extraction errors on
	// single expressions only leave the field empty.
	matchers := []util.PathEvalMatcher{
		{Expr: titleExpr, Action: util.StringMatcher(&ds.Title), Optional: true},
		{Expr: publisherExpr, Action: util.StringMatcher(&ds.Publisher), Optional: true},
		{Expr: severityExpr, Action: util.StringMatcher(&ds.Severity), Optional: true},
		{Expr: distributionExpr, Action: util.StringMatcher(&ds.Distribution), Optional: true},
		{Expr: cveExpr, Action: util.StringMatcher(&ds.CVE), Optional: true},
		{Expr: releaseDateExpr, Action: util.StringMatcher(&ds.ReleaseDate), Optional: true},
		{Expr: cweIDExpr, Action: util.StringMatcher(&ds.CWEID), Optional: true},
		{Expr: cweNameExpr, Action: util.StringMatcher(&ds.CWEName), Optional: true},
		{Expr: idsExpr, Action: util.StringTreeMatcher(&ds.BugzillaID), Optional: true},
		{Expr: referencesExpr, Action: util.StringsMatcher(&ds.References), Optional: true},
		{Expr: notesExpr, Action: ds.extractNotes, Optional: true},
		{Expr: acksExpr, Action: ds.extractAcknowledgements, Optional: true},
	}

	if err := eval.Match(matchers, doc); err != nil {
		return nil, err
	}

	// Prefer the v3 score, fall back to v2.
	var cvss3 CVSS3
	if err := eval.Extract(cvss3Expr, util.ReMarshalMatcher(&cvss3), true, doc); err == nil &&
		cvss3.BaseScore != nil {
		ds.CVSS3 = &cvss3
	} else {
		var cvss2 CVSS2
		if err := eval.Extract(cvss2Expr, util.ReMarshalMatcher(&cvss2), true, doc); err == nil &&
			cvss2.BaseScore != nil {
			ds.CVSS2 = &cvss2
		}
	}

	return ds, nil
}

// extractNotes sorts the notes of the first vulnerability into the
// Notes map by category and pulls out a statement note if present.
func (ds *DocumentSummary) extractNotes(x any) error {
	var notes Notes
	if err := util.ReMarshalJSON(&notes, x); err != nil {
		return err
	}
	for _, note := range notes {
		if note == nil || note.Category == nil || note.Text == nil {
			continue
		}
		if *note.Category == NoteCategoryOther &&
			note.Title != nil && *note.Title == "Statement" {
			ds.Statement = *note.Text
			continue
		}
		ds.Notes[string(*note.Category)] = *note.Text
	}
	return nil
}

// extractAcknowledgements formats the acknowledgments of the first
// vulnerability as "names (organization)" strings.
func (ds *DocumentSummary) extractAcknowledgements(x any) error {
	var acks []struct {
		Names        []string `json:"names"`
		Organization string   `json:"organization"`
		Summary      string   `json:"summary"`
	}
	if err := util.ReMarshalJSON(&acks, x); err != nil {
		return err
	}
	for _, ack := range acks {
		s := strings.Join(ack.Names, ", ")
		switch {
		case s != "" && ack.Organization != "":
			s += " (" + ack.Organization + ")"
		case s == "":
			s = ack.Organization
		}
		if s == "" {
			s = ack.Summary
		}
		if s != "" {
			ds.Acknowledgements = append(ds.Acknowledgements, s)
		}
	}
	return nil
}
