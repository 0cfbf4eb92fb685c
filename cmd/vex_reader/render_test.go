// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/csaf-poc/vex_reader/nvd"
	"github.com/csaf-poc/vex_reader/vex"
)

func TestReportWrite(t *testing.T) {
	score := 3.7
	vector := "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:N/I:N/A:L"
	attackVector := "NETWORK"

	rep := &report{
		Summary: &vex.DocumentSummary{
			CVE:         "CVE-2023-6918",
			Title:       "libssh: misuse of code",
			Publisher:   "Red Hat Product Security",
			Severity:    "Low",
			ReleaseDate: "2023-12-18T00:00:00+00:00",
			BugzillaID:  "2254997",
			CWEID:       "CWE-252",
			CWEName:     "Unchecked Return Value",
			Statement:   "The libssh library rarely checks...",
			Notes: map[string]string{
				"summary": "A flaw was found in libssh.",
			},
			References: []string{
				"https://access.redhat.com/security/cve/CVE-2023-6918",
			},
			Acknowledgements: []string{"Jack Weinstein (libssh upstream)"},
			CVSS3: &vex.CVSS3{
				BaseScore:    &score,
				VectorString: &vector,
				AttackVector: &attackVector,
			},
		},
		Packages: &vex.Packages{
			Fixes: []vex.Fix{{
				ID:         "RHSA-2024:0001",
				Vendor:     "Red Hat",
				URL:        "https://access.redhat.com/errata/RHSA-2024:0001",
				Product:    "Red Hat Enterprise Linux 9",
				Components: []string{"libssh-0:0.10.4-2.el9", "libssh-0:0.10.4-2.el9"},
			}},
			WontFix: []vex.WontFix{{
				Product:   "Red Hat Enterprise Linux 8",
				Component: "libssh",
				Reason:    "Out of support scope",
			}},
			NotAffected: []vex.NotAffected{{
				Product:    "Red Hat Enterprise Linux 9",
				Components: []string{"libssh2-0:1.11.0"},
			}},
		},
		NVD: &nvd.CVSSData{
			Version:      "3.1",
			VectorString: vector,
			BaseScore:    3.7,
			AttackVector: "NETWORK",
		},
		ShowComponents: true,
	}

	var buf bytes.Buffer
	if err := rep.write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"CVE-2023-6918",
		"Impact    : Low",
		"CVSS Score: 3.7",
		"A flaw was found in libssh.",
		"The libssh library rarely checks...",
		"Bugzilla: 2254997",
		"CWE-252",
		"Red Hat affected packages and issued errata",
		"RHSA-2024:0001 -- Red Hat Enterprise Linux 9",
		"Packages that are not affected",
		"Affected packages without fixes",
		"Out of support scope",
		"CVSS v3 Vector",
		vector,
		"Attack Vector",
		"Network",
		"Jack Weinstein (libssh upstream)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report: missing %q in output:\n%s", want, out)
		}
	}

	// Components of one fix are deduplicated.
	if strings.Count(out, "libssh-0:0.10.4-2.el9") != 1 {
		t.Errorf("report: components not deduplicated:\n%s", out)
	}
}
