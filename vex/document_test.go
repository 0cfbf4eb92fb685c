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
	"testing"
)

func TestCVE_UnmarshalText(t *testing.T) {
	var cve CVE
	if err := cve.UnmarshalText([]byte("CVE-2023-6918")); err != nil {
		t.Error(err)
	}
	if cve != "CVE-2023-6918" {
		t.Errorf("UnmarshalText: Expected CVE-2023-6918, got %q", cve)
	}
	for _, bad := range []string{"CVE-23-6918", "cve-2023-6918", "GHSA-xxxx"} {
		if err := cve.UnmarshalText([]byte(bad)); err == nil {
			t.Errorf("UnmarshalText(%q): Expected error, got nil", bad)
		}
	}
}

func TestRemediationCategory_UnmarshalText(t *testing.T) {
	var rc RemediationCategory
	if err := rc.UnmarshalText([]byte("vendor_fix")); err != nil {
		t.Error(err)
	}
	if rc != RemediationCategoryVendorFix {
		t.Errorf("UnmarshalText: Expected vendor_fix, got %q", rc)
	}
	if err := rc.UnmarshalText([]byte("wishful_thinking")); err == nil {
		t.Error("UnmarshalText: Expected error, got nil")
	}
}

func TestLoadDocumentReader(t *testing.T) {
	doc, err := LoadDocumentReader(strings.NewReader(`{
		"document": {
			"category": "csaf_vex",
			"title": "t",
			"publisher": {"category": "vendor", "name": "n"},
			"tracking": {"id": "CVE-2023-6918"}
		},
		"vulnerabilities": [{
			"cve": "CVE-2023-6918",
			"remediations": [{"category": "workaround", "details": "d"}]
		}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Document == nil || doc.Document.Title == nil || *doc.Document.Title != "t" {
		t.Error("LoadDocumentReader: title not loaded")
	}
	if len(doc.Vulnerabilities) != 1 {
		t.Fatalf("LoadDocumentReader: Expected 1 vulnerability, got %d",
			len(doc.Vulnerabilities))
	}
}

func TestLoadDocumentReader_Invalid(t *testing.T) {
	for _, x := range []struct {
		name string
		doc  string
	}{
		{"no json", `this is not json`},
		{"missing document", `{"vulnerabilities": []}`},
		{"missing tracking", `{"document": {"category": "csaf_vex"}}`},
		{"remediation without details", `{
			"document": {
				"category": "csaf_vex",
				"tracking": {"id": "x"}
			},
			"vulnerabilities": [{
				"remediations": [{"category": "workaround"}]
			}]
		}`},
	} {
		if _, err := LoadDocumentReader(strings.NewReader(x.doc)); err == nil {
			t.Errorf("%s: Expected error, got nil", x.name)
		}
	}
}
