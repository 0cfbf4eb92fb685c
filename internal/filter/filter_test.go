// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package filter

import (
	"reflect"
	"testing"
)

// TestNewPatternMatcher tests if NewPatternMatcher recognizes
// whether a set of sample regular expressions is valid
func TestNewPatternMatcher(t *testing.T) {
	var regex []string
	if pm, err := NewPatternMatcher(regex); pm == nil || err != nil {
		t.Errorf("Failure: Did not compile valid regex pattern")
	}
	regex = append(regex, "++")
	if pm, err := NewPatternMatcher(regex); pm != nil || err == nil {
		t.Errorf("Failure: No error returned at invalid compile pattern")
	}
}

// TestMatches tests if Matches returns whether a given string
// matches a sample of the expressions correctly.
func TestMatches(t *testing.T) {
	regex := []string{"a"}
	pm, _ := NewPatternMatcher(regex)
	if !pm.Matches("a") {
		t.Errorf("Failure: Did not match two identical strings")
	}
	if pm.Matches("b") {
		t.Errorf("Failure: Matched two non-matching strings")
	}
}

// TestReject tests if Reject drops the matching entries
// and keeps the order of the survivors.
func TestReject(t *testing.T) {
	pm, err := NewPatternMatcher([]string{`\.src$`, `\.noarch$`})
	if err != nil {
		t.Fatal(err)
	}
	got := pm.Reject([]string{
		"kernel-0:5.14.0.src",
		"kernel-0:5.14.0.x86_64",
		"kernel-doc-0:5.14.0.noarch",
		"kernel-0:5.14.0.aarch64",
	})
	want := []string{
		"kernel-0:5.14.0.x86_64",
		"kernel-0:5.14.0.aarch64",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Failure: Expected %v got %v", want, got)
	}
}
