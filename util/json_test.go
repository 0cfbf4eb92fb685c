// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package util

import (
	"reflect"
	"testing"
	"time"
)

func TestPathEval_Eval(t *testing.T) {
	pathEval := NewPathEval()
	_, err := pathEval.Eval("foo", nil)
	if err == nil {
		t.Error("PathEval_Eval: Expected error, got nil")
	}
	got, err := pathEval.Eval("foo", map[string]any{"foo": 5})
	if err != nil {
		t.Error(err)
	}
	if got != 5 {
		t.Errorf("PathEval_Eval: Expected 5, got %v", got)
	}
}

func TestReMarshalMatcher(t *testing.T) {
	var intDst int
	var uintSrc uint = 2
	remarshalFunc := ReMarshalMatcher(&intDst)
	if err := remarshalFunc(uintSrc); err != nil {
		t.Error(err)
	}
	if intDst != 2 {
		t.Errorf("ReMarshalMatcher: Expected %v, got %v", uintSrc, intDst)
	}
}

func TestBoolMatcher(t *testing.T) {
	var boolDst bool
	boolFunc := BoolMatcher(&boolDst)
	if err := boolFunc(true); err != nil {
		t.Error(err)
	}

	if boolDst != true {
		t.Error("BoolMatcher: Expected true got false")
	}

	if err := boolFunc(1); err == nil {
		t.Error("BoolMatcher: Expected error, got nil")
	}
}

func TestStringMatcher(t *testing.T) {
	var stringDst string
	stringFunc := StringMatcher(&stringDst)
	if err := stringFunc("test"); err != nil {
		t.Error(err)
	}

	if stringDst != "test" {
		t.Errorf("StringMatcher: Expected test, got %v", stringDst)
	}

	if err := stringFunc(1); err == nil {
		t.Error("StringMatcher: Expected error, got nil")
	}
}

func TestStringsMatcher(t *testing.T) {
	var stringsDst []string
	stringsFunc := StringsMatcher(&stringsDst)
	if err := stringsFunc([]any{"a", 1, "b"}); err != nil {
		t.Error(err)
	}

	want := []string{"a", "b"}
	if !reflect.DeepEqual(stringsDst, want) {
		t.Errorf("StringsMatcher: Expected %v, got %v", want, stringsDst)
	}

	if err := stringsFunc(1); err == nil {
		t.Error("StringsMatcher: Expected error, got nil")
	}
}

func TestStringTreeMatcher(t *testing.T) {
	var stringTreeDst string
	stringTreeFunc := StringTreeMatcher(&stringTreeDst)
	if err := stringTreeFunc([]any{[]any{"a"}, "b"}); err != nil {
		t.Error(err)
	}

	if stringTreeDst != "a" {
		t.Errorf("StringTreeMatcher: Expected a, got %v", stringTreeDst)
	}

	if err := stringTreeFunc([]any{1, 2}); err == nil {
		t.Error("StringTreeMatcher: Expected error, got nil")
	}
}

func TestTimeMatcher(t *testing.T) {
	var timeDst time.Time
	timeFunc := TimeMatcher(&timeDst, time.RFC3339)
	if err := timeFunc("2024-03-18T12:57:48.236Z"); err != nil {
		t.Error(err)
	}
	wantTime := time.Date(2024, time.March, 18, 12, 57, 48, 236_000_000, time.UTC)
	if timeDst != wantTime {
		t.Errorf("TimeMatcher: Expected %v, got %v", wantTime, timeDst)
	}

	if err := timeFunc(""); err == nil {
		t.Error("TimeMatcher: Expected error, got nil")
	}

	if err := timeFunc(1); err == nil {
		t.Error("TimeMatcher: Expected error, got nil")
	}
}

func TestPathEval_Extract(t *testing.T) {
	pathEval := NewPathEval()
	var result string
	matcher := StringMatcher(&result)
	if err := pathEval.Extract("foo", matcher, true, map[string]any{"foo": "bar"}); err != nil {
		t.Error(err)
	}
	if result != "bar" {
		t.Errorf("PathEval_Extract: Expected bar, got %v", result)
	}
}

func TestPathEval_Match(t *testing.T) {
	var got string
	doc := map[string]any{"foo": "bar"}

	pe := NewPathEval()
	pem := PathEvalMatcher{Expr: "foo", Action: StringMatcher(&got)}

	if err := pe.Match([]PathEvalMatcher{pem}, doc); err != nil {
		t.Error(err)
	}
	if got != "bar" {
		t.Errorf("PathEval_Match: Expected bar, got %v", got)
	}
}
