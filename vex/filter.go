// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"github.com/csaf-poc/vex_reader/internal/filter"
)

// DefaultComponentPatterns match composite identifiers whose component
// denotes a source package distribution artifact or a pure architecture
// marker. Such entries are noise inherited from how vendors enumerate
// package sets; they do not name anything a consumer would install.
var DefaultComponentPatterns = []string{
	`\.src$`,
	`\.noarch$`,
	`\.x86_64$`,
	`\.i686$`,
	`\.aarch64$`,
	`\.ppc64le$`,
	`\.s390x$`,
}

// ComponentFilter drops composite identifiers matching a configured
// deny list. The rules are vendor-convention driven and pluggable,
// not hard-coded per vendor.
type ComponentFilter struct {
	deny filter.PatternMatcher
}

// NewComponentFilter compiles a ComponentFilter from a deny list of
// regular expressions.
func NewComponentFilter(patterns []string) (*ComponentFilter, error) {
	pm, err := filter.NewPatternMatcher(patterns)
	if err != nil {
		return nil, err
	}
	return &ComponentFilter{deny: pm}, nil
}

// DefaultComponentFilter returns a filter with the default deny list.
func DefaultComponentFilter() *ComponentFilter {
	cf, err := NewComponentFilter(DefaultComponentPatterns)
	if err != nil {
		panic(err)
	}
	return cf
}

// Filter returns the identifiers surviving the deny list in their
// original order. A nil filter keeps everything.
func (cf *ComponentFilter) Filter(ids []string) []string {
	if cf == nil {
		return ids
	}
	return cf.deny.Reject(ids)
}

// strings converts a Products list into plain identifier strings,
// skipping nil entries.
func (ps *Products) strings() []string {
	if ps == nil {
		return nil
	}
	ids := make([]string, 0, len(*ps))
	for _, p := range *ps {
		if p != nil {
			ids = append(ids, string(*p))
		}
	}
	return ids
}
