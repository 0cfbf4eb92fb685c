// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package util

// Set is a simple set type.
type Set[K comparable] map[K]struct{}

// Contains returns if the set contains a given key or not.
func (s Set[K]) Contains(k K) bool {
	_, found := s[k]
	return found
}

// Add adds a key to the set.
func (s Set[K]) Add(k K) {
	s[k] = struct{}{}
}

// Keys returns the keys of the set.
func (s Set[K]) Keys() []K {
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Deduplicate returns the given list with later duplicates removed,
// preserving the order of first occurrence.
func Deduplicate[K comparable](list []K) []K {
	seen := Set[K]{}
	out := make([]K, 0, len(list))
	for _, k := range list {
		if !seen.Contains(k) {
			seen.Add(k)
			out = append(out, k)
		}
	}
	return out
}
