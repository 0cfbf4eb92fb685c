// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import "strings"

// VendorAdvisory connects a marker found in vendor fix URLs with the
// name of the issuing vendor. If PrefixID is set the marker itself is
// part of the advisory id naming convention and is prepended to the
// last URL segment, as that segment alone is ambiguous (e.g. Gentoo's
// "202401-13").
type VendorAdvisory struct {
	Marker   string `toml:"marker"`
	Vendor   string `toml:"vendor"`
	PrefixID bool   `toml:"prefix_id"`
}

// VendorAdvisories is an ordered lookup table of VendorAdvisory
// entries. The first matching marker wins.
type VendorAdvisories []VendorAdvisory

// DefaultVendorAdvisories are the vendor advisory conventions known
// from observed VEX documents. New vendors are additive.
func DefaultVendorAdvisories() VendorAdvisories {
	return VendorAdvisories{
		{Marker: "RHSA", Vendor: "Red Hat"},
		{Marker: "RHBA", Vendor: "Red Hat"},
		{Marker: "GLSA", Vendor: "Gentoo", PrefixID: true},
		{Marker: "DSA", Vendor: "Debian"},
		{Marker: "USN", Vendor: "Ubuntu"},
		{Marker: "FEDORA", Vendor: "Fedora"},
		{Marker: "SUSE-SU", Vendor: "SUSE"},
		{Marker: "openSUSE-SU", Vendor: "openSUSE"},
	}
}

// Match looks up the vendor entry whose marker occurs in the given
// advisory URL.
func (vas VendorAdvisories) Match(url string) (VendorAdvisory, bool) {
	for _, va := range vas {
		if strings.Contains(url, va.Marker) {
			return va, true
		}
	}
	return VendorAdvisory{}, false
}

// AdvisoryID derives the advisory id and vendor name from a vendor fix
// URL. Most advisories carry their name as the last URL segment; for
// PrefixID vendors the marker is prepended. If no marker matches the
// raw last segment and an empty vendor are returned.
func (vas VendorAdvisories) AdvisoryID(url string) (id, vendor string) {
	segments := strings.Split(url, "/")
	id = segments[len(segments)-1]
	va, ok := vas.Match(url)
	if !ok {
		return id, ""
	}
	if va.PrefixID {
		id = va.Marker + "-" + id
	}
	return id, va.Vendor
}
