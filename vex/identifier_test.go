// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"errors"
	"testing"
)

func TestSplitProductID(t *testing.T) {
	for _, x := range []struct {
		id        string
		product   ProductID
		component string
	}{
		{
			"AppStream-9.2.0.Z.MAIN:libssh-0:0.10.4-2.el9",
			"AppStream-9.2.0.Z.MAIN",
			"libssh-0:0.10.4-2.el9",
		},
		{
			"product:component:1.0:extra",
			"product",
			"component:1.0:extra",
		},
		{"p:c", "p", "c"},
	} {
		product, component, err := SplitProductID(x.id)
		if err != nil {
			t.Errorf("SplitProductID(%q): unexpected error %v", x.id, err)
			continue
		}
		if product != x.product || component != x.component {
			t.Errorf("SplitProductID(%q): Expected (%q, %q), got (%q, %q)",
				x.id, x.product, x.component, product, component)
		}
	}
}

func TestSplitProductID_Malformed(t *testing.T) {
	for _, id := range []string{
		"",
		"no-colon-at-all",
		":component",
		"product:",
	} {
		_, _, err := SplitProductID(id)
		if err == nil {
			t.Errorf("SplitProductID(%q): Expected error, got nil", id)
			continue
		}
		var mie *MalformedIdentifierError
		if !errors.As(err, &mie) {
			t.Errorf("SplitProductID(%q): Expected MalformedIdentifierError, got %T", id, err)
			continue
		}
		if mie.ID != id {
			t.Errorf("SplitProductID(%q): Expected id %q in error, got %q", id, id, mie.ID)
		}
	}
}
