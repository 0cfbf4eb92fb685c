// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"fmt"
	"strings"
)

// MalformedIdentifierError is returned when a composite product
// identifier does not split into a product and a component segment.
// It aborts the classification of the whole document as silently
// dropped identifiers would produce misleading reports.
type MalformedIdentifierError struct {
	ID string
}

// Error implements the error interface.
func (mie *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed product identifier %q", mie.ID)
}

// SplitProductID decomposes a composite identifier of the form
// "product_id:component:version" into the product id and the component
// spec. Only the first colon separates; the remainder is rejoined as
// component specs may legitimately contain further colons (epochs,
// "name:version:arch" triples etc.).
func SplitProductID(id string) (ProductID, string, error) {
	product, component, found := strings.Cut(id, ":")
	if !found || product == "" || component == "" {
		return "", "", &MalformedIdentifierError{ID: id}
	}
	return ProductID(product), component, nil
}
