// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

// UnresolvedProduct is returned by Resolve for product ids which are
// referenced in the document but have no product_name entry in the
// product tree. Observed vendor documents do contain such gaps.
const UnresolvedProduct = "unknown product"

// ProductIndex maps product ids to their human readable names.
// It is built once from the product tree and read-only afterwards.
type ProductIndex struct {
	ids   []ProductID
	names map[ProductID]string
}

// NewProductIndex builds a ProductIndex from a product tree.
// The branches are walked depth-first in branch-array order with an
// explicit stack, as the nesting depth varies between documents.
// Only leaf branches with the category "product_name" contribute an
// entry; intermediate branches exist purely for grouping.
// A nil tree yields an empty index.
func NewProductIndex(pt *ProductTree) *ProductIndex {
	pi := &ProductIndex{names: map[ProductID]string{}}
	if pt == nil {
		return pi
	}

	stack := make(Branches, len(pt.Branches))
	for i, b := range pt.Branches {
		// Reversed so that popping restores document order.
		stack[len(pt.Branches)-1-i] = b
	}

	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b == nil {
			continue
		}
		if b.Category != nil && *b.Category == BranchCategoryProductName {
			if p := b.Product; p != nil && p.ProductID != nil && p.Name != nil {
				pi.add(*p.ProductID, *p.Name)
			}
		}
		for i := len(b.Branches) - 1; i >= 0; i-- {
			stack = append(stack, b.Branches[i])
		}
	}

	return pi
}

func (pi *ProductIndex) add(id ProductID, name string) {
	if _, ok := pi.names[id]; !ok {
		pi.ids = append(pi.ids, id)
	}
	pi.names[id] = name
}

// Lookup returns the name registered for the given product id.
func (pi *ProductIndex) Lookup(id ProductID) (string, bool) {
	name, ok := pi.names[id]
	return name, ok
}

// Resolve returns the name registered for the given product id or
// the explicit UnresolvedProduct sentinel if there is none.
func (pi *ProductIndex) Resolve(id ProductID) string {
	if name, ok := pi.names[id]; ok {
		return name
	}
	return UnresolvedProduct
}

// Len returns the number of indexed products.
func (pi *ProductIndex) Len() int {
	return len(pi.ids)
}

// IDs returns the indexed product ids in insertion order.
func (pi *ProductIndex) IDs() []ProductID {
	ids := make([]ProductID, len(pi.ids))
	copy(ids, pi.ids)
	return ids
}

// Unresolved returns the subset of the given ids which cannot be
// resolved by this index, in the order given. Useful for diagnostics.
func (pi *ProductIndex) Unresolved(ids []ProductID) []ProductID {
	var missing []ProductID
	for _, id := range ids {
		if _, ok := pi.names[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
