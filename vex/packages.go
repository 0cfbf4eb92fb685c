// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

// Record is the common interface of the classification record variants
// Fix, Workaround, Mitigation, WontFix, Affected and NotAffected.
// The set of implementations is closed so callers can switch over the
// concrete types exhaustively.
type Record interface {
	record()
}

// Fix is an advisory issued by a vendor fixing one or more components
// of a product.
type Fix struct {
	// ID is the advisory id derived from the URL.
	ID string
	// Vendor is the name of the issuing vendor, empty if unknown.
	Vendor string
	// URL is the location of the advisory.
	URL string
	// Product is the resolved product name.
	Product string
	// Components are the fixed "component:version" specs.
	Components []string
}

// Workaround describes how to lessen the impact without a fix.
type Workaround struct {
	// Details is the vendor supplied free text.
	Details string
	// Products are the resolved product names.
	Products []string
	// Components are the affected "component:version" specs.
	Components []string
}

// Mitigation is a vendor supplied instruction to reduce exposure.
type Mitigation struct {
	// Details is the vendor supplied free text, often Markdown.
	Details string
	// Products are the resolved product names.
	Products []string
}

// WontFix is a component the vendor declined to fix.
type WontFix struct {
	// Product is the resolved product name.
	Product string
	// Component is the affected component spec.
	Component string
	// Reason is the free text the vendor gave for not fixing.
	Reason string
}

// Affected is a product with components known to be affected and no
// remediation recorded.
type Affected struct {
	// Product is the resolved product name.
	Product string
	// Components are the affected "component:version" specs.
	Components []string
}

// NotAffected is a product with components confirmed unaffected.
type NotAffected struct {
	// Product is the resolved product name.
	Product string
	// Components are the unaffected "component:version" specs.
	Components []string
}

func (Fix) record()         {}
func (Workaround) record()  {}
func (Mitigation) record()  {}
func (WontFix) record()     {}
func (Affected) record()    {}
func (NotAffected) record() {}

// Packages is the normalized view of the remediation and status
// information of a document. All slices preserve document order.
type Packages struct {
	Fixes       []Fix
	Workarounds []Workaround
	Mitigations []Mitigation
	WontFix     []WontFix
	Affected    []Affected
	NotAffected []NotAffected

	// Index is the product index the records were resolved against.
	Index *ProductIndex
}

// ClassifyOptions configure the classification.
type ClassifyOptions struct {
	// Filter drops source/arch-only composite identifiers.
	// Nil keeps everything; DefaultComponentFilter is a sensible start.
	Filter *ComponentFilter
	// Vendors is the ordered vendor advisory lookup table.
	// Nil falls back to DefaultVendorAdvisories.
	Vendors VendorAdvisories
}

func (co *ClassifyOptions) vendors() VendorAdvisories {
	if co == nil || co.Vendors == nil {
		return DefaultVendorAdvisories()
	}
	return co.Vendors
}

func (co *ClassifyOptions) filter() *ComponentFilter {
	if co == nil {
		return nil
	}
	return co.Filter
}

// ClassifyPackages walks the vulnerabilities of a document in one pass
// and files every remediation and product status entry into the
// respective bucket, resolving products against the given index.
// A malformed composite identifier aborts the whole classification;
// partial security data is worse than an explicit failure.
func ClassifyPackages(
	vulns Vulnerabilities,
	index *ProductIndex,
	opts *ClassifyOptions,
) (*Packages, error) {

	pkgs := &Packages{Index: index}
	vendors := opts.vendors()
	cf := opts.filter()

	for _, vuln := range vulns {
		if vuln == nil {
			continue
		}
		for _, rem := range vuln.Remediations {
			if rem == nil || rem.Category == nil {
				continue
			}
			if err := pkgs.classifyRemediation(rem, vendors, cf); err != nil {
				return nil, err
			}
		}
		if ps := vuln.ProductStatus; ps != nil {
			if err := pkgs.classifyStatus(ps, cf); err != nil {
				return nil, err
			}
		}
	}

	return pkgs, nil
}

func (pkgs *Packages) classifyRemediation(
	rem *Remediation,
	vendors VendorAdvisories,
	cf *ComponentFilter,
) error {
	details := ""
	if rem.Details != nil {
		details = *rem.Details
	}

	switch *rem.Category {
	case RemediationCategoryVendorFix:
		url := ""
		if rem.URL != nil {
			url = *rem.URL
		}
		id, vendor := vendors.AdvisoryID(url)
		fix := Fix{ID: id, Vendor: vendor, URL: url}
		for _, ref := range cf.Filter(rem.ProductIds.strings()) {
			product, component, err := SplitProductID(ref)
			if err != nil {
				return err
			}
			fix.Components = append(fix.Components, component)
			// All identifiers of one vendor fix reference the
			// same product.
			fix.Product = pkgs.Index.Resolve(product)
		}
		pkgs.Fixes = append(pkgs.Fixes, fix)

	case RemediationCategoryWorkaround:
		wa := Workaround{Details: details}
		for _, ref := range cf.Filter(rem.ProductIds.strings()) {
			product, component, err := SplitProductID(ref)
			if err != nil {
				return err
			}
			wa.Products = append(wa.Products, pkgs.Index.Resolve(product))
			wa.Components = append(wa.Components, component)
		}
		pkgs.Workarounds = append(pkgs.Workarounds, wa)

	case RemediationCategoryMitigation:
		mi := Mitigation{Details: details}
		for _, ref := range rem.ProductIds.strings() {
			product, _, err := SplitProductID(ref)
			if err != nil {
				return err
			}
			mi.Products = append(mi.Products, pkgs.Index.Resolve(product))
		}
		pkgs.Mitigations = append(pkgs.Mitigations, mi)

	case RemediationCategoryNoFixPlanned:
		// No filtering here: these entries never carry source or
		// arch-only artifacts.
		for _, ref := range rem.ProductIds.strings() {
			product, component, err := SplitProductID(ref)
			if err != nil {
				return err
			}
			pkgs.WontFix = append(pkgs.WontFix, WontFix{
				Product:   pkgs.Index.Resolve(product),
				Component: component,
				Reason:    details,
			})
		}
	}
	return nil
}

func (pkgs *Packages) classifyStatus(
	ps *ProductStatus,
	cf *ComponentFilter,
) error {
	// Other status keys of the schema do not contribute records.
	for _, ref := range cf.Filter(ps.KnownAffected.strings()) {
		product, component, err := SplitProductID(ref)
		if err != nil {
			return err
		}
		pkgs.Affected = append(pkgs.Affected, Affected{
			Product:    pkgs.Index.Resolve(product),
			Components: []string{component},
		})
	}
	for _, ref := range cf.Filter(ps.KnownNotAffected.strings()) {
		product, component, err := SplitProductID(ref)
		if err != nil {
			return err
		}
		pkgs.NotAffected = append(pkgs.NotAffected, NotAffected{
			Product:    pkgs.Index.Resolve(product),
			Components: []string{component},
		})
	}
	return nil
}

// Records returns all classification records of the buckets as a
// single slice in bucket order, for callers which want to handle the
// sum type uniformly.
func (pkgs *Packages) Records() []Record {
	var records []Record
	for i := range pkgs.Fixes {
		records = append(records, pkgs.Fixes[i])
	}
	for i := range pkgs.Workarounds {
		records = append(records, pkgs.Workarounds[i])
	}
	for i := range pkgs.Mitigations {
		records = append(records, pkgs.Mitigations[i])
	}
	for i := range pkgs.WontFix {
		records = append(records, pkgs.WontFix[i])
	}
	for i := range pkgs.Affected {
		records = append(records, pkgs.Affected[i])
	}
	for i := range pkgs.NotAffected {
		records = append(records, pkgs.NotAffected[i])
	}
	return records
}
