// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// BranchCategory is the category of a branch in the product tree.
type BranchCategory string

const (
	// BranchCategoryArchitecture is the "architecture" category.
	BranchCategoryArchitecture BranchCategory = "architecture"
	// BranchCategoryProductFamily is the "product_family" category.
	BranchCategoryProductFamily BranchCategory = "product_family"
	// BranchCategoryProductName is the "product_name" category.
	BranchCategoryProductName BranchCategory = "product_name"
	// BranchCategoryProductVersion is the "product_version" category.
	BranchCategoryProductVersion BranchCategory = "product_version"
	// BranchCategoryVendor is the "vendor" category.
	BranchCategoryVendor BranchCategory = "vendor"
)

// ProductID is a reference token for product instances. There is no
// predefined or required format for it as long as it uniquely identifies
// a product in the context of the current document.
type ProductID string

// Products is a list of one or more unique ProductID elements.
type Products []*ProductID

// FullProductName is the full name of a product.
type FullProductName struct {
	Name      *string    `json:"name"`       // required
	ProductID *ProductID `json:"product_id"` // required
}

// Branch reflects the 'branch' object in the list of branches.
// It may contain either the property Branches OR Product.
type Branch struct {
	Branches Branches         `json:"branches,omitempty"`
	Category *BranchCategory  `json:"category"` // required
	Name     *string          `json:"name"`     // required
	Product  *FullProductName `json:"product,omitempty"`
}

// Branches is a list of Branch.
type Branches []*Branch

// Relationship establishes a link between two existing FullProductName elements.
type Relationship struct {
	Category                  *string          `json:"category"`   // required
	FullProductName           *FullProductName `json:"full_product_name"` // required
	ProductReference          *ProductID       `json:"product_reference"` // required
	RelatesToProductReference *ProductID       `json:"relates_to_product_reference"` // required
}

// Relationships is a list of Relationship.
type Relationships []*Relationship

// ProductTree contains product names that can be referenced elsewhere
// in the document.
type ProductTree struct {
	Branches      Branches       `json:"branches,omitempty"`
	RelationShips *Relationships `json:"relationships,omitempty"`
}

// CVE holds the MITRE standard Common Vulnerabilities and Exposures (CVE)
// tracking number for a vulnerability.
type CVE string

var cvePattern = patternUnmarshal("^CVE-[0-9]{4}-[0-9]{4,}$")

// WeaknessID is the identifier of a weakness.
type WeaknessID string

var weaknessIDPattern = patternUnmarshal("^CWE-[1-9]\\d{0,5}$")

// CWE holds the MITRE standard Common Weakness Enumeration (CWE) for
// the weakness associated.
type CWE struct {
	ID   *WeaknessID `json:"id"`   // required
	Name *string     `json:"name"` // required
}

// NoteCategory is the category of a note.
type NoteCategory string

const (
	// NoteCategoryDescription is the "description" category.
	NoteCategoryDescription NoteCategory = "description"
	// NoteCategoryGeneral is the "general" category.
	NoteCategoryGeneral NoteCategory = "general"
	// NoteCategoryLegalDisclaimer is the "legal_disclaimer" category.
	NoteCategoryLegalDisclaimer NoteCategory = "legal_disclaimer"
	// NoteCategoryOther is the "other" category.
	NoteCategoryOther NoteCategory = "other"
	// NoteCategorySummary is the "summary" category.
	NoteCategorySummary NoteCategory = "summary"
	// NoteCategoryStatement is the "statement" category (found as title
	// on 'other' notes in observed vendor documents).
	NoteCategoryStatement NoteCategory = "statement"
)

// Note reflects the 'note' object of a document or vulnerability.
type Note struct {
	Audience *string       `json:"audience,omitempty"`
	Category *NoteCategory `json:"category"` // required
	Text     *string       `json:"text"`     // required
	Title    *string       `json:"title,omitempty"`
}

// Notes is a list of Note.
type Notes []*Note

// Reference holds any reference to conferences, papers, advisories etc.
type Reference struct {
	Category *string `json:"category,omitempty"`
	Summary  *string `json:"summary"` // required
	URL      *string `json:"url"`     // required
}

// References is a list of Reference.
type References []*Reference

// VulnerabilityID is a vendor specific identifier of a vulnerability,
// e.g. a Bugzilla bug number.
type VulnerabilityID struct {
	SystemName *string `json:"system_name"` // required
	Text       *string `json:"text"`        // required
}

// VulnerabilityIDs is a list of VulnerabilityID elements.
type VulnerabilityIDs []*VulnerabilityID

// ProductStatus contains different lists of ProductIDs which provide
// details on the status of the referenced product related to the
// current vulnerability.
type ProductStatus struct {
	FirstFixed         *Products `json:"first_fixed,omitempty"`
	Fixed              *Products `json:"fixed,omitempty"`
	KnownAffected      *Products `json:"known_affected,omitempty"`
	KnownNotAffected   *Products `json:"known_not_affected,omitempty"`
	Recommended        *Products `json:"recommended,omitempty"`
	UnderInvestigation *Products `json:"under_investigation,omitempty"`
}

// RemediationCategory is the category of a remediation.
type RemediationCategory string

const (
	// RemediationCategoryMitigation is the "mitigation" category.
	RemediationCategoryMitigation RemediationCategory = "mitigation"
	// RemediationCategoryNoFixPlanned is the "no_fix_planned" category.
	RemediationCategoryNoFixPlanned RemediationCategory = "no_fix_planned"
	// RemediationCategoryNoneAvailable is the "none_available" category.
	RemediationCategoryNoneAvailable RemediationCategory = "none_available"
	// RemediationCategoryVendorFix is the "vendor_fix" category.
	RemediationCategoryVendorFix RemediationCategory = "vendor_fix"
	// RemediationCategoryWorkaround is the "workaround" category.
	RemediationCategoryWorkaround RemediationCategory = "workaround"
)

var remediationCategoryPattern = alternativesUnmarshal(
	string(RemediationCategoryMitigation),
	string(RemediationCategoryNoFixPlanned),
	string(RemediationCategoryNoneAvailable),
	string(RemediationCategoryVendorFix),
	string(RemediationCategoryWorkaround))

// Remediation specifies details on how to handle (and presumably, fix)
// a vulnerability.
type Remediation struct {
	Category   *RemediationCategory `json:"category"` // required
	Date       *string              `json:"date,omitempty"`
	Details    *string              `json:"details"` // required
	ProductIds *Products            `json:"product_ids,omitempty"`
	URL        *string              `json:"url,omitempty"`
}

// Remediations is a list of Remediation elements.
type Remediations []*Remediation

// CVSS2 holding a CVSS v2.0 value.
type CVSS2 struct {
	Version               *string  `json:"version"`      // required
	VectorString          *string  `json:"vectorString"` // required
	BaseScore             *float64 `json:"baseScore"`    // required
	AccessVector          *string  `json:"accessVector,omitempty"`
	AccessComplexity      *string  `json:"accessComplexity,omitempty"`
	Authentication        *string  `json:"authentication,omitempty"`
	ConfidentialityImpact *string  `json:"confidentialityImpact,omitempty"`
	IntegrityImpact       *string  `json:"integrityImpact,omitempty"`
	AvailabilityImpact    *string  `json:"availabilityImpact,omitempty"`
}

// CVSS3 holding a CVSS v3.x value.
type CVSS3 struct {
	Version               *string  `json:"version"`      // required
	VectorString          *string  `json:"vectorString"` // required
	BaseScore             *float64 `json:"baseScore"`    // required
	BaseSeverity          *string  `json:"baseSeverity,omitempty"`
	AttackVector          *string  `json:"attackVector,omitempty"`
	AttackComplexity      *string  `json:"attackComplexity,omitempty"`
	PrivilegesRequired    *string  `json:"privilegesRequired,omitempty"`
	UserInteraction       *string  `json:"userInteraction,omitempty"`
	Scope                 *string  `json:"scope,omitempty"`
	ConfidentialityImpact *string  `json:"confidentialityImpact,omitempty"`
	IntegrityImpact       *string  `json:"integrityImpact,omitempty"`
	AvailabilityImpact    *string  `json:"availabilityImpact,omitempty"`
}

// Score specifies information about (at least one) score of the
// vulnerability and for which products the given value applies.
type Score struct {
	CVSS2    *CVSS2    `json:"cvss_v2,omitempty"`
	CVSS3    *CVSS3    `json:"cvss_v3,omitempty"`
	Products *Products `json:"products"` // required
}

// Scores is a list of Score elements.
type Scores []*Score

// Threat contains information about a vulnerability that can change
// with time.
type Threat struct {
	Category *string   `json:"category"` // required
	Details  *string   `json:"details"`  // required
	Date     *string   `json:"date,omitempty"`
	ProductIds *Products `json:"product_ids,omitempty"`
}

// Threats is a list of Threat elements.
type Threats []*Threat

// Vulnerability contains all fields that are related to a single
// vulnerability in the document.
type Vulnerability struct {
	CVE           *CVE             `json:"cve,omitempty"`
	CWE           *CWE             `json:"cwe,omitempty"`
	DiscoveryDate *string          `json:"discovery_date,omitempty"`
	IDs           VulnerabilityIDs `json:"ids,omitempty"` // unique ID elements
	Notes         Notes            `json:"notes,omitempty"`
	ProductStatus *ProductStatus   `json:"product_status,omitempty"`
	References    References       `json:"references,omitempty"`
	ReleaseDate   *string          `json:"release_date,omitempty"`
	Remediations  Remediations     `json:"remediations,omitempty"`
	Scores        Scores           `json:"scores,omitempty"`
	Threats       Threats          `json:"threats,omitempty"`
	Title         *string          `json:"title,omitempty"`
}

// Vulnerabilities is a list of Vulnerability.
type Vulnerabilities []*Vulnerability

// Tracking holds the tracking information of the document.
type Tracking struct {
	ID                 *string `json:"id"` // required
	CurrentReleaseDate *string `json:"current_release_date,omitempty"`
	InitialReleaseDate *string `json:"initial_release_date,omitempty"`
	Status             *string `json:"status,omitempty"`
	Version            *string `json:"version,omitempty"`
}

// Publisher provides information about the publishing entity.
type Publisher struct {
	Category         *string `json:"category"`  // required
	Name             *string `json:"name"`      // required
	Namespace        *string `json:"namespace"` // required
	ContactDetails   *string `json:"contact_details,omitempty"`
	IssuingAuthority *string `json:"issuing_authority,omitempty"`
}

// AggregateSeverity stands for the urgency with which the vulnerabilities
// of a document should be addressed.
type AggregateSeverity struct {
	Namespace *string `json:"namespace,omitempty"`
	Text      *string `json:"text"` // required
}

// DocumentMeta holds the meta data of a VEX document.
type DocumentMeta struct {
	AggregateSeverity *AggregateSeverity `json:"aggregate_severity,omitempty"`
	Category          *string            `json:"category"` // required
	Distribution      json.RawMessage    `json:"distribution,omitempty"`
	Notes             Notes              `json:"notes,omitempty"`
	Publisher         *Publisher         `json:"publisher"` // required
	References        References         `json:"references,omitempty"`
	Title             *string            `json:"title"` // required
	Tracking          *Tracking          `json:"tracking"` // required
}

// Document represents a CSAF/VEX document.
type Document struct {
	Document        *DocumentMeta   `json:"document"` // required
	ProductTree     *ProductTree    `json:"product_tree,omitempty"`
	Vulnerabilities Vulnerabilities `json:"vulnerabilities,omitempty"`
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (c *CVE) UnmarshalText(data []byte) error {
	s, err := cvePattern(data)
	if err == nil {
		*c = CVE(s)
	}
	return err
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (w *WeaknessID) UnmarshalText(data []byte) error {
	s, err := weaknessIDPattern(data)
	if err == nil {
		*w = WeaknessID(s)
	}
	return err
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (rc *RemediationCategory) UnmarshalText(data []byte) error {
	s, err := remediationCategoryPattern(data)
	if err == nil {
		*rc = RemediationCategory(s)
	}
	return err
}

// Validate validates a FullProductName.
func (fpn *FullProductName) Validate() error {
	switch {
	case fpn.Name == nil:
		return errors.New("'name' is missing")
	case fpn.ProductID == nil:
		return errors.New("'product_id' is missing")
	}
	return nil
}

// Validate validates a Branch and its sub branches.
func (b *Branch) Validate() error {
	if b.Category == nil {
		return errors.New("'category' is missing")
	}
	if b.Product != nil {
		if err := b.Product.Validate(); err != nil {
			return err
		}
	}
	return b.Branches.Validate()
}

// Validate validates a list of Branch elements.
func (bs Branches) Validate() error {
	for _, b := range bs {
		if b == nil {
			continue
		}
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a ProductTree.
func (pt *ProductTree) Validate() error {
	return pt.Branches.Validate()
}

// Validate validates a single Remediation.
func (r *Remediation) Validate() error {
	switch {
	case r.Category == nil:
		return errors.New("'category' is missing")
	case r.Details == nil:
		return errors.New("'details' is missing")
	}
	return nil
}

// Validate validates a list of Remediation elements.
func (rms Remediations) Validate() error {
	for _, r := range rms {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a single Vulnerability.
func (v *Vulnerability) Validate() error {
	return v.Remediations.Validate()
}

// Validate validates a list of Vulnerability elements.
func (vs Vulnerabilities) Validate() error {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a Tracking.
func (t *Tracking) Validate() error {
	if t.ID == nil {
		return errors.New("'tracking.id' is missing")
	}
	return nil
}

// Validate validates a DocumentMeta.
func (dm *DocumentMeta) Validate() error {
	switch {
	case dm == nil:
		return errors.New("'document' is missing")
	case dm.Category == nil:
		return errors.New("'document.category' is missing")
	case dm.Tracking == nil:
		return errors.New("'document.tracking' is missing")
	}
	return dm.Tracking.Validate()
}

// Validate validates a whole Document.
func (doc *Document) Validate() error {
	if err := doc.Document.Validate(); err != nil {
		return err
	}
	if doc.ProductTree != nil {
		if err := doc.ProductTree.Validate(); err != nil {
			return fmt.Errorf("'product_tree' is invalid: %w", err)
		}
	}
	if err := doc.Vulnerabilities.Validate(); err != nil {
		return fmt.Errorf("'vulnerabilities' is invalid: %w", err)
	}
	return nil
}

// LoadDocumentReader loads a VEX document from a reader.
func LoadDocumentReader(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadDocument loads a VEX document from a file.
func LoadDocument(fname string) (*Document, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDocumentReader(f)
}
