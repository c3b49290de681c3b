// Package kyc implements the KYC document workflow for a single user: the
// requirement catalog, the per-session document store, summary derivation,
// the upload pipeline and submission for review.
package kyc

import (
	"fmt"

	"kycportal/internal/domain"
)

// MinRequiredTypes is the smallest number of required document types a
// catalog may declare.
const MinRequiredTypes = 3

const defaultMaxSizeBytes = 10 * 1024 * 1024

// Catalog is the read-only list of document requirements.
type Catalog struct {
	required []domain.Requirement
	optional []domain.Requirement
	byType   map[domain.DocumentType]domain.Requirement
}

// DefaultRequirements returns the built-in catalog entries.
func DefaultRequirements() []domain.Requirement {
	return []domain.Requirement{
		{
			Type:            domain.DocumentTypeIdentityFront,
			Name:            "Identity document (front)",
			Description:     "Front side of a government-issued identity card",
			AcceptedFormats: []string{"jpg", "jpeg", "png", "pdf"},
			MaxSizeBytes:    defaultMaxSizeBytes,
			Required:        true,
		},
		{
			Type:            domain.DocumentTypeProofOfAddress,
			Name:            "Proof of address",
			Description:     "Utility bill or official letter issued within the last 3 months",
			AcceptedFormats: []string{"pdf", "jpg", "jpeg", "png"},
			MaxSizeBytes:    defaultMaxSizeBytes,
			Required:        true,
		},
		{
			Type:            domain.DocumentTypeBankStatement,
			Name:            "Bank statement",
			Description:     "Bank statement issued within the last 3 months",
			AcceptedFormats: []string{"pdf"},
			MaxSizeBytes:    defaultMaxSizeBytes,
			Required:        true,
		},
		{
			Type:            domain.DocumentTypeIdentityBack,
			Name:            "Identity document (back)",
			Description:     "Back side of a government-issued identity card",
			AcceptedFormats: []string{"jpg", "jpeg", "png", "pdf"},
			MaxSizeBytes:    defaultMaxSizeBytes,
		},
		{
			Type:            domain.DocumentTypePassport,
			Name:            "Passport",
			Description:     "Photo page of a valid passport",
			AcceptedFormats: []string{"jpg", "jpeg", "png", "pdf"},
			MaxSizeBytes:    defaultMaxSizeBytes,
		},
	}
}

// NewCatalog validates reqs and builds a Catalog preserving their order.
func NewCatalog(reqs []domain.Requirement) (*Catalog, error) {
	c := &Catalog{byType: make(map[domain.DocumentType]domain.Requirement, len(reqs))}
	for _, r := range reqs {
		if !r.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidCatalog, r.Type)
		}
		if _, dup := c.byType[r.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate document type %q", domain.ErrInvalidCatalog, r.Type)
		}
		if r.MaxSizeBytes <= 0 {
			return nil, fmt.Errorf("%w: %s: max size must be positive", domain.ErrInvalidCatalog, r.Type)
		}
		if len(r.AcceptedFormats) == 0 {
			return nil, fmt.Errorf("%w: %s: no accepted formats", domain.ErrInvalidCatalog, r.Type)
		}
		for _, f := range r.AcceptedFormats {
			if _, ok := domain.FormatContentTypes[f]; !ok {
				return nil, fmt.Errorf("%w: %s: unsupported format %q", domain.ErrInvalidCatalog, r.Type, f)
			}
		}

		c.byType[r.Type] = r
		if r.Required {
			c.required = append(c.required, r)
		} else {
			c.optional = append(c.optional, r)
		}
	}
	if len(c.required) < MinRequiredTypes {
		return nil, fmt.Errorf("%w: %d required types, need at least %d",
			domain.ErrInvalidCatalog, len(c.required), MinRequiredTypes)
	}
	return c, nil
}

// MustDefaultCatalog returns the catalog built from DefaultRequirements.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRequirements())
	if err != nil {
		panic(err)
	}
	return c
}

// ListRequired returns the required entries in catalog order.
func (c *Catalog) ListRequired() []domain.Requirement {
	return append([]domain.Requirement(nil), c.required...)
}

// ListOptional returns the optional entries in catalog order.
func (c *Catalog) ListOptional() []domain.Requirement {
	return append([]domain.Requirement(nil), c.optional...)
}

// All returns required entries followed by optional ones.
func (c *Catalog) All() []domain.Requirement {
	all := make([]domain.Requirement, 0, len(c.required)+len(c.optional))
	all = append(all, c.required...)
	return append(all, c.optional...)
}

// Lookup returns the requirement for t.
func (c *Catalog) Lookup(t domain.DocumentType) (domain.Requirement, bool) {
	r, ok := c.byType[t]
	return r, ok
}
