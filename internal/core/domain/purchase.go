package domain

import "time"

// =============================================================================
// Product Catalog
// =============================================================================

// PublicType restricts who can buy a product.
type PublicType string

const (
	PublicTypeAll        PublicType = "all"
	PublicTypeAthlete    PublicType = "athlete"
	PublicTypeNonAthlete PublicType = "non_athlete"
)

// Product is a purchasable catalog item, either merchandise or a fee.
// Required products drive the "has paid" derivation: a participant has
// paid once a validated purchase covers any required product.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
	SchoolType  SchoolType       `json:"school_type"`
	PublicType  PublicType       `json:"public_type"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductVariant is a concrete sellable option of a product (size, tier).
type ProductVariant struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Enabled    bool   `json:"enabled"`
}

// =============================================================================
// Purchase
// =============================================================================

// Purchase is a (user, variant) pairing. Validated means the payment was
// confirmed by the payment provider.
type Purchase struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VariantID string    `json:"product_variant_id"`
	Quantity  int       `json:"quantity"`
	Validated bool      `json:"validated"`
	CreatedAt time.Time `json:"created_at"`
}

// RequiredVariantSet maps variant IDs to whether their product is required.
// It is the lookup the projector and the product quota checks share.
type RequiredVariantSet map[string]bool

// BuildRequiredVariantSet indexes a product catalog by variant ID.
func BuildRequiredVariantSet(products []Product) RequiredVariantSet {
	set := make(RequiredVariantSet)
	for _, p := range products {
		for _, v := range p.Variants {
			set[v.ID] = p.Required
		}
	}
	return set
}
