package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Origin indicates whether a product is sourced locally or imported.
type Origin string

const (
	Domestic Origin = "domestic"
	Imported Origin = "imported"
)

// Product is a catalog entry as supplied by the catalog collaborator.
// It is treated as immutable during a calculation pass.
type Product struct {
	SKU          string          `json:"sku"`          // Unique key
	Origin       Origin          `json:"origin"`       // domestic | imported (free text tolerated)
	Category     string          `json:"category"`     // equipment / supply are surcharge-eligible
	BaseCost     decimal.Decimal `json:"baseCost"`     // In BaseCurrency, non-negative
	BaseCurrency string          `json:"baseCurrency"` // ISO code, empty means home currency
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsImported reports whether the origin normalizes to imported.
func (p Product) IsImported() bool {
	switch strings.ToLower(strings.TrimSpace(string(p.Origin))) {
	case string(Imported), "importado":
		return true
	}
	return false
}

// surchargeCategories lists the normalized categories that carry import surcharges.
var surchargeCategories = map[string]bool{
	"equipment": true,
	"supply":    true,
}

// IsSurchargeEligible reports whether the category normalizes to a surcharge-eligible one.
func (p Product) IsSurchargeEligible() bool {
	return surchargeCategories[strings.ToLower(strings.TrimSpace(p.Category))]
}
