package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTierRecord holds the maximum list price and the per-role minimum
// thresholds for one sku and transport mode. Cost fields are carried for display.
type PriceTierRecord struct {
	SKU           string          `json:"sku"`
	TransportMode TransportMode   `json:"transportMode"`
	CostInHome    decimal.Decimal `json:"costInHome"`
	Surcharges
	MarkupPct       decimal.Decimal `json:"markupPct"`
	LandedCost      decimal.Decimal `json:"landedCost"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	MaxPrice        decimal.Decimal `json:"maxPrice"`
	SellerMin       decimal.Decimal `json:"sellerMin"`
	CommercialMin   decimal.Decimal `json:"commercialMin"`
	SubdirectionMin decimal.Decimal `json:"subdirectionMin"`
	DirectionMin    decimal.Decimal `json:"directionMin"`
	Flagged         bool            `json:"flagged"` // Set when BasePrice <= 0
	ComputedAt      time.Time       `json:"computedAt"`
}

// Usable reports whether the thresholds can drive pricing decisions.
func (t PriceTierRecord) Usable() bool {
	return !t.Flagged && t.BasePrice.IsPositive()
}

// MinimumFor returns the role's own minimum threshold.
// Admin and unknown roles have none.
func (t PriceTierRecord) MinimumFor(role Role) (decimal.Decimal, bool) {
	level, ok := hierarchy[role]
	if !ok || level.minimum == nil {
		return decimal.Zero, false
	}
	return level.minimum(t), true
}
