package pricing

import (
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tier ratios. Minimums are fractions of the maximum list price.
var (
	MaxPriceMultiplier = decimal.NewFromInt(2)
	SellerRatio        = decimal.RequireFromString("0.80")
	CommercialRatio    = decimal.RequireFromString("0.75")
	SubdirectionRatio  = decimal.RequireFromString("0.70")
	DirectionRatio     = decimal.RequireFromString("0.65")
)

// DeriveTier expands a landed cost record into the maximum price and four role minimums.
// A non-positive base price zeroes the maximum and every minimum and flags the record.
func DeriveTier(lc domain.LandedCostRecord) domain.PriceTierRecord {
	tier := domain.PriceTierRecord{
		SKU:           lc.SKU,
		TransportMode: lc.TransportMode,
		CostInHome:    lc.CostInHome,
		Surcharges:    lc.Surcharges,
		MarkupPct:     lc.MarkupPct,
		LandedCost:    lc.LandedCost,
		BasePrice:     lc.BasePrice,
		ComputedAt:    lc.ComputedAt,
	}
	if !lc.BasePrice.IsPositive() {
		tier.MaxPrice = decimal.Zero
		tier.SellerMin = decimal.Zero
		tier.CommercialMin = decimal.Zero
		tier.SubdirectionMin = decimal.Zero
		tier.DirectionMin = decimal.Zero
		tier.Flagged = true
		return tier
	}
	maxPrice := lc.BasePrice.Mul(MaxPriceMultiplier)
	tier.MaxPrice = maxPrice
	tier.SellerMin = maxPrice.Mul(SellerRatio)
	tier.CommercialMin = maxPrice.Mul(CommercialRatio)
	tier.SubdirectionMin = maxPrice.Mul(SubdirectionRatio)
	tier.DirectionMin = maxPrice.Mul(DirectionRatio)
	return tier
}
