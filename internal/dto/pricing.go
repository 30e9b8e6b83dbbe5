package dto

import (
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecalculateRequest selects the transport mode to recompute.
type RecalculateRequest struct {
	TransportMode string `json:"transportMode" binding:"required"`
}

// ListPricingParams defines query parameters for pricing listings.
type ListPricingParams struct {
	SKU           string `form:"sku"`
	TransportMode string `form:"transport_mode"`
}

// QualityParams defines query parameters for the quality report.
type QualityParams struct {
	TransportMode string `form:"transport_mode"`
}

// PriceTierResponse is the tier projection returned to clients.
// Cost fields are nil for roles that may not see costs.
type PriceTierResponse struct {
	SKU             string               `json:"sku"`
	TransportMode   domain.TransportMode `json:"transportMode"`
	CostInHome      *decimal.Decimal     `json:"costInHome,omitempty"`
	LandedCost      *decimal.Decimal     `json:"landedCost,omitempty"`
	Surcharges      *domain.Surcharges   `json:"surcharges,omitempty"`
	MarkupPct       *decimal.Decimal     `json:"markupPct,omitempty"`
	BasePrice       decimal.Decimal      `json:"basePrice"`
	MaxPrice        decimal.Decimal      `json:"maxPrice"`
	SellerMin       decimal.Decimal      `json:"sellerMin"`
	CommercialMin   decimal.Decimal      `json:"commercialMin"`
	SubdirectionMin decimal.Decimal      `json:"subdirectionMin"`
	DirectionMin    decimal.Decimal      `json:"directionMin"`
	Flagged         bool                 `json:"flagged"`
	ComputedAt      time.Time            `json:"computedAt"`
}

// CanSeeCosts reports whether role may see cost fields.
func CanSeeCosts(role domain.Role) bool {
	return role.IsValid() && role != domain.RoleSeller
}

// ToPriceTierResponse converts a tier, hiding costs when the viewer may not see them.
func ToPriceTierResponse(t domain.PriceTierRecord, viewer domain.Role) PriceTierResponse {
	res := PriceTierResponse{
		SKU:             t.SKU,
		TransportMode:   t.TransportMode,
		BasePrice:       t.BasePrice,
		MaxPrice:        t.MaxPrice,
		SellerMin:       t.SellerMin,
		CommercialMin:   t.CommercialMin,
		SubdirectionMin: t.SubdirectionMin,
		DirectionMin:    t.DirectionMin,
		Flagged:         t.Flagged,
		ComputedAt:      t.ComputedAt,
	}
	if CanSeeCosts(viewer) {
		surcharges := t.Surcharges
		res.CostInHome = &t.CostInHome
		res.LandedCost = &t.LandedCost
		res.Surcharges = &surcharges
		res.MarkupPct = &t.MarkupPct
	}
	return res
}

// ToListPriceTierResponse converts a slice of tiers for viewer.
func ToListPriceTierResponse(tiers []domain.PriceTierRecord, viewer domain.Role) []PriceTierResponse {
	res := make([]PriceTierResponse, len(tiers))
	for i, t := range tiers {
		res[i] = ToPriceTierResponse(t, viewer)
	}
	return res
}
