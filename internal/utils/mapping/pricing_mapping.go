package mapping

import (
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/models"
)

func toModelSurcharges(s domain.Surcharges) models.Surcharges {
	return models.Surcharges{
		FreightPct:       s.FreightPct,
		InsurancePct:     s.InsurancePct,
		DutyPct:          s.DutyPct,
		CustomsTaxPct:    s.CustomsTaxPct,
		CustomsBrokerPct: s.CustomsBrokerPct,
	}
}

func toDomainSurcharges(s models.Surcharges) domain.Surcharges {
	return domain.Surcharges{
		FreightPct:       s.FreightPct,
		InsurancePct:     s.InsurancePct,
		DutyPct:          s.DutyPct,
		CustomsTaxPct:    s.CustomsTaxPct,
		CustomsBrokerPct: s.CustomsBrokerPct,
	}
}

// ToModelLandedCost converts a domain LandedCostRecord to a model LandedCost
func ToModelLandedCost(d domain.LandedCostRecord) models.LandedCost {
	return models.LandedCost{
		SKU:           d.SKU,
		TransportMode: string(d.TransportMode),
		Origin:        string(d.Origin),
		Category:      d.Category,
		BaseCurrency:  d.BaseCurrency,
		BaseCost:      d.BaseCost,
		ExchangeRate:  d.ExchangeRate,
		CostInHome:    d.CostInHome,
		Surcharges:    toModelSurcharges(d.Surcharges),
		MarkupPct:     d.MarkupPct,
		LandedCost:    d.LandedCost,
		BasePrice:     d.BasePrice,
		ComputedAt:    d.ComputedAt,
	}
}

// ToDomainLandedCost converts a model LandedCost to a domain LandedCostRecord
func ToDomainLandedCost(m models.LandedCost) domain.LandedCostRecord {
	return domain.LandedCostRecord{
		SKU:           m.SKU,
		TransportMode: domain.TransportMode(m.TransportMode),
		Origin:        domain.Origin(m.Origin),
		Category:      m.Category,
		BaseCurrency:  m.BaseCurrency,
		BaseCost:      m.BaseCost,
		ExchangeRate:  m.ExchangeRate,
		CostInHome:    m.CostInHome,
		Surcharges:    toDomainSurcharges(m.Surcharges),
		MarkupPct:     m.MarkupPct,
		LandedCost:    m.LandedCost,
		BasePrice:     m.BasePrice,
		ComputedAt:    m.ComputedAt,
	}
}

// ToModelPriceTier converts a domain PriceTierRecord to a model PriceTier
func ToModelPriceTier(d domain.PriceTierRecord) models.PriceTier {
	return models.PriceTier{
		SKU:             d.SKU,
		TransportMode:   string(d.TransportMode),
		CostInHome:      d.CostInHome,
		Surcharges:      toModelSurcharges(d.Surcharges),
		MarkupPct:       d.MarkupPct,
		LandedCost:      d.LandedCost,
		BasePrice:       d.BasePrice,
		MaxPrice:        d.MaxPrice,
		SellerMin:       d.SellerMin,
		CommercialMin:   d.CommercialMin,
		SubdirectionMin: d.SubdirectionMin,
		DirectionMin:    d.DirectionMin,
		Flagged:         d.Flagged,
		ComputedAt:      d.ComputedAt,
	}
}

// ToDomainPriceTier converts a model PriceTier to a domain PriceTierRecord
func ToDomainPriceTier(m models.PriceTier) domain.PriceTierRecord {
	return domain.PriceTierRecord{
		SKU:             m.SKU,
		TransportMode:   domain.TransportMode(m.TransportMode),
		CostInHome:      m.CostInHome,
		Surcharges:      toDomainSurcharges(m.Surcharges),
		MarkupPct:       m.MarkupPct,
		LandedCost:      m.LandedCost,
		BasePrice:       m.BasePrice,
		MaxPrice:        m.MaxPrice,
		SellerMin:       m.SellerMin,
		CommercialMin:   m.CommercialMin,
		SubdirectionMin: m.SubdirectionMin,
		DirectionMin:    m.DirectionMin,
		Flagged:         m.Flagged,
		ComputedAt:      m.ComputedAt,
	}
}
