package pricing

import (
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Policy holds the tunables of the landed cost calculation.
type Policy struct {
	HomeCurrency  string
	FreightPct    map[domain.TransportMode]decimal.Decimal
	DefaultMarkup decimal.Decimal
}

// DefaultPolicy is MXN, 10% air freight, 5% maritime freight and a 10% markup.
func DefaultPolicy() Policy {
	return Policy{
		HomeCurrency: "MXN",
		FreightPct: map[domain.TransportMode]decimal.Decimal{
			domain.TransportAir:      decimal.RequireFromString("0.10"),
			domain.TransportMaritime: decimal.RequireFromString("0.05"),
		},
		DefaultMarkup: decimal.RequireFromString("0.10"),
	}
}

// Freight returns the freight percentage for mode, 0 when the mode has no policy.
func (p Policy) Freight(mode domain.TransportMode) decimal.Decimal {
	if pct, ok := p.FreightPct[domain.ParseTransportMode(string(mode))]; ok {
		return pct
	}
	return decimal.Zero
}

// Inputs bundles the reference data shared by every product in a run.
type Inputs struct {
	Rates      RateTable
	Parameters ParameterSet
	Mode       domain.TransportMode
	ComputedAt time.Time
}

// CalculateLandedCost derives the landed cost and markup-adjusted base price of one product.
// It never fails: bad inputs yield a zero-cost record that tier checks flag later.
func CalculateLandedCost(p Policy, product domain.Product, in Inputs) domain.LandedCostRecord {
	currency := normalizeCurrency(product.BaseCurrency, in.Rates.Home())
	baseCost := product.BaseCost
	rate := in.Rates.Rate(currency)
	costInHome := baseCost.Mul(rate)

	var applied domain.Surcharges
	if product.IsImported() && product.IsSurchargeEligible() {
		applied = domain.Surcharges{
			FreightPct:       p.Freight(in.Mode),
			InsurancePct:     in.Parameters.Percentage(domain.ConceptInsurance, decimal.Zero),
			DutyPct:          in.Parameters.Percentage(domain.ConceptDuty, decimal.Zero),
			CustomsTaxPct:    in.Parameters.Percentage(domain.ConceptCustomsTax, decimal.Zero),
			CustomsBrokerPct: in.Parameters.Percentage(domain.ConceptCustomsBroker, decimal.Zero),
		}
	}

	one := decimal.NewFromInt(1)
	landed := costInHome.Mul(one.Add(applied.Total()))
	markup := in.Parameters.Percentage(domain.ConceptMarkup, p.DefaultMarkup)

	return domain.LandedCostRecord{
		SKU:           product.SKU,
		TransportMode: in.Mode,
		Origin:        product.Origin,
		Category:      product.Category,
		BaseCurrency:  currency,
		BaseCost:      baseCost,
		ExchangeRate:  rate,
		CostInHome:    costInHome,
		Surcharges:    applied,
		MarkupPct:     markup,
		LandedCost:    landed,
		BasePrice:     landed.Mul(one.Add(markup)),
		ComputedAt:    in.ComputedAt,
	}
}
