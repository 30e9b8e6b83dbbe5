package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Surcharges are the import percentages actually applied to a product.
// All are zero for products that do not carry surcharges.
type Surcharges struct {
	FreightPct       decimal.Decimal `json:"freightPct"`
	InsurancePct     decimal.Decimal `json:"insurancePct"`     // seguro
	DutyPct          decimal.Decimal `json:"dutyPct"`          // arancel
	CustomsTaxPct    decimal.Decimal `json:"customsTaxPct"`    // dta
	CustomsBrokerPct decimal.Decimal `json:"customsBrokerPct"` // honorarios_aduanales
}

// Total sums every applied percentage.
func (s Surcharges) Total() decimal.Decimal {
	return s.FreightPct.Add(s.InsurancePct).Add(s.DutyPct).Add(s.CustomsTaxPct).Add(s.CustomsBrokerPct)
}

// LandedCostRecord is derived once per sku and transport mode.
type LandedCostRecord struct {
	SKU           string          `json:"sku"`
	TransportMode TransportMode   `json:"transportMode"`
	Origin        Origin          `json:"origin"`
	Category      string          `json:"category"`
	BaseCurrency  string          `json:"baseCurrency"`
	BaseCost      decimal.Decimal `json:"baseCost"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // Rate applied to BaseCost
	CostInHome    decimal.Decimal `json:"costInHome"`
	Surcharges
	MarkupPct  decimal.Decimal `json:"markupPct"`
	LandedCost decimal.Decimal `json:"landedCost"`
	BasePrice  decimal.Decimal `json:"basePrice"` // LandedCost * (1 + MarkupPct)
	ComputedAt time.Time       `json:"computedAt"`
}
