package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Surcharges are the applied percentage columns shared by landed_costs and price_tiers.
type Surcharges struct {
	FreightPct       decimal.Decimal `db:"freight_pct"`
	InsurancePct     decimal.Decimal `db:"insurance_pct"`
	DutyPct          decimal.Decimal `db:"duty_pct"`
	CustomsTaxPct    decimal.Decimal `db:"customs_tax_pct"`
	CustomsBrokerPct decimal.Decimal `db:"customs_broker_pct"`
}

// LandedCost is a row of the landed_costs table, keyed by (sku, transport_mode).
type LandedCost struct {
	SKU           string          `db:"sku"`
	TransportMode string          `db:"transport_mode"`
	Origin        string          `db:"origin"`
	Category      string          `db:"category"`
	BaseCurrency  string          `db:"base_currency"`
	BaseCost      decimal.Decimal `db:"base_cost"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	CostInHome    decimal.Decimal `db:"cost_in_home"`
	Surcharges
	MarkupPct  decimal.Decimal `db:"markup_pct"`
	LandedCost decimal.Decimal `db:"landed_cost"`
	BasePrice  decimal.Decimal `db:"base_price"`
	ComputedAt time.Time       `db:"computed_at"`
}

// PriceTier is a row of the price_tiers table, keyed by (sku, transport_mode).
type PriceTier struct {
	SKU           string          `db:"sku"`
	TransportMode string          `db:"transport_mode"`
	CostInHome    decimal.Decimal `db:"cost_in_home"`
	Surcharges
	MarkupPct       decimal.Decimal `db:"markup_pct"`
	LandedCost      decimal.Decimal `db:"landed_cost"`
	BasePrice       decimal.Decimal `db:"base_price"`
	MaxPrice        decimal.Decimal `db:"max_price"`
	SellerMin       decimal.Decimal `db:"seller_min"`
	CommercialMin   decimal.Decimal `db:"commercial_min"`
	SubdirectionMin decimal.Decimal `db:"subdirection_min"`
	DirectionMin    decimal.Decimal `db:"direction_min"`
	Flagged         bool            `db:"flagged"`
	ComputedAt      time.Time       `db:"computed_at"`
}
