package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table.
type Product struct {
	SKU          string          `db:"sku"`
	Origin       string          `db:"origin"`
	Category     string          `db:"category"`
	BaseCost     decimal.Decimal `db:"base_cost"`
	BaseCurrency string          `db:"base_currency"`
	UpdatedAt    time.Time       `db:"updated_at"` // Catalog timestamp, drives dedupe
	AuditFields
}

// ExchangeRate is a row of the exchange_rates table. (currency, effective_date) is unique.
type ExchangeRate struct {
	Currency      string          `db:"currency"`
	RateToHome    decimal.Decimal `db:"rate_to_home"`
	EffectiveDate time.Time       `db:"effective_date"`
	AuditFields
}

// ImportParameter is a row of the import_parameters table.
// At most one row per concept has a NULL valid_until.
type ImportParameter struct {
	ID         int64           `db:"id"`
	Concept    string          `db:"concept"`
	Kind       string          `db:"kind"`
	Value      decimal.Decimal `db:"value"`
	ValidFrom  time.Time       `db:"valid_from"`
	ValidUntil *time.Time      `db:"valid_until"`
}
