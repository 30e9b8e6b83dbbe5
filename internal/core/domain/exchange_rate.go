package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate converts one unit of Currency into the home currency as of EffectiveDate.
// Several rows may exist per currency; the most recent one wins.
type ExchangeRate struct {
	Currency      string          `json:"currency"`
	RateToHome    decimal.Decimal `json:"rateToHome"` // Must be > 0
	EffectiveDate time.Time       `json:"effectiveDate"`
}
