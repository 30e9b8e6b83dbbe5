package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParameterKind distinguishes percentage surcharges from fixed amounts.
type ParameterKind string

const (
	ParameterPercentage ParameterKind = "percentage"
	ParameterFixed      ParameterKind = "fixed"
)

// Well-known import parameter concepts.
const (
	ConceptInsurance     = "seguro"
	ConceptDuty          = "arancel"
	ConceptCustomsTax    = "dta"
	ConceptCustomsBroker = "honorarios_aduanales"
	ConceptMarkup        = "mark_up"
)

// ImportParameter is one row of the import cost parameters table.
// Only rows with a nil ValidUntil are active.
type ImportParameter struct {
	Concept    string          `json:"concept"`
	Kind       ParameterKind   `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	ValidFrom  time.Time       `json:"validFrom"`
	ValidUntil *time.Time      `json:"validUntil"`
}

// IsActive reports whether the parameter has no closing date.
func (p ImportParameter) IsActive() bool {
	return p.ValidUntil == nil
}

// IsFixed reports whether the kind normalizes to a fixed amount ("fixed" or "fijo").
func (p ImportParameter) IsFixed() bool {
	kind := strings.ToLower(strings.TrimSpace(string(p.Kind)))
	return strings.Contains(kind, "fixed") || strings.Contains(kind, "fijo")
}
