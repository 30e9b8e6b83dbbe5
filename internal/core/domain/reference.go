package domain

import "time"

// ReferenceData is the input set of a recalculation run.
type ReferenceData struct {
	Products   []Product         `json:"products"`
	Parameters []ImportParameter `json:"parameters"`
	Rates      []ExchangeRate    `json:"rates"`
}

// RecalculationSummary reports the outcome of one recalculation run.
type RecalculationSummary struct {
	TransportMode TransportMode `json:"transportMode"`
	LandedRows    int           `json:"landedRows"`
	TierRows      int           `json:"tierRows"`
	FlaggedSKUs   []string      `json:"flaggedSkus"`
	ComputedAt    time.Time     `json:"computedAt"`
}
