package services

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
)

// PricingCalculatorSvc runs the landed cost and tier derivation.
type PricingCalculatorSvc interface {
	// Recalculate recomputes every record of one transport mode and replaces them atomically.
	Recalculate(ctx context.Context, mode domain.TransportMode) (*domain.RecalculationSummary, error)
}

// PricingReaderSvc defines read operations over derived pricing records.
type PricingReaderSvc interface {
	// ListLandedCosts lists landed cost records. Sellers may not see costs.
	ListLandedCosts(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error)

	// ListPriceTiers lists price tier records.
	ListPriceTiers(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error)

	// CheckQuality runs the tier data-quality rules over stored records.
	CheckQuality(ctx context.Context, mode domain.TransportMode) (*pricing.QualityReport, error)
}

// PricingSvcFacade combines all pricing service interfaces.
type PricingSvcFacade interface {
	PricingCalculatorSvc
	PricingReaderSvc
}

// ReferenceSvc loads and imports the reference data that feeds recalculation.
type ReferenceSvc interface {
	// LoadReferences returns products (deduplicated), active parameters and rates.
	LoadReferences(ctx context.Context) (*domain.ReferenceData, error)

	// ImportReferences stores reference data, typically parsed from a workbook.
	ImportReferences(ctx context.Context, data domain.ReferenceData) (*ImportSummary, error)
}

// ImportSummary counts rows written by ImportReferences.
type ImportSummary struct {
	Products   int `json:"products"`
	Parameters int `json:"parameters"`
	Rates      int `json:"rates"`
}
