package repositories

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
)

// PricingFilter narrows record listings. Empty fields match everything.
type PricingFilter struct {
	SKU           string
	TransportMode domain.TransportMode
}

// PricingReader defines read operations for derived pricing records.
type PricingReader interface {
	// ListLandedCosts returns landed cost records ordered by sku, then transport mode.
	ListLandedCosts(ctx context.Context, filter PricingFilter) ([]domain.LandedCostRecord, error)

	// ListPriceTiers returns price tier records ordered by sku, then transport mode.
	ListPriceTiers(ctx context.Context, filter PricingFilter) ([]domain.PriceTierRecord, error)

	// FindPriceTier returns the tier for one sku and transport mode, or apperrors.ErrNotFound.
	FindPriceTier(ctx context.Context, sku string, mode domain.TransportMode) (*domain.PriceTierRecord, error)
}

// PricingWriter defines write operations for derived pricing records.
type PricingWriter interface {
	// ReplaceForTransport atomically swaps every landed cost and tier row of mode
	// for the supplied ones. Rows of other transport modes are left untouched.
	ReplaceForTransport(ctx context.Context, mode domain.TransportMode, landed []domain.LandedCostRecord, tiers []domain.PriceTierRecord) error
}

// PricingRepositoryFacade combines pricing reads and writes.
type PricingRepositoryFacade interface {
	PricingReader
	PricingWriter
}
