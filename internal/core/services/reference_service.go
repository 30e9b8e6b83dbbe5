package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type referenceService struct {
	BaseService
	productRepo   portsrepo.ProductRepositoryFacade
	rateRepo      portsrepo.ExchangeRateRepositoryFacade
	parameterRepo portsrepo.ImportParameterRepositoryFacade
}

// NewReferenceService creates the reference loader.
func NewReferenceService(
	productRepo portsrepo.ProductRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	parameterRepo portsrepo.ImportParameterRepositoryFacade,
) portssvc.ReferenceSvc {
	return &referenceService{
		productRepo:   productRepo,
		rateRepo:      rateRepo,
		parameterRepo: parameterRepo,
	}
}

var _ portssvc.ReferenceSvc = (*referenceService)(nil)

func (s *referenceService) LoadReferences(ctx context.Context) (*domain.ReferenceData, error) {
	var data domain.ReferenceData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.productRepo.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		data.Products = pricing.DedupeProducts(products)
		return nil
	})
	g.Go(func() error {
		params, err := s.parameterRepo.ListActiveImportParameters(gctx)
		if err != nil {
			return fmt.Errorf("load import parameters: %w", err)
		}
		data.Parameters = params
		return nil
	})
	g.Go(func() error {
		rates, err := s.rateRepo.ListExchangeRates(gctx)
		if err != nil {
			return fmt.Errorf("load exchange rates: %w", err)
		}
		data.Rates = rates
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load reference data")
		return nil, err
	}

	s.LogDebug(ctx, "Reference data loaded",
		slog.Int("products", len(data.Products)),
		slog.Int("parameters", len(data.Parameters)),
		slog.Int("rates", len(data.Rates)))
	return &data, nil
}

func (s *referenceService) ImportReferences(ctx context.Context, data domain.ReferenceData) (*portssvc.ImportSummary, error) {
	if err := validateReferences(data); err != nil {
		s.LogError(ctx, err, "Rejected reference import")
		return nil, err
	}

	summary := &portssvc.ImportSummary{}
	var err error
	if len(data.Products) > 0 {
		if summary.Products, err = s.productRepo.UpsertProducts(ctx, data.Products); err != nil {
			s.LogError(ctx, err, "Failed to import products")
			return nil, fmt.Errorf("import products: %w", err)
		}
	}
	if len(data.Parameters) > 0 {
		if summary.Parameters, err = s.parameterRepo.ReplaceActiveImportParameters(ctx, data.Parameters); err != nil {
			s.LogError(ctx, err, "Failed to import parameters")
			return nil, fmt.Errorf("import parameters: %w", err)
		}
	}
	if len(data.Rates) > 0 {
		if summary.Rates, err = s.rateRepo.SaveExchangeRates(ctx, data.Rates); err != nil {
			s.LogError(ctx, err, "Failed to import exchange rates")
			return nil, fmt.Errorf("import exchange rates: %w", err)
		}
	}

	s.LogInfo(ctx, "Reference data imported",
		slog.Int("products", summary.Products),
		slog.Int("parameters", summary.Parameters),
		slog.Int("rates", summary.Rates))
	return summary, nil
}

func validateReferences(data domain.ReferenceData) error {
	for i, p := range data.Products {
		if strings.TrimSpace(p.SKU) == "" {
			return fmt.Errorf("%w: product row %d has no sku", apperrors.ErrValidation, i+1)
		}
		if p.BaseCost.IsNegative() {
			return fmt.Errorf("%w: product %s has a negative base cost", apperrors.ErrValidation, p.SKU)
		}
	}
	for i, p := range data.Parameters {
		if strings.TrimSpace(p.Concept) == "" {
			return fmt.Errorf("%w: parameter row %d has no concept", apperrors.ErrValidation, i+1)
		}
	}
	for _, r := range data.Rates {
		if strings.TrimSpace(r.Currency) == "" {
			return fmt.Errorf("%w: exchange rate without currency", apperrors.ErrValidation)
		}
		if !r.RateToHome.IsPositive() {
			return fmt.Errorf("%w: exchange rate for %s must be positive", apperrors.ErrValidation, r.Currency)
		}
	}
	return nil
}
