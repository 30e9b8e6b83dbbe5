package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type pricingService struct {
	BaseService
	references  portssvc.ReferenceSvc
	pricingRepo portsrepo.PricingRepositoryFacade
	policy      pricing.Policy
	workers     int
	metrics     *metrics.Recorder
}

// PricingOption is a functional option for configuring the pricing service
type PricingOption func(*pricingService)

// WithPolicy overrides the default calculator policy.
func WithPolicy(p pricing.Policy) PricingOption {
	return func(s *pricingService) {
		s.policy = p
	}
}

// WithWorkers bounds the number of products computed concurrently.
func WithWorkers(n int) PricingOption {
	return func(s *pricingService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPricingClock injects the clock used to stamp computed records.
func WithPricingClock(clock domain.Clock) PricingOption {
	return func(s *pricingService) {
		s.clock = clock
	}
}

// WithPricingMetrics attaches a metrics recorder.
func WithPricingMetrics(rec *metrics.Recorder) PricingOption {
	return func(s *pricingService) {
		s.metrics = rec
	}
}

// NewPricingService creates a new pricing service with the provided options
func NewPricingService(references portssvc.ReferenceSvc, pricingRepo portsrepo.PricingRepositoryFacade, options ...PricingOption) portssvc.PricingSvcFacade {
	svc := &pricingService{
		references:  references,
		pricingRepo: pricingRepo,
		policy:      pricing.DefaultPolicy(),
		workers:     8,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

func (s *pricingService) Recalculate(ctx context.Context, mode domain.TransportMode) (*domain.RecalculationSummary, error) {
	mode = domain.ParseTransportMode(string(mode))
	summary, err := s.recalculate(ctx, mode)
	if err != nil {
		s.metrics.Recalculation(string(mode), err, 0, 0, 0)
		s.LogError(ctx, err, "Recalculation failed", slog.String("transport_mode", string(mode)))
		return nil, err
	}
	s.metrics.Recalculation(string(mode), nil, summary.LandedRows, summary.TierRows, len(summary.FlaggedSKUs))
	s.LogInfo(ctx, "Recalculation finished",
		slog.String("transport_mode", string(mode)),
		slog.Int("landed_rows", summary.LandedRows),
		slog.Int("tier_rows", summary.TierRows),
		slog.Int("flagged_skus", len(summary.FlaggedSKUs)))
	return summary, nil
}

func (s *pricingService) recalculate(ctx context.Context, mode domain.TransportMode) (*domain.RecalculationSummary, error) {
	if mode == "" {
		return nil, fmt.Errorf("%w: transport mode is required", apperrors.ErrValidation)
	}

	refs, err := s.references.LoadReferences(ctx)
	if err != nil {
		return nil, err
	}

	in := pricing.Inputs{
		Rates:      pricing.NewRateTable(s.policy.HomeCurrency, refs.Rates),
		Parameters: pricing.NewParameterSet(refs.Parameters),
		Mode:       mode,
		ComputedAt: s.Now(),
	}

	// Products arrive sorted by sku; writing by index keeps that order.
	landed := make([]domain.LandedCostRecord, len(refs.Products))
	tiers := make([]domain.PriceTierRecord, len(refs.Products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, product := range refs.Products {
		i, product := i, product
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lc := pricing.CalculateLandedCost(s.policy, product, in)
			landed[i] = lc
			tiers[i] = pricing.DeriveTier(lc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute %s records: %w", mode, err)
	}

	report := pricing.CheckTierSet(tiers)
	if err := s.pricingRepo.ReplaceForTransport(ctx, mode, landed, tiers); err != nil {
		return nil, fmt.Errorf("replace %s records: %w", mode, err)
	}

	return &domain.RecalculationSummary{
		TransportMode: mode,
		LandedRows:    len(landed),
		TierRows:      len(tiers),
		FlaggedSKUs:   report.FlaggedSKUs,
		ComputedAt:    in.ComputedAt,
	}, nil
}

func (s *pricingService) ListLandedCosts(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error) {
	if !actor.Role.IsValid() || actor.Role == domain.RoleSeller {
		err := fmt.Errorf("%w: %s may not view landed costs", apperrors.ErrRoleNotEligible, actor.Role)
		s.LogError(ctx, err, "Landed cost listing denied")
		return nil, err
	}
	records, err := s.pricingRepo.ListLandedCosts(ctx, normalizeFilter(filter))
	if err != nil {
		s.LogError(ctx, err, "Failed to list landed costs")
		return nil, fmt.Errorf("failed to list landed costs: %w", err)
	}
	return records, nil
}

func (s *pricingService) ListPriceTiers(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error) {
	if !actor.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrRoleNotEligible, actor.Role)
	}
	tiers, err := s.pricingRepo.ListPriceTiers(ctx, normalizeFilter(filter))
	if err != nil {
		s.LogError(ctx, err, "Failed to list price tiers")
		return nil, fmt.Errorf("failed to list price tiers: %w", err)
	}
	return tiers, nil
}

func (s *pricingService) CheckQuality(ctx context.Context, mode domain.TransportMode) (*pricing.QualityReport, error) {
	tiers, err := s.pricingRepo.ListPriceTiers(ctx, normalizeFilter(portsrepo.PricingFilter{TransportMode: mode}))
	if err != nil {
		s.LogError(ctx, err, "Failed to load tiers for quality check")
		return nil, fmt.Errorf("failed to load price tiers: %w", err)
	}
	report := pricing.CheckTierSet(tiers)
	s.LogInfo(ctx, "Quality check finished",
		slog.String("transport_mode", string(mode)),
		slog.Int("checked", report.Checked),
		slog.Int("issues", len(report.Issues)))
	return &report, nil
}

func normalizeFilter(f portsrepo.PricingFilter) portsrepo.PricingFilter {
	f.SKU = strings.TrimSpace(f.SKU)
	if f.TransportMode != "" {
		f.TransportMode = domain.ParseTransportMode(string(f.TransportMode))
	}
	return f
}

// FixedClock returns a clock that always reads t. Useful for reproducible runs.
func FixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}
