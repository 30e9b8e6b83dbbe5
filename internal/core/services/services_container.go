package services

import (
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/SscSPs/landed_pricing_app/internal/metrics"
	"github.com/SscSPs/landed_pricing_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher and rec may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher, rec *metrics.Recorder) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Reference = NewReferenceService(repos.ProductRepo, repos.ExchangeRateRepo, repos.ImportParameterRepo)

	container.Pricing = NewPricingService(
		container.Reference,
		repos.PricingRepo,
		WithPolicy(cfg.PricingPolicy()),
		WithWorkers(cfg.RecalcWorkers),
		WithPricingMetrics(rec),
	)

	container.Authorization = NewAuthorizationService(
		repos.AuthorizationRepo,
		repos.PricingRepo,
		WithPublisher(publisher),
		WithAuthorizationMetrics(rec),
	)

	if source, ok := publisher.(events.Source); ok {
		container.Events = source
	}

	return container
}
