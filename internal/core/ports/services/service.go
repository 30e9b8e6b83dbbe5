package services

import "github.com/SscSPs/landed_pricing_app/internal/events"

// ServiceContainer holds instances of all the application services.
// It is the entry point used by handlers and the CLI.
type ServiceContainer struct {
	Pricing       PricingSvcFacade
	Reference     ReferenceSvc
	Authorization AuthorizationSvcFacade
	// Events is nil when the publisher cannot be streamed from.
	Events events.Source
}
