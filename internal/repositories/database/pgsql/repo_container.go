package pgsql

import (
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	referenceRepo := newPgxReferenceRepository(dbPool)
	pricingRepo := newPgxPricingRepository(dbPool)
	authorizationRepo := newPgxAuthorizationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:         referenceRepo,
		ExchangeRateRepo:    referenceRepo,
		ImportParameterRepo: referenceRepo,
		PricingRepo:         pricingRepo,
		AuthorizationRepo:   authorizationRepo,
	}
}
