package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	"github.com/SscSPs/landed_pricing_app/internal/models"
	"github.com/SscSPs/landed_pricing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReferenceRepository stores the catalog, exchange rates and import parameters.
type PgxReferenceRepository struct {
	BaseRepository
	now func() time.Time
}

func newPgxReferenceRepository(pool *pgxpool.Pool) *PgxReferenceRepository {
	return &PgxReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		now:            domain.SystemClock,
	}
}

// Ensure implementation matches interface
var (
	_ portsrepo.ProductRepositoryFacade         = (*PgxReferenceRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade    = (*PgxReferenceRepository)(nil)
	_ portsrepo.ImportParameterRepositoryFacade = (*PgxReferenceRepository)(nil)
)

// ListProducts retrieves all catalog rows.
func (r *PgxReferenceRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT sku, origin, category, base_cost, base_currency, updated_at, created_at, last_updated_at
		FROM products
		ORDER BY sku;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	modelProducts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	products := make([]domain.Product, len(modelProducts))
	for i, m := range modelProducts {
		products[i] = mapping.ToDomainProduct(m)
	}
	return products, nil
}

// UpsertProducts inserts products, keeping the row with the most recent catalog timestamp per sku.
func (r *PgxReferenceRepository) UpsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	query := `
		INSERT INTO products (sku, origin, category, base_cost, base_currency, updated_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (sku) DO UPDATE SET
			origin = EXCLUDED.origin,
			category = EXCLUDED.category,
			base_cost = EXCLUDED.base_cost,
			base_currency = EXCLUDED.base_currency,
			updated_at = EXCLUDED.updated_at,
			last_updated_at = EXCLUDED.last_updated_at
		WHERE products.updated_at <= EXCLUDED.updated_at;
	`
	now := r.now()
	batch := &pgx.Batch{}
	for _, p := range products {
		m := mapping.ToModelProduct(p)
		batch.Queue(query, m.SKU, m.Origin, m.Category, m.BaseCost, m.BaseCurrency, m.UpdatedAt, now)
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		return execBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert products: %w", err)
	}
	return len(products), nil
}

// ListExchangeRates retrieves every stored rate.
func (r *PgxReferenceRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT currency, rate_to_home, effective_date, created_at, last_updated_at
		FROM exchange_rates
		ORDER BY currency, effective_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	modelRates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	rates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}

// SaveExchangeRates inserts or updates rates keyed by currency and effective date.
func (r *PgxReferenceRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	query := `
		INSERT INTO exchange_rates (currency, rate_to_home, effective_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (currency, effective_date) DO UPDATE SET
			rate_to_home = EXCLUDED.rate_to_home,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	now := r.now()
	batch := &pgx.Batch{}
	for _, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		batch.Queue(query, m.Currency, m.RateToHome, m.EffectiveDate, now)
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		return execBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save exchange rates: %w", err)
	}
	return len(rates), nil
}

// ListActiveImportParameters retrieves the parameters whose validity is still open.
func (r *PgxReferenceRepository) ListActiveImportParameters(ctx context.Context) ([]domain.ImportParameter, error) {
	query := `
		SELECT id, concept, kind, value, valid_from, valid_until
		FROM import_parameters
		WHERE valid_until IS NULL
		ORDER BY concept;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query import parameters: %w", err)
	}
	modelParams, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ImportParameter])
	if err != nil {
		return nil, fmt.Errorf("failed to scan import parameters: %w", err)
	}

	params := make([]domain.ImportParameter, len(modelParams))
	for i, m := range modelParams {
		params[i] = mapping.ToDomainImportParameter(m)
	}
	return params, nil
}

// ReplaceActiveImportParameters closes the open row of each concept and inserts the new one.
func (r *PgxReferenceRepository) ReplaceActiveImportParameters(ctx context.Context, params []domain.ImportParameter) (int, error) {
	closeQuery := `
		UPDATE import_parameters SET valid_until = $2
		WHERE concept = $1 AND valid_until IS NULL;
	`
	insertQuery := `
		INSERT INTO import_parameters (concept, kind, value, valid_from)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, p := range params {
		m := mapping.ToModelImportParameter(p)
		batch.Queue(closeQuery, m.Concept, m.ValidFrom)
		batch.Queue(insertQuery, m.Concept, m.Kind, m.Value, m.ValidFrom)
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		return execBatch(ctx, tx, batch)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace import parameters: %w", err)
	}
	return len(params), nil
}
