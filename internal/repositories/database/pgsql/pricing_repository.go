package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	"github.com/SscSPs/landed_pricing_app/internal/models"
	"github.com/SscSPs/landed_pricing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const landedCostColumns = `sku, transport_mode, origin, category, base_currency, base_cost, exchange_rate, cost_in_home,
	freight_pct, insurance_pct, duty_pct, customs_tax_pct, customs_broker_pct,
	markup_pct, landed_cost, base_price, computed_at`

const priceTierColumns = `sku, transport_mode, cost_in_home,
	freight_pct, insurance_pct, duty_pct, customs_tax_pct, customs_broker_pct,
	markup_pct, landed_cost, base_price, max_price,
	seller_min, commercial_min, subdirection_min, direction_min, flagged, computed_at`

// PgxPricingRepository stores derived landed cost and price tier records.
type PgxPricingRepository struct {
	BaseRepository
}

func newPgxPricingRepository(pool *pgxpool.Pool) *PgxPricingRepository {
	return &PgxPricingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PricingRepositoryFacade = (*PgxPricingRepository)(nil)

// whereClause builds the filter for listings; empty fields are left out.
func whereClause(filter portsrepo.PricingFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.SKU != "" {
		args = append(args, filter.SKU)
		conds = append(conds, fmt.Sprintf("sku = $%d", len(args)))
	}
	if filter.TransportMode != "" {
		args = append(args, string(filter.TransportMode))
		conds = append(conds, fmt.Sprintf("transport_mode = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListLandedCosts retrieves landed cost records ordered by sku and transport mode.
func (r *PgxPricingRepository) ListLandedCosts(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error) {
	where, args := whereClause(filter)
	query := "SELECT " + landedCostColumns + " FROM landed_costs" + where + " ORDER BY sku, transport_mode;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query landed costs: %w", err)
	}
	modelRecords, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LandedCost])
	if err != nil {
		return nil, fmt.Errorf("failed to scan landed costs: %w", err)
	}

	records := make([]domain.LandedCostRecord, len(modelRecords))
	for i, m := range modelRecords {
		records[i] = mapping.ToDomainLandedCost(m)
	}
	return records, nil
}

// ListPriceTiers retrieves price tiers ordered by sku and transport mode.
func (r *PgxPricingRepository) ListPriceTiers(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error) {
	where, args := whereClause(filter)
	query := "SELECT " + priceTierColumns + " FROM price_tiers" + where + " ORDER BY sku, transport_mode;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price tiers: %w", err)
	}
	modelTiers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PriceTier])
	if err != nil {
		return nil, fmt.Errorf("failed to scan price tiers: %w", err)
	}

	tiers := make([]domain.PriceTierRecord, len(modelTiers))
	for i, m := range modelTiers {
		tiers[i] = mapping.ToDomainPriceTier(m)
	}
	return tiers, nil
}

// FindPriceTier retrieves the tier of one sku and transport mode.
func (r *PgxPricingRepository) FindPriceTier(ctx context.Context, sku string, mode domain.TransportMode) (*domain.PriceTierRecord, error) {
	query := "SELECT " + priceTierColumns + " FROM price_tiers WHERE sku = $1 AND transport_mode = $2;"

	rows, err := r.Pool.Query(ctx, query, sku, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to query price tier: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PriceTier])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("price tier for sku %s (%s)", sku, mode))
		}
		return nil, fmt.Errorf("failed to scan price tier %s/%s: %w", sku, mode, err)
	}

	tier := mapping.ToDomainPriceTier(m)
	return &tier, nil
}

// ReplaceForTransport deletes every row of mode and inserts the new ones in a single transaction.
func (r *PgxPricingRepository) ReplaceForTransport(ctx context.Context, mode domain.TransportMode, landed []domain.LandedCostRecord, tiers []domain.PriceTierRecord) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM landed_costs WHERE transport_mode = $1;`, string(mode))
	batch.Queue(`DELETE FROM price_tiers WHERE transport_mode = $1;`, string(mode))

	landedInsert := "INSERT INTO landed_costs (" + landedCostColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	for _, rec := range landed {
		if rec.TransportMode != mode {
			return fmt.Errorf("%w: landed record for %s has transport mode %s, want %s", apperrors.ErrValidation, rec.SKU, rec.TransportMode, mode)
		}
		m := mapping.ToModelLandedCost(rec)
		batch.Queue(landedInsert,
			m.SKU, m.TransportMode, m.Origin, m.Category, m.BaseCurrency, m.BaseCost, m.ExchangeRate, m.CostInHome,
			m.FreightPct, m.InsurancePct, m.DutyPct, m.CustomsTaxPct, m.CustomsBrokerPct,
			m.MarkupPct, m.LandedCost, m.BasePrice, m.ComputedAt,
		)
	}

	tierInsert := "INSERT INTO price_tiers (" + priceTierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	for _, t := range tiers {
		if t.TransportMode != mode {
			return fmt.Errorf("%w: tier for %s has transport mode %s, want %s", apperrors.ErrValidation, t.SKU, t.TransportMode, mode)
		}
		m := mapping.ToModelPriceTier(t)
		batch.Queue(tierInsert,
			m.SKU, m.TransportMode, m.CostInHome,
			m.FreightPct, m.InsurancePct, m.DutyPct, m.CustomsTaxPct, m.CustomsBrokerPct,
			m.MarkupPct, m.LandedCost, m.BasePrice, m.MaxPrice,
			m.SellerMin, m.CommercialMin, m.SubdirectionMin, m.DirectionMin, m.Flagged, m.ComputedAt,
		)
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		return execBatch(ctx, tx, batch)
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s pricing records: %w", mode, err)
	}
	return nil
}
