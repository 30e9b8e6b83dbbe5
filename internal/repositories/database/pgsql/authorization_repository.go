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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const authorizationColumns = `id, sku, transport_mode, requester_id, requester_role, escalated_to,
	proposed_price, reference_threshold, discount_pct, client, quantity, justification,
	status, approver_id, approver_role, resolved_at, comments, created_at`

// uniqueViolation is the Postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// PgxAuthorizationRepository stores discount authorization requests.
type PgxAuthorizationRepository struct {
	BaseRepository
}

func newPgxAuthorizationRepository(pool *pgxpool.Pool) *PgxAuthorizationRepository {
	return &PgxAuthorizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuthorizationRepositoryFacade = (*PgxAuthorizationRepository)(nil)

// SaveAuthorization inserts a new request.
func (r *PgxAuthorizationRepository) SaveAuthorization(ctx context.Context, req domain.AuthorizationRequest) error {
	m := mapping.ToModelAuthorization(req)
	query := "INSERT INTO authorization_requests (" + authorizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`

	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.SKU, m.TransportMode, m.RequesterID, m.RequesterRole, m.EscalatedTo,
		m.ProposedPrice, m.ReferenceThreshold, m.DiscountPct, m.Client, m.Quantity, m.Justification,
		m.Status, m.ApproverID, m.ApproverRole, m.ResolvedAt, m.Comments, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: authorization request %s", apperrors.ErrDuplicate, req.ID)
		}
		return fmt.Errorf("failed to save authorization request %s: %w", req.ID, err)
	}
	return nil
}

// FindAuthorizationByID retrieves a request by ID.
func (r *PgxAuthorizationRepository) FindAuthorizationByID(ctx context.Context, id string) (*domain.AuthorizationRequest, error) {
	query := "SELECT " + authorizationColumns + " FROM authorization_requests WHERE id = $1;"
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query authorization request %s: %w", id, err)
	}
	return collectOneAuthorization(rows, id)
}

// ListAuthorizations retrieves matching requests, newest first.
func (r *PgxAuthorizationRepository) ListAuthorizations(ctx context.Context, filter portsrepo.AuthorizationFilter) ([]domain.AuthorizationRequest, error) {
	var conds []string
	var args []any
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.RequesterID != "" {
		args = append(args, filter.RequesterID)
		conds = append(conds, fmt.Sprintf("requester_id = $%d", len(args)))
	}
	if filter.ApproverID != "" {
		args = append(args, filter.ApproverID)
		conds = append(conds, fmt.Sprintf("approver_id = $%d", len(args)))
	}

	query := "SELECT " + authorizationColumns + " FROM authorization_requests"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authorization requests: %w", err)
	}
	modelReqs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuthorizationRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to scan authorization requests: %w", err)
	}
	return mapping.ToDomainAuthorizations(modelReqs), nil
}

// UpdateAuthorizationWithLock locks the row with SELECT ... FOR UPDATE, applies fn and
// writes the resolution columns back before committing.
func (r *PgxAuthorizationRepository) UpdateAuthorizationWithLock(ctx context.Context, id string, fn portsrepo.AuthorizationMutator) (*domain.AuthorizationRequest, error) {
	var updated *domain.AuthorizationRequest
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		query := "SELECT " + authorizationColumns + " FROM authorization_requests WHERE id = $1 FOR UPDATE;"
		rows, err := tx.Query(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to lock authorization request %s: %w", id, err)
		}
		current, err := collectOneAuthorization(rows, id)
		if err != nil {
			return err
		}

		next, err := fn(*current)
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		m := mapping.ToModelAuthorization(*next)
		_, err = tx.Exec(ctx, `
			UPDATE authorization_requests
			SET status = $2, approver_id = $3, approver_role = $4, resolved_at = $5, comments = $6
			WHERE id = $1;`,
			m.ID, m.Status, m.ApproverID, m.ApproverRole, m.ResolvedAt, m.Comments,
		)
		if err != nil {
			return fmt.Errorf("failed to update authorization request %s: %w", id, err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func collectOneAuthorization(rows pgx.Rows, id string) (*domain.AuthorizationRequest, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AuthorizationRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("authorization request " + id)
		}
		return nil, fmt.Errorf("failed to scan authorization request %s: %w", id, err)
	}
	req := mapping.ToDomainAuthorization(m)
	return &req, nil
}
