package repositories

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
)

// AuthorizationFilter narrows request listings. Zero values match everything.
type AuthorizationFilter struct {
	Statuses    []domain.AuthorizationStatus
	RequesterID string
	ApproverID  string
}

// AuthorizationMutator receives the locked current row and returns the row to store.
// Returning an error aborts the transition and leaves the row untouched.
type AuthorizationMutator func(current domain.AuthorizationRequest) (*domain.AuthorizationRequest, error)

// AuthorizationReader defines read operations for authorization requests.
type AuthorizationReader interface {
	// FindAuthorizationByID returns the request or apperrors.ErrNotFound.
	FindAuthorizationByID(ctx context.Context, id string) (*domain.AuthorizationRequest, error)

	// ListAuthorizations returns matching requests, newest first.
	ListAuthorizations(ctx context.Context, filter AuthorizationFilter) ([]domain.AuthorizationRequest, error)
}

// AuthorizationWriter defines write operations for authorization requests.
type AuthorizationWriter interface {
	// SaveAuthorization persists a new request.
	SaveAuthorization(ctx context.Context, req domain.AuthorizationRequest) error

	// UpdateAuthorizationWithLock serializes read-modify-write on one request:
	// the row is locked, passed to fn, and the result stored before the lock is released.
	UpdateAuthorizationWithLock(ctx context.Context, id string, fn AuthorizationMutator) (*domain.AuthorizationRequest, error)
}

// AuthorizationRepositoryFacade combines authorization reads and writes.
type AuthorizationRepositoryFacade interface {
	AuthorizationReader
	AuthorizationWriter
}
