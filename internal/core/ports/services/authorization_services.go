package services

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/dto"
)

// AuthorizationReaderSvc defines queries over authorization requests.
type AuthorizationReaderSvc interface {
	// GetAuthorization returns a request the actor is allowed to see.
	GetAuthorization(ctx context.Context, actor domain.Actor, id string) (*domain.AuthorizationRequest, error)

	// ListPending returns the pending requests the actor could resolve.
	ListPending(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error)

	// ListMine returns the requests the actor created, newest first.
	ListMine(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error)

	// ListResolved returns resolved requests visible to the actor.
	ListResolved(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error)
}

// AuthorizationWriterSvc defines the state transitions of authorization requests.
type AuthorizationWriterSvc interface {
	// CreateAuthorization escalates a below-threshold price into a new pending request.
	CreateAuthorization(ctx context.Context, actor domain.Actor, req dto.CreateAuthorizationRequest) (*domain.AuthorizationRequest, error)

	// Approve moves a pending request to Approved.
	Approve(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error)

	// Reject moves a pending request to Rejected.
	Reject(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error)
}

// AuthorizationSvcFacade combines all authorization service interfaces.
type AuthorizationSvcFacade interface {
	AuthorizationReaderSvc
	AuthorizationWriterSvc
}
