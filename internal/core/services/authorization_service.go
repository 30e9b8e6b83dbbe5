package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/escalation"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/dto"
	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/SscSPs/landed_pricing_app/internal/metrics"
	"github.com/google/uuid"
)

const (
	actionCreate  = "create"
	actionApprove = "approve"
	actionReject  = "reject"
)

type authorizationService struct {
	BaseService
	authRepo   portsrepo.AuthorizationRepositoryFacade
	tierReader portsrepo.PricingReader
	publisher  events.Publisher
	metrics    *metrics.Recorder
	newID      func() string
}

// AuthorizationOption is a functional option for configuring the authorization service
type AuthorizationOption func(*authorizationService)

// WithPublisher sets the event publisher. Defaults to events.Noop.
func WithPublisher(p events.Publisher) AuthorizationOption {
	return func(s *authorizationService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithAuthorizationClock injects the clock used for creation and resolution stamps.
func WithAuthorizationClock(clock domain.Clock) AuthorizationOption {
	return func(s *authorizationService) {
		s.clock = clock
	}
}

// WithAuthorizationMetrics attaches a metrics recorder.
func WithAuthorizationMetrics(rec *metrics.Recorder) AuthorizationOption {
	return func(s *authorizationService) {
		s.metrics = rec
	}
}

// WithIDGenerator overrides request ID generation.
func WithIDGenerator(gen func() string) AuthorizationOption {
	return func(s *authorizationService) {
		s.newID = gen
	}
}

// NewAuthorizationService creates a new authorization service with the provided options
func NewAuthorizationService(authRepo portsrepo.AuthorizationRepositoryFacade, tierReader portsrepo.PricingReader, options ...AuthorizationOption) portssvc.AuthorizationSvcFacade {
	svc := &authorizationService{
		authRepo:   authRepo,
		tierReader: tierReader,
		publisher:  events.Noop{},
		newID:      uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthorizationSvcFacade = (*authorizationService)(nil)

func (s *authorizationService) CreateAuthorization(ctx context.Context, actor domain.Actor, req dto.CreateAuthorizationRequest) (*domain.AuthorizationRequest, error) {
	created, err := s.create(ctx, actor, req)
	s.metrics.Transition(actionCreate, string(actor.Role), err)
	if err != nil {
		s.LogError(ctx, err, "Authorization request not created",
			slog.String("sku", req.SKU),
			slog.String("proposed_price", req.ProposedPrice.String()))
		return nil, err
	}
	s.LogInfo(ctx, "Authorization request created",
		slog.String("request_id", created.ID),
		slog.String("escalated_to", string(created.EscalatedTo)))
	s.publish(ctx, events.TypeAuthorizationCreated, *created, actor)
	return created, nil
}

func (s *authorizationService) create(ctx context.Context, actor domain.Actor, req dto.CreateAuthorizationRequest) (*domain.AuthorizationRequest, error) {
	if !actor.Role.CanRequest() {
		return nil, fmt.Errorf("%w: %q cannot request authorizations", apperrors.ErrRoleNotEligible, actor.Role)
	}
	sku := strings.TrimSpace(req.SKU)
	mode := domain.ParseTransportMode(req.TransportMode)
	if sku == "" || mode == "" {
		return nil, fmt.Errorf("%w: sku and transport mode are required", apperrors.ErrValidation)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	tier, err := s.findTier(ctx, sku, mode)
	if err != nil {
		return nil, err
	}
	decision, err := escalation.Resolve(escalation.Request{
		SKU:           sku,
		TransportMode: mode,
		RequesterRole: actor.Role,
		ProposedPrice: req.ProposedPrice,
	}, tier)
	if err != nil {
		return nil, err
	}

	record := domain.AuthorizationRequest{
		ID:                 s.newID(),
		SKU:                sku,
		TransportMode:      mode,
		RequesterID:        actor.ID,
		RequesterRole:      actor.Role,
		EscalatedTo:        decision.EscalatedTo,
		ProposedPrice:      req.ProposedPrice,
		ReferenceThreshold: decision.ReferenceThreshold,
		DiscountPct:        decision.DiscountPct,
		Client:             trimmedOrNil(req.Client),
		Quantity:           req.Quantity,
		Justification:      trimmedOrNil(req.Justification),
		Status:             domain.StatusPending,
		CreatedAt:          s.Now(),
	}
	if err := s.authRepo.SaveAuthorization(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save authorization request: %w", err)
	}
	return &record, nil
}

func (s *authorizationService) Approve(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error) {
	return s.resolve(ctx, actor, id, domain.StatusApproved, comments)
}

func (s *authorizationService) Reject(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error) {
	return s.resolve(ctx, actor, id, domain.StatusRejected, comments)
}

func (s *authorizationService) resolve(ctx context.Context, actor domain.Actor, id string, status domain.AuthorizationStatus, comments *string) (*domain.AuthorizationRequest, error) {
	action, eventType := actionApprove, events.TypeAuthorizationApproved
	if status == domain.StatusRejected {
		action, eventType = actionReject, events.TypeAuthorizationRejected
	}

	updated, err := s.authRepo.UpdateAuthorizationWithLock(ctx, id, func(current domain.AuthorizationRequest) (*domain.AuthorizationRequest, error) {
		if current.IsResolved() {
			return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyResolved, current.ID, current.Status)
		}
		tier, err := s.findTier(ctx, current.SKU, current.TransportMode)
		if err != nil {
			return nil, err
		}
		if err := escalation.CanResolve(actor.Role, current, tier); err != nil {
			return nil, err
		}
		next := current.Resolve(domain.Resolution{
			Status:     status,
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Comments:   trimmedOrNil(comments),
			ResolvedAt: s.Now(),
		})
		return &next, nil
	})
	s.metrics.Transition(action, string(actor.Role), err)
	if err != nil {
		s.LogError(ctx, err, "Authorization transition failed",
			slog.String("request_id", id),
			slog.String("action", action))
		return nil, err
	}

	s.LogInfo(ctx, "Authorization request resolved",
		slog.String("request_id", id),
		slog.String("status", string(updated.Status)))
	s.publish(ctx, eventType, *updated, actor)
	return updated, nil
}

func (s *authorizationService) GetAuthorization(ctx context.Context, actor domain.Actor, id string) (*domain.AuthorizationRequest, error) {
	req, err := s.authRepo.FindAuthorizationByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to find authorization request", slog.String("request_id", id))
		return nil, err
	}
	if s.canView(ctx, actor, *req) {
		return req, nil
	}
	return nil, fmt.Errorf("%w: request %s is not visible to %s", apperrors.ErrInsufficientAuthority, id, actor.Role)
}

// canView: the requester, the approver, senior oversight roles, and anyone who could resolve it.
func (s *authorizationService) canView(ctx context.Context, actor domain.Actor, req domain.AuthorizationRequest) bool {
	if req.RequesterID == actor.ID {
		return true
	}
	if req.ApproverID != nil && *req.ApproverID == actor.ID {
		return true
	}
	if actor.Role.Rank() >= domain.RoleSubdirection.Rank() {
		return true
	}
	tier, err := s.findTier(ctx, req.SKU, req.TransportMode)
	if err != nil {
		return false
	}
	return escalation.CanResolve(actor.Role, req, tier) == nil
}

func (s *authorizationService) ListPending(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	pending, err := s.authRepo.ListAuthorizations(ctx, portsrepo.AuthorizationFilter{
		Statuses: []domain.AuthorizationStatus{domain.StatusPending},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending authorizations")
		return nil, fmt.Errorf("failed to list pending authorizations: %w", err)
	}

	type key struct {
		sku  string
		mode domain.TransportMode
	}
	tiers := make(map[key]*domain.PriceTierRecord)
	for _, r := range pending {
		k := key{r.SKU, r.TransportMode}
		if _, done := tiers[k]; done {
			continue
		}
		tier, err := s.findTier(ctx, r.SKU, r.TransportMode)
		if err != nil {
			return nil, err
		}
		tiers[k] = tier
	}

	return escalation.Visible(actor.Role, pending, func(r domain.AuthorizationRequest) *domain.PriceTierRecord {
		return tiers[key{r.SKU, r.TransportMode}]
	}), nil
}

func (s *authorizationService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	reqs, err := s.authRepo.ListAuthorizations(ctx, portsrepo.AuthorizationFilter{RequesterID: actor.ID})
	if err != nil {
		s.LogError(ctx, err, "Failed to list own authorizations")
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	return reqs, nil
}

func (s *authorizationService) ListResolved(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	filter := portsrepo.AuthorizationFilter{
		Statuses: []domain.AuthorizationStatus{domain.StatusApproved, domain.StatusRejected},
	}
	switch {
	case actor.Role == domain.RoleCommercialManagement:
		filter.ApproverID = actor.ID
	case actor.Role.Rank() >= domain.RoleSubdirection.Rank():
	default:
		return nil, fmt.Errorf("%w: %q cannot list resolved authorizations", apperrors.ErrRoleNotEligible, actor.Role)
	}

	reqs, err := s.authRepo.ListAuthorizations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list resolved authorizations")
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	return reqs, nil
}

// findTier returns nil without error when no tier exists.
func (s *authorizationService) findTier(ctx context.Context, sku string, mode domain.TransportMode) (*domain.PriceTierRecord, error) {
	tier, err := s.tierReader.FindPriceTier(ctx, sku, mode)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load price tier: %w", err)
	}
	return tier, nil
}

// publish never fails the caller; delivery problems are only logged.
func (s *authorizationService) publish(ctx context.Context, eventType string, req domain.AuthorizationRequest, actor domain.Actor) {
	evt := events.Event{
		Type:          eventType,
		RequestID:     req.ID,
		SKU:           req.SKU,
		TransportMode: string(req.TransportMode),
		Status:        string(req.Status),
		EscalatedTo:   string(req.EscalatedTo),
		Actor:         actor.ID,
		OccurredAt:    s.Now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.LogError(ctx, err, "Failed to publish authorization event",
			slog.String("request_id", req.ID),
			slog.String("type", eventType))
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
