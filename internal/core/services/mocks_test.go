package services_test

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Mock AuthorizationRepository ---
type MockAuthorizationRepository struct {
	mock.Mock
}

func (m *MockAuthorizationRepository) FindAuthorizationByID(ctx context.Context, id string) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationRepository) ListAuthorizations(ctx context.Context, filter portsrepo.AuthorizationFilter) ([]domain.AuthorizationRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationRepository) SaveAuthorization(ctx context.Context, req domain.AuthorizationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// UpdateAuthorizationWithLock returns the configured current row through fn, the way a locked read would.
func (m *MockAuthorizationRepository) UpdateAuthorizationWithLock(ctx context.Context, id string, fn portsrepo.AuthorizationMutator) (*domain.AuthorizationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	current := args.Get(0).(*domain.AuthorizationRequest)
	return fn(*current)
}

// --- Mock PricingRepository ---
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) ListLandedCosts(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandedCostRecord), args.Error(1)
}

func (m *MockPricingRepository) ListPriceTiers(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceTierRecord), args.Error(1)
}

func (m *MockPricingRepository) FindPriceTier(ctx context.Context, sku string, mode domain.TransportMode) (*domain.PriceTierRecord, error) {
	args := m.Called(ctx, sku, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceTierRecord), args.Error(1)
}

func (m *MockPricingRepository) ReplaceForTransport(ctx context.Context, mode domain.TransportMode, landed []domain.LandedCostRecord, tiers []domain.PriceTierRecord) error {
	args := m.Called(ctx, mode, landed, tiers)
	return args.Error(0)
}

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt events.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) LoadReferences(ctx context.Context) (*domain.ReferenceData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceData), args.Error(1)
}

func (m *MockReferenceService) ImportReferences(ctx context.Context, data domain.ReferenceData) (*portssvc.ImportSummary, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ImportSummary), args.Error(1)
}
