package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationRequest_Validate(t *testing.T) {
	now := time.Now()
	approver := "u-2"
	zeroQty := 0

	base := domain.AuthorizationRequest{
		ID:            "req-1",
		SKU:           "X1",
		TransportMode: domain.TransportMaritime,
		RequesterID:   "u-1",
		RequesterRole: domain.RoleSeller,
		ProposedPrice: decimal.NewFromInt(1700),
		Status:        domain.StatusPending,
	}

	tests := []struct {
		name    string
		mutate  func(r *domain.AuthorizationRequest)
		wantErr bool
		errMsg  string
	}{
		{name: "valid pending request", mutate: func(r *domain.AuthorizationRequest) {}},
		{
			name:    "missing sku",
			mutate:  func(r *domain.AuthorizationRequest) { r.SKU = "" },
			wantErr: true,
			errMsg:  "sku is required",
		},
		{
			name:    "zero proposed price",
			mutate:  func(r *domain.AuthorizationRequest) { r.ProposedPrice = decimal.Zero },
			wantErr: true,
			errMsg:  "proposed price must be positive",
		},
		{
			name: "pending with approver",
			mutate: func(r *domain.AuthorizationRequest) {
				r.ApproverID = &approver
			},
			wantErr: true,
			errMsg:  "pending request cannot carry resolution data",
		},
		{
			name: "approved without resolution time",
			mutate: func(r *domain.AuthorizationRequest) {
				r.Status = domain.StatusApproved
				r.ApproverID = &approver
			},
			wantErr: true,
			errMsg:  "resolved request must carry approver",
		},
		{
			name: "approved with full resolution",
			mutate: func(r *domain.AuthorizationRequest) {
				r.Status = domain.StatusApproved
				r.ApproverID = &approver
				r.ResolvedAt = &now
			},
		},
		{
			name:    "non-positive quantity",
			mutate:  func(r *domain.AuthorizationRequest) { r.Quantity = &zeroQty },
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizationRequest_Resolve(t *testing.T) {
	pending := domain.AuthorizationRequest{ID: "req-1", Status: domain.StatusPending}
	comment := "ok for this client"
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	resolved := pending.Resolve(domain.Resolution{
		Status:     domain.StatusApproved,
		ActorID:    "u-9",
		ActorRole:  domain.RoleCommercialManagement,
		Comments:   &comment,
		ResolvedAt: at,
	})

	require.NotNil(t, resolved.ApproverID)
	assert.Equal(t, "u-9", *resolved.ApproverID)
	assert.Equal(t, domain.RoleCommercialManagement, *resolved.ApproverRole)
	assert.Equal(t, at, *resolved.ResolvedAt)
	assert.True(t, resolved.IsResolved())
	assert.False(t, pending.IsResolved(), "original must stay untouched")
	assert.Nil(t, pending.ApproverID)
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, domain.RoleDirection.Outranks(domain.RoleSubdirection))
	assert.True(t, domain.RoleAdmin.Outranks(domain.RoleDirection))
	assert.False(t, domain.RoleSeller.Outranks(domain.RoleSeller))
	assert.Equal(t, 0, domain.Role("Intern").Rank())

	next, ok := domain.RoleSeller.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.RoleCommercialManagement, next)

	next, ok = domain.RoleSubdirection.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.RoleDirection, next)

	assert.False(t, domain.RoleDirection.CanRequest())
	assert.False(t, domain.RoleAdmin.CanRequest())
	assert.True(t, domain.RoleCommercialManagement.CanRequest())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Role
		ok   bool
	}{
		{"Seller", domain.RoleSeller, true},
		{" vendedor ", domain.RoleSeller, true},
		{"Gerencia_Comercial", domain.RoleCommercialManagement, true},
		{"Subdirección", domain.RoleSubdirection, true},
		{"DIRECCION", domain.RoleDirection, true},
		{"admin", domain.RoleAdmin, true},
		{"Gerencia", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransportMode(t *testing.T) {
	assert.Equal(t, domain.TransportAir, domain.ParseTransportMode("Aéreo"))
	assert.Equal(t, domain.TransportAir, domain.ParseTransportMode(" air "))
	assert.Equal(t, domain.TransportMaritime, domain.ParseTransportMode("Maritimo"))
	assert.Equal(t, domain.TransportMode("Rail"), domain.ParseTransportMode(" Rail "))
	assert.False(t, domain.TransportMode("Rail").IsKnown())
}

func TestPriceTierRecord_MinimumFor(t *testing.T) {
	tier := domain.PriceTierRecord{
		SellerMin:       decimal.NewFromInt(1760),
		CommercialMin:   decimal.NewFromInt(1650),
		SubdirectionMin: decimal.NewFromInt(1540),
		DirectionMin:    decimal.NewFromInt(1430),
	}
	floor, ok := tier.MinimumFor(domain.RoleCommercialManagement)
	assert.True(t, ok)
	assert.True(t, floor.Equal(decimal.NewFromInt(1650)))

	_, ok = tier.MinimumFor(domain.RoleAdmin)
	assert.False(t, ok)
}
