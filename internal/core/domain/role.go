package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role is an approval role. Seniority is fixed by the hierarchy table.
type Role string

const (
	RoleSeller               Role = "Seller"
	RoleCommercialManagement Role = "CommercialManagement"
	RoleSubdirection         Role = "Subdirection"
	RoleDirection            Role = "Direction"
	RoleAdmin                Role = "Admin"
)

type roleLevel struct {
	rank    int
	minimum func(PriceTierRecord) decimal.Decimal
	next    Role
}

// hierarchy is the single source for seniority, own-minimum lookup and
// escalation target. Admin sits above everyone and has no threshold.
var hierarchy = map[Role]roleLevel{
	RoleSeller:               {rank: 1, minimum: func(t PriceTierRecord) decimal.Decimal { return t.SellerMin }, next: RoleCommercialManagement},
	RoleCommercialManagement: {rank: 2, minimum: func(t PriceTierRecord) decimal.Decimal { return t.CommercialMin }, next: RoleSubdirection},
	RoleSubdirection:         {rank: 3, minimum: func(t PriceTierRecord) decimal.Decimal { return t.SubdirectionMin }, next: RoleDirection},
	RoleDirection:            {rank: 4, minimum: func(t PriceTierRecord) decimal.Decimal { return t.DirectionMin }},
	RoleAdmin:                {rank: 5},
}

var roleAliases = map[string]Role{
	"seller":               RoleSeller,
	"vendedor":             RoleSeller,
	"commercialmanagement": RoleCommercialManagement,
	"gerencia_comercial":   RoleCommercialManagement,
	"subdirection":         RoleSubdirection,
	"subdireccion":         RoleSubdirection,
	"subdirección":         RoleSubdirection,
	"direction":            RoleDirection,
	"direccion":            RoleDirection,
	"dirección":            RoleDirection,
	"admin":                RoleAdmin,
}

// ParseRole maps canonical names and legacy spellings onto a Role.
func ParseRole(s string) (Role, bool) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return role, ok
}

// Rank is the role's seniority; 0 for unknown roles.
func (r Role) Rank() int {
	return hierarchy[r].rank
}

// Next is the role a below-threshold request from r escalates to.
func (r Role) Next() (Role, bool) {
	next := hierarchy[r].next
	return next, next != ""
}

// IsValid reports whether r is part of the hierarchy.
func (r Role) IsValid() bool {
	_, ok := hierarchy[r]
	return ok
}

// CanRequest reports whether r may open authorization requests.
func (r Role) CanRequest() bool {
	_, ok := r.Next()
	return ok
}

// Outranks reports whether r is strictly more senior than other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role Role
}
