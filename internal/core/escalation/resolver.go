// Package escalation decides who must approve a below-threshold price and
// who may resolve an open authorization request. Everything here is pure.
package escalation

import (
	"fmt"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Request is the resolver input.
type Request struct {
	SKU           string
	TransportMode domain.TransportMode
	RequesterRole domain.Role
	ProposedPrice decimal.Decimal
}

// Decision is the resolver output.
type Decision struct {
	EscalatedTo        domain.Role     `json:"escalatedTo"`
	ReferenceThreshold decimal.Decimal `json:"referenceThreshold"`
	DiscountPct        decimal.Decimal `json:"discountPct"`
}

// Resolve routes a proposed price to the role that must authorize it.
// tier is nil when no price tier exists for the sku and transport mode.
func Resolve(req Request, tier *domain.PriceTierRecord) (Decision, error) {
	if tier == nil {
		return Decision{}, fmt.Errorf("%w: no price tier for sku %s (%s)", apperrors.ErrNotFound, req.SKU, req.TransportMode)
	}
	if !tier.Usable() {
		return Decision{}, fmt.Errorf("%w: price tier for sku %s (%s) has no usable base price", apperrors.ErrInvalidPrice, req.SKU, req.TransportMode)
	}
	if !req.ProposedPrice.IsPositive() {
		return Decision{}, fmt.Errorf("%w: proposed price %s must be positive", apperrors.ErrInvalidPrice, req.ProposedPrice)
	}
	if req.ProposedPrice.LessThan(tier.BasePrice) {
		return Decision{}, fmt.Errorf("%w: proposed price %s is below base price %s", apperrors.ErrInvalidPrice, req.ProposedPrice, tier.BasePrice)
	}

	next, ok := req.RequesterRole.Next()
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q cannot request authorizations", apperrors.ErrRoleNotEligible, req.RequesterRole)
	}
	reference, _ := tier.MinimumFor(req.RequesterRole)
	if !req.ProposedPrice.LessThan(reference) {
		return Decision{}, fmt.Errorf("%w: %s is within the %s minimum %s", apperrors.ErrNoAuthorizationNeeded, req.ProposedPrice, req.RequesterRole, reference)
	}

	return Decision{
		EscalatedTo:        next,
		ReferenceThreshold: reference,
		DiscountPct:        DiscountPct(reference, req.ProposedPrice),
	}, nil
}

// DiscountPct is how far price sits below reference, in percent, floored at 0 and rounded to 4 places.
func DiscountPct(reference, price decimal.Decimal) decimal.Decimal {
	if !reference.IsPositive() {
		return decimal.Zero
	}
	pct := reference.Sub(price).Div(reference).Mul(hundred)
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct.Round(4)
}
