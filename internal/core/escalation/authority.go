package escalation

import (
	"fmt"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
)

// CanResolve reports whether actor may approve or reject req.
// The same predicate filters the pending queue, so a role only sees what it can act on.
// tier may be nil; it is only needed for range-restricted roles.
func CanResolve(actor domain.Role, req domain.AuthorizationRequest, tier *domain.PriceTierRecord) error {
	if actor == domain.RoleAdmin {
		return nil
	}
	if !actor.IsValid() || actor == domain.RoleSeller {
		return fmt.Errorf("%w: %q cannot resolve authorizations", apperrors.ErrRoleNotEligible, actor)
	}
	if !actor.Outranks(req.RequesterRole) {
		return fmt.Errorf("%w: %s cannot resolve a request made by %s", apperrors.ErrInsufficientAuthority, actor, req.RequesterRole)
	}
	if _, escalates := actor.Next(); !escalates {
		// Top of the threshold chain: no range restriction.
		return nil
	}
	if tier == nil {
		return fmt.Errorf("%w: no price tier for sku %s (%s)", apperrors.ErrNotFound, req.SKU, req.TransportMode)
	}
	if !tier.Usable() {
		return fmt.Errorf("%w: price tier for sku %s (%s) has no usable base price", apperrors.ErrInvalidPrice, req.SKU, req.TransportMode)
	}
	floor, _ := tier.MinimumFor(actor)
	if req.ProposedPrice.LessThan(floor) {
		return fmt.Errorf("%w: %s may only resolve prices at or above %s, got %s", apperrors.ErrInsufficientAuthority, actor, floor, req.ProposedPrice)
	}
	return nil
}

// Visible filters pending requests down to those actor can resolve.
// tierFor returns nil when no tier exists.
func Visible(actor domain.Role, reqs []domain.AuthorizationRequest, tierFor func(domain.AuthorizationRequest) *domain.PriceTierRecord) []domain.AuthorizationRequest {
	out := make([]domain.AuthorizationRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.IsResolved() {
			continue
		}
		if CanResolve(actor, r, tierFor(r)) == nil {
			out = append(out, r)
		}
	}
	return out
}
