package dto

import (
	"github.com/shopspring/decimal"
)

// CreateAuthorizationRequest is the payload for opening a discount authorization.
type CreateAuthorizationRequest struct {
	SKU           string          `json:"sku" binding:"required"`
	TransportMode string          `json:"transportMode" binding:"required"`
	ProposedPrice decimal.Decimal `json:"proposedPrice" binding:"required"`
	Client        *string         `json:"client"`        // Optional
	Quantity      *int            `json:"quantity"`      // Optional, must be positive when set
	Justification *string         `json:"justification"` // Optional
}

// ResolveAuthorizationRequest carries the optional approver comment.
type ResolveAuthorizationRequest struct {
	Comments *string `json:"comments"`
}
