package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthorizationRequest is a row of the authorization_requests table.
// Nullable columns are pointers.
type AuthorizationRequest struct {
	ID                 string          `db:"id"`
	SKU                string          `db:"sku"`
	TransportMode      string          `db:"transport_mode"`
	RequesterID        string          `db:"requester_id"`
	RequesterRole      string          `db:"requester_role"`
	EscalatedTo        string          `db:"escalated_to"`
	ProposedPrice      decimal.Decimal `db:"proposed_price"`
	ReferenceThreshold decimal.Decimal `db:"reference_threshold"`
	DiscountPct        decimal.Decimal `db:"discount_pct"`
	Client             *string         `db:"client"`
	Quantity           *int32          `db:"quantity"`
	Justification      *string         `db:"justification"`
	Status             string          `db:"status"`
	ApproverID         *string         `db:"approver_id"`
	ApproverRole       *string         `db:"approver_role"`
	ResolvedAt         *time.Time      `db:"resolved_at"`
	Comments           *string         `db:"comments"`
	CreatedAt          time.Time       `db:"created_at"`
}
