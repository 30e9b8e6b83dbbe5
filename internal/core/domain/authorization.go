package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AuthorizationStatus is the lifecycle state of a request. Approved and Rejected are terminal.
type AuthorizationStatus string

const (
	StatusPending  AuthorizationStatus = "Pending"
	StatusApproved AuthorizationStatus = "Approved"
	StatusRejected AuthorizationStatus = "Rejected"
)

// AuthorizationRequest records a below-threshold price awaiting (or past) approval.
// Requests are never deleted.
type AuthorizationRequest struct {
	ID                 string              `json:"id"`
	SKU                string              `json:"sku"`
	TransportMode      TransportMode       `json:"transportMode"`
	RequesterID        string              `json:"requesterID"`
	RequesterRole      Role                `json:"requesterRole"`
	EscalatedTo        Role                `json:"escalatedTo"`
	ProposedPrice      decimal.Decimal     `json:"proposedPrice"`
	ReferenceThreshold decimal.Decimal     `json:"referenceThreshold"` // Requester's own minimum
	DiscountPct        decimal.Decimal     `json:"discountPct"`        // Below ReferenceThreshold, in percent
	Client             *string             `json:"client,omitempty"`
	Quantity           *int                `json:"quantity,omitempty"`
	Justification      *string             `json:"justification,omitempty"`
	Status             AuthorizationStatus `json:"status"`
	ApproverID         *string             `json:"approverID"`
	ApproverRole       *Role               `json:"approverRole"`
	ResolvedAt         *time.Time          `json:"resolvedAt"`
	Comments           *string             `json:"comments"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// IsResolved reports whether the request reached a terminal state.
func (r AuthorizationRequest) IsResolved() bool {
	return r.Status != StatusPending
}

// Validate checks the invariants a stored request must satisfy.
func (r AuthorizationRequest) Validate() error {
	if r.SKU == "" {
		return errors.New("sku is required")
	}
	if r.RequesterID == "" {
		return errors.New("requester identity is required")
	}
	if !r.ProposedPrice.IsPositive() {
		return errors.New("proposed price must be positive")
	}
	switch r.Status {
	case StatusPending:
		if r.ApproverID != nil || r.ResolvedAt != nil {
			return errors.New("pending request cannot carry resolution data")
		}
	case StatusApproved, StatusRejected:
		if r.ApproverID == nil || r.ResolvedAt == nil {
			return errors.New("resolved request must carry approver and resolution time")
		}
	default:
		return errors.New("unknown status " + string(r.Status))
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		return errors.New("quantity must be positive when provided")
	}
	return nil
}

// Resolution captures who closed a request and how.
type Resolution struct {
	Status     AuthorizationStatus
	ActorID    string
	ActorRole  Role
	Comments   *string
	ResolvedAt time.Time
}

// Resolve returns a copy of r stamped with the resolution. The caller checks that r is pending.
func (r AuthorizationRequest) Resolve(res Resolution) AuthorizationRequest {
	out := r
	actorID := res.ActorID
	actorRole := res.ActorRole
	at := res.ResolvedAt
	out.Status = res.Status
	out.ApproverID = &actorID
	out.ApproverRole = &actorRole
	out.ResolvedAt = &at
	out.Comments = res.Comments
	return out
}
