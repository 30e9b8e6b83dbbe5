// Package events publishes authorization lifecycle notifications.
package events

import (
	"context"
	"time"
)

// Event types.
const (
	TypeAuthorizationCreated  = "authorization.created"
	TypeAuthorizationApproved = "authorization.approved"
	TypeAuthorizationRejected = "authorization.rejected"
)

// Event is the payload sent to subscribers.
type Event struct {
	Type          string    `json:"type"`
	RequestID     string    `json:"requestId"`
	SKU           string    `json:"sku"`
	TransportMode string    `json:"transportMode"`
	Status        string    `json:"status"`
	EscalatedTo   string    `json:"escalatedTo"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Noop discards every event.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

var _ Publisher = Noop{}

// Source hands out event streams. The returned cancel func releases the
// subscription and must be called once the caller stops reading.
type Source interface {
	Stream(ctx context.Context) (<-chan Event, func())
}
