package notifications

import (
	"context"

	"github.com/google/uuid"
)

// Event types emitted by the offer lifecycle.
const (
	EventOfferReceived  = "offer_received"
	EventOfferApproved  = "offer_approved"
	EventOfferRejected  = "offer_rejected"
	EventOfferWithdrawn = "offer_withdrawn"
	EventOfferExpired   = "offer_expired"
)

// Dispatcher delivers notifications to users. Delivery is fire-and-forget and
// at-most-once: callers never block a state transition on it, and a returned
// error is logged, not propagated.
type Dispatcher interface {
	Notify(ctx context.Context, recipientID uuid.UUID, eventType string, payload map[string]interface{}) error
}
