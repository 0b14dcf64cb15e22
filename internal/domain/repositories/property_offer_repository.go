package repositories

import (
	"context"
	"time"

	"estate-hub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// PropertyOfferFilter narrows offer listings.
type PropertyOfferFilter struct {
	PropertyID uuid.UUID
	BuyerID    uuid.UUID
	Status     entities.OfferStatus
}

// OfferDecisionUpdate carries the reviewer fields recorded on a decision.
type OfferDecisionUpdate struct {
	Status     entities.OfferStatus
	ReviewerID uuid.UUID
	Notes      string
	ReviewedAt time.Time
}

// PropertyOfferRepository interface
type PropertyOfferRepository interface {
	Create(ctx context.Context, offer *entities.PropertyOffer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PropertyOffer, error)
	List(ctx context.Context, filter PropertyOfferFilter, limit, offset int) ([]*entities.PropertyOffer, int, error)

	// RecordDecision applies an admin decision conditionally on the offer
	// still being pending (ErrInvalidTransition otherwise).
	RecordDecision(ctx context.Context, id uuid.UUID, update OfferDecisionUpdate) error

	// MarkWithdrawn moves a pending offer to withdrawn, same conditional
	// discipline as RecordDecision.
	MarkWithdrawn(ctx context.Context, id uuid.UUID) error

	// MarkExpired moves one pending offer past its deadline to expired.
	// Returns ErrInvalidTransition when the offer was already decided or
	// expired by a concurrent sweep, so each offer is processed exactly once.
	MarkExpired(ctx context.Context, id uuid.UUID) error

	// GetExpiredPending returns pending offers with expires_at <= now.
	GetExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entities.PropertyOffer, error)

	// CountPendingByProperty counts pending sibling offers on a property,
	// excluding the given offer id.
	CountPendingByProperty(ctx context.Context, propertyID uuid.UUID, excludeOfferID uuid.UUID) (int64, error)

	GetStats(ctx context.Context) (*entities.OfferStats, error)
}
