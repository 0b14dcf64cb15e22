package repositories

import (
	"context"

	"estate-hub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// PropertyRepository interface
type PropertyRepository interface {
	Create(ctx context.Context, property *entities.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Property, error)

	// SetStatusIf writes the status only when the current status is one of
	// the given values. Returns ErrInvalidTransition on a condition miss so
	// racing writers resolve to one winner.
	SetStatusIf(ctx context.Context, id uuid.UUID, status entities.PropertyStatus, current ...entities.PropertyStatus) error
}
