package repositories

import (
	"context"
	"time"

	"estate-hub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository interface
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, verifiedAt *time.Time) error
}
