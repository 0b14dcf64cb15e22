package repositories

import (
	"context"
	"time"

	"estate-hub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// VerificationSubmissionFilter narrows submission listings.
type VerificationSubmissionFilter struct {
	UserID   uuid.UUID
	Type     entities.VerificationType
	Statuses []entities.VerificationStatus
}

// VerificationSubmissionRepository interface
type VerificationSubmissionRepository interface {
	Create(ctx context.Context, sub *entities.VerificationSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationSubmission, error)
	List(ctx context.Context, filter VerificationSubmissionFilter) ([]*entities.VerificationSubmission, error)

	// RecordDecision moves a submission out of pending. The update is
	// conditional on the current status being pending; it returns
	// domainerrors.ErrInvalidTransition when the submission exists but is no
	// longer pending, so two racing reviewers get exactly one success.
	RecordDecision(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, reviewerID uuid.UUID, reason string, reviewedAt time.Time) error
}
