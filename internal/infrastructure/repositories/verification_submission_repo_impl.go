package repositories

import (
	"context"
	"errors"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"estate-hub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// VerificationSubmissionRepositoryImpl implements VerificationSubmissionRepository
type VerificationSubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationSubmissionRepository(db *gorm.DB) *VerificationSubmissionRepositoryImpl {
	return &VerificationSubmissionRepositoryImpl{db: db}
}

func (r *VerificationSubmissionRepositoryImpl) Create(ctx context.Context, sub *entities.VerificationSubmission) error {
	m := r.toModel(sub)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	return withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
	})
}

func (r *VerificationSubmissionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationSubmission, error) {
	var m models.VerificationSubmission
	err := withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *VerificationSubmissionRepositoryImpl) List(ctx context.Context, filter domainRepos.VerificationSubmissionFilter) ([]*entities.VerificationSubmission, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationSubmission{})
	if filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}

	var ms []models.VerificationSubmission
	err := withRetry(ctx, func() error {
		return q.Order("submitted_at DESC").Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}

	subs := make([]*entities.VerificationSubmission, 0, len(ms))
	for i := range ms {
		subs = append(subs, r.toEntity(&ms[i]))
	}
	return subs, nil
}

// RecordDecision is the single conditional write that guards the
// pending -> approved|rejected transition. RowsAffected == 0 means either a
// missing record or a lost race; the follow-up read tells the two apart.
func (r *VerificationSubmissionRepositoryImpl) RecordDecision(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, reviewerID uuid.UUID, reason string, reviewedAt time.Time) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewer_id": reviewerID,
		"reviewed_at": reviewedAt,
		"updated_at":  time.Now(),
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}

	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationSubmission{}).
			Where("id = ? AND status = ?", id, entities.VerificationStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationSubmission{}).
				Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrNotFound
			}
			return domainerrors.ErrInvalidTransition
		}
		return nil
	})
}

func (r *VerificationSubmissionRepositoryImpl) toModel(e *entities.VerificationSubmission) *models.VerificationSubmission {
	m := &models.VerificationSubmission{
		ID:                  e.ID,
		UserID:              e.UserID,
		Type:                string(e.Type),
		RiskScore:           e.RiskScore,
		SelfieQualityScore:  e.SelfieQualityScore,
		IDFrontQualityScore: e.IDFrontQualityScore,
		FaceMatchScore:      e.FaceMatchScore,
		AutoApproved:        e.AutoApproved,
		Status:              string(e.Status),
		SubmittedAt:         e.SubmittedAt,
		ReviewedAt:          e.ReviewedAt,
	}
	if e.RejectionReason.Valid {
		m.RejectionReason = &e.RejectionReason.String
	}
	if e.ReviewerID.Valid {
		reviewer := e.ReviewerID.UUID
		m.ReviewerID = &reviewer
	}
	return m
}

func (r *VerificationSubmissionRepositoryImpl) toEntity(m *models.VerificationSubmission) *entities.VerificationSubmission {
	e := &entities.VerificationSubmission{
		ID:                  m.ID,
		UserID:              m.UserID,
		Type:                entities.VerificationType(m.Type),
		RiskScore:           m.RiskScore,
		SelfieQualityScore:  m.SelfieQualityScore,
		IDFrontQualityScore: m.IDFrontQualityScore,
		FaceMatchScore:      m.FaceMatchScore,
		AutoApproved:        m.AutoApproved,
		Status:              entities.VerificationStatus(m.Status),
		SubmittedAt:         m.SubmittedAt,
		ReviewedAt:          m.ReviewedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.RejectionReason != nil {
		e.RejectionReason = null.StringFrom(*m.RejectionReason)
	}
	if m.ReviewerID != nil {
		e.ReviewerID = uuid.NullUUID{UUID: *m.ReviewerID, Valid: true}
	}
	return e
}
