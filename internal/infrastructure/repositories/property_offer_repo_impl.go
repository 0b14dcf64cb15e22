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

// PropertyOfferRepositoryImpl implements PropertyOfferRepository
type PropertyOfferRepositoryImpl struct {
	db *gorm.DB
}

func NewPropertyOfferRepository(db *gorm.DB) *PropertyOfferRepositoryImpl {
	return &PropertyOfferRepositoryImpl{db: db}
}

func (r *PropertyOfferRepositoryImpl) Create(ctx context.Context, offer *entities.PropertyOffer) error {
	m := r.toModel(offer)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	return withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
	})
}

func (r *PropertyOfferRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.PropertyOffer, error) {
	var m models.PropertyOffer
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

func (r *PropertyOfferRepositoryImpl) List(ctx context.Context, filter domainRepos.PropertyOfferFilter, limit, offset int) ([]*entities.PropertyOffer, int, error) {
	base := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PropertyOffer{})
	if filter.PropertyID != uuid.Nil {
		base = base.Where("property_id = ?", filter.PropertyID)
	}
	if filter.BuyerID != uuid.Nil {
		base = base.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Status != "" {
		base = base.Where("status = ?", filter.Status)
	}

	var total int64
	if err := withRetry(ctx, func() error {
		return base.Session(&gorm.Session{}).Count(&total).Error
	}); err != nil {
		return nil, 0, err
	}

	var ms []models.PropertyOffer
	if err := withRetry(ctx, func() error {
		return base.Session(&gorm.Session{}).
			Order("submitted_at DESC").
			Limit(limit).Offset(offset).
			Find(&ms).Error
	}); err != nil {
		return nil, 0, err
	}

	offers := make([]*entities.PropertyOffer, 0, len(ms))
	for i := range ms {
		offers = append(offers, r.toEntity(&ms[i]))
	}
	return offers, int(total), nil
}

func (r *PropertyOfferRepositoryImpl) RecordDecision(ctx context.Context, id uuid.UUID, update domainRepos.OfferDecisionUpdate) error {
	updates := map[string]interface{}{
		"status":            string(update.Status),
		"admin_reviewed_by": update.ReviewerID,
		"admin_reviewed_at": update.ReviewedAt,
		"updated_at":        time.Now(),
	}
	if update.Notes != "" {
		updates["admin_notes"] = update.Notes
	}
	return r.transitionFromPending(ctx, id, updates)
}

func (r *PropertyOfferRepositoryImpl) MarkWithdrawn(ctx context.Context, id uuid.UUID) error {
	return r.transitionFromPending(ctx, id, map[string]interface{}{
		"status":     string(entities.OfferStatusWithdrawn),
		"updated_at": time.Now(),
	})
}

func (r *PropertyOfferRepositoryImpl) MarkExpired(ctx context.Context, id uuid.UUID) error {
	return r.transitionFromPending(ctx, id, map[string]interface{}{
		"status":     string(entities.OfferStatusExpired),
		"updated_at": time.Now(),
	})
}

// transitionFromPending is the conditional write every offer transition goes
// through: UPDATE ... WHERE id = ? AND status = 'pending'. Exactly one of two
// racing callers sees RowsAffected > 0.
func (r *PropertyOfferRepositoryImpl) transitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PropertyOffer{}).
			Where("id = ? AND status = ?", id, entities.OfferStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PropertyOffer{}).
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

func (r *PropertyOfferRepositoryImpl) GetExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entities.PropertyOffer, error) {
	var ms []models.PropertyOffer
	err := withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).
			Where("status = ? AND expires_at <= ?", entities.OfferStatusPending, now).
			Limit(limit).
			Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}

	offers := make([]*entities.PropertyOffer, 0, len(ms))
	for i := range ms {
		offers = append(offers, r.toEntity(&ms[i]))
	}
	return offers, nil
}

func (r *PropertyOfferRepositoryImpl) CountPendingByProperty(ctx context.Context, propertyID uuid.UUID, excludeOfferID uuid.UUID) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Model(&models.PropertyOffer{}).
			Where("property_id = ? AND status = ? AND id <> ?", propertyID, entities.OfferStatusPending, excludeOfferID).
			Count(&count).Error
	})
	return count, err
}

func (r *PropertyOfferRepositoryImpl) GetStats(ctx context.Context) (*entities.OfferStats, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Model(&models.PropertyOffer{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	stats := &entities.OfferStats{}
	for _, rw := range rows {
		stats.Total += rw.Count
		switch entities.OfferStatus(rw.Status) {
		case entities.OfferStatusPending:
			stats.Pending = rw.Count
		case entities.OfferStatusApproved:
			stats.Approved = rw.Count
		case entities.OfferStatusRejected:
			stats.Rejected = rw.Count
		case entities.OfferStatusWithdrawn:
			stats.Withdrawn = rw.Count
		case entities.OfferStatusExpired:
			stats.Expired = rw.Count
		}
	}
	return stats, nil
}

func (r *PropertyOfferRepositoryImpl) toModel(e *entities.PropertyOffer) *models.PropertyOffer {
	m := &models.PropertyOffer{
		ID:                e.ID,
		PropertyID:        e.PropertyID,
		BuyerID:           e.BuyerID,
		OfferPrice:        e.OfferPrice,
		DepositAmount:     e.DepositAmount,
		PaymentMethod:     string(e.PaymentMethod),
		EstimatedTimeline: e.EstimatedTimeline,
		Status:            string(e.Status),
		AdminReviewedAt:   e.AdminReviewedAt,
		SubmittedAt:       e.SubmittedAt,
		ExpiresAt:         e.ExpiresAt,
	}
	if e.SellerID.Valid {
		seller := e.SellerID.UUID
		m.SellerID = &seller
	}
	if e.AdminNotes.Valid {
		m.AdminNotes = &e.AdminNotes.String
	}
	if e.AdminReviewedBy.Valid {
		reviewer := e.AdminReviewedBy.UUID
		m.AdminReviewedBy = &reviewer
	}
	return m
}

func (r *PropertyOfferRepositoryImpl) toEntity(m *models.PropertyOffer) *entities.PropertyOffer {
	e := &entities.PropertyOffer{
		ID:                m.ID,
		PropertyID:        m.PropertyID,
		BuyerID:           m.BuyerID,
		OfferPrice:        m.OfferPrice,
		DepositAmount:     m.DepositAmount,
		PaymentMethod:     entities.PaymentMethod(m.PaymentMethod),
		EstimatedTimeline: m.EstimatedTimeline,
		Status:            entities.OfferStatus(m.Status),
		AdminReviewedAt:   m.AdminReviewedAt,
		SubmittedAt:       m.SubmittedAt,
		ExpiresAt:         m.ExpiresAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.SellerID != nil {
		e.SellerID = uuid.NullUUID{UUID: *m.SellerID, Valid: true}
	}
	if m.AdminNotes != nil {
		e.AdminNotes = null.StringFrom(*m.AdminNotes)
	}
	if m.AdminReviewedBy != nil {
		e.AdminReviewedBy = uuid.NullUUID{UUID: *m.AdminReviewedBy, Valid: true}
	}
	return e
}
