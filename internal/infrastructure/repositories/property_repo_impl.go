package repositories

import (
	"context"
	"errors"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	"estate-hub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// PropertyRepositoryImpl implements PropertyRepository
type PropertyRepositoryImpl struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepositoryImpl {
	return &PropertyRepositoryImpl{db: db}
}

func (r *PropertyRepositoryImpl) Create(ctx context.Context, property *entities.Property) error {
	m := r.toModel(property)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	return withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
	})
}

func (r *PropertyRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Property, error) {
	var m models.Property
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

func (r *PropertyRepositoryImpl) SetStatusIf(ctx context.Context, id uuid.UUID, status entities.PropertyStatus, current ...entities.PropertyStatus) error {
	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Property{}).
			Where("id = ? AND status IN ?", id, current).
			Updates(map[string]interface{}{
				"status":     string(status),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Property{}).
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

func (r *PropertyRepositoryImpl) toModel(e *entities.Property) *models.Property {
	m := &models.Property{
		ID:     e.ID,
		Title:  e.Title,
		Price:  e.Price,
		Status: string(e.Status),
	}
	if e.OwnerID.Valid {
		owner := e.OwnerID.UUID
		m.OwnerID = &owner
	}
	if e.ListingType.Valid {
		m.ListingType = &e.ListingType.String
	}
	return m
}

func (r *PropertyRepositoryImpl) toEntity(m *models.Property) *entities.Property {
	e := &entities.Property{
		ID:        m.ID,
		Title:     m.Title,
		Price:     m.Price,
		Status:    entities.PropertyStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.OwnerID != nil {
		e.OwnerID = uuid.NullUUID{UUID: *m.OwnerID, Valid: true}
	}
	if m.ListingType != nil {
		e.ListingType = null.StringFrom(*m.ListingType)
	}
	if m.DeletedAt.Valid {
		e.DeletedAt = null.TimeFrom(m.DeletedAt.Time)
	}
	return e
}
