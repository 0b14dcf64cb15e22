package repositories

import (
	"context"
	"errors"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	"estate-hub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	err := withRetry(ctx, func() error {
		return GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Role:          entities.UserRole(m.Role),
		KYCStatus:     entities.KYCStatus(m.KYCStatus),
		KYCVerifiedAt: m.KYCVerifiedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func (r *UserRepositoryImpl) SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, verifiedAt *time.Time) error {
	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"kyc_status":      string(status),
				"kyc_verified_at": verifiedAt,
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	})
}
