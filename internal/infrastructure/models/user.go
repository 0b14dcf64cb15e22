package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Role          string     `gorm:"type:varchar(50);not null"`
	KYCStatus     string     `gorm:"column:kyc_status;type:varchar(50);not null"`
	KYCVerifiedAt *time.Time `gorm:"column:kyc_verified_at"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
