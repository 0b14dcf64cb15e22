package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyOffer struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PropertyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	BuyerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerID          *uuid.UUID `gorm:"type:uuid"`
	OfferPrice        float64    `gorm:"type:decimal(14,2);not null"`
	DepositAmount     float64    `gorm:"type:decimal(14,2);not null"`
	PaymentMethod     string     `gorm:"type:varchar(50);not null"`
	EstimatedTimeline string     `gorm:"type:varchar(50);not null"`
	Status            string     `gorm:"type:varchar(50);not null;index"`
	AdminNotes        *string    `gorm:"type:text"`
	AdminReviewedBy   *uuid.UUID `gorm:"type:uuid"`
	AdminReviewedAt   *time.Time
	SubmittedAt       time.Time `gorm:"not null"`
	ExpiresAt         time.Time `gorm:"not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
