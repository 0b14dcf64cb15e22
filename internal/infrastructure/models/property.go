package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Price       float64    `gorm:"type:decimal(14,2);not null"`
	ListingType *string    `gorm:"type:varchar(50)"`
	Status      string     `gorm:"type:varchar(50);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
