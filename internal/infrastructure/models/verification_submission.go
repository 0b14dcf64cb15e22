package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationSubmission struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type                string     `gorm:"type:varchar(50);not null;index"`
	RiskScore           *float64   `gorm:"type:decimal(4,3)"`
	SelfieQualityScore  *int       `gorm:"column:selfie_quality_score"`
	IDFrontQualityScore *int       `gorm:"column:id_front_quality_score"`
	FaceMatchScore      *int       `gorm:"column:face_match_score"`
	AutoApproved        bool       `gorm:"not null;default:false"`
	Status              string     `gorm:"type:varchar(50);not null;index"`
	RejectionReason     *string    `gorm:"type:text"`
	ReviewerID          *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt         time.Time  `gorm:"not null;index"`
	ReviewedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
