package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleAgent UserRole = "agent"
	UserRoleBuyer UserRole = "buyer"
)

// KYCStatus represents a user's identity-verification standing
type KYCStatus string

const (
	KYCUnverified KYCStatus = "unverified"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

// User represents a marketplace user. Authentication and profile management
// live in an external service; this core only reads role, KYC standing and
// the contact email used for notifications.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          UserRole   `json:"role"`
	KYCStatus     KYCStatus  `json:"kycStatus"`
	KYCVerifiedAt *time.Time `json:"kycVerifiedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
