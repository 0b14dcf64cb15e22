package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationType represents the kind of document set being verified
type VerificationType string

const (
	VerificationTypeIdentity  VerificationType = "identity"
	VerificationTypeFinancial VerificationType = "financial"
	VerificationTypeAddress   VerificationType = "address"
)

// VerificationStatus represents the status of a verification submission
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// TriageQueue represents the review queue a submission is bucketed into
type TriageQueue string

const (
	QueueFlagged      TriageQueue = "flagged"
	QueuePending      TriageQueue = "pending"
	QueueAutoApproved TriageQueue = "auto_approved"
	QueueRejected     TriageQueue = "rejected"
	// QueueNone marks historical human approvals that belong to no triage queue.
	QueueNone TriageQueue = ""
)

// ValidQueue reports whether q names one of the four triage queues.
func ValidQueue(q TriageQueue) bool {
	switch q {
	case QueueFlagged, QueuePending, QueueAutoApproved, QueueRejected:
		return true
	}
	return false
}

// VerificationSubmission represents one identity-verification submission.
// The quality and risk scores are computed upstream by the document pipeline;
// this core only classifies and records decisions. Submissions are append-only
// audit records and are never deleted.
type VerificationSubmission struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              uuid.UUID          `json:"userId"`
	Type                VerificationType   `json:"type"`
	RiskScore           *float64           `json:"riskScore,omitempty"`          // 0.0-1.0
	SelfieQualityScore  *int               `json:"selfieQualityScore,omitempty"` // 0-100
	IDFrontQualityScore *int               `json:"idFrontQualityScore,omitempty"`
	FaceMatchScore      *int               `json:"faceMatchScore,omitempty"`
	AutoApproved        bool               `json:"autoApproved"`
	Status              VerificationStatus `json:"status"`
	RejectionReason     null.String        `json:"rejectionReason,omitempty"`
	ReviewerID          uuid.NullUUID      `json:"reviewerId,omitempty"`
	SubmittedAt         time.Time          `json:"submittedAt"`
	ReviewedAt          *time.Time         `json:"reviewedAt,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// TriageStats aggregates the review-queue counters shown to operators.
type TriageStats struct {
	Total                    int   `json:"total"`
	Flagged                  int   `json:"flagged"`
	AutoApproved             int   `json:"autoApproved"`
	Pending                  int   `json:"pending"`
	Rejected                 int   `json:"rejected"`
	AverageReviewTimeMinutes int64 `json:"averageReviewTimeMinutes"`
}
