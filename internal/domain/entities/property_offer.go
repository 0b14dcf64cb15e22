package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OfferStatus represents the status of a property offer. Pending is the only
// non-terminal status; every other status is final.
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusApproved  OfferStatus = "approved"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
	OfferStatusExpired   OfferStatus = "expired"
)

// OfferDecision represents an admin decision on a pending offer
type OfferDecision string

const (
	OfferDecisionApproved OfferDecision = "approved"
	OfferDecisionRejected OfferDecision = "rejected"
)

// PaymentMethod represents how the buyer intends to pay
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodInstallments PaymentMethod = "installments"
)

// TimelineFullPayment is the estimated-timeline value for buyers ready to
// settle immediately. All other recognized values have the form "N_months".
const TimelineFullPayment = "ready_to_pay_in_full"

// PropertyOffer represents a buyer's proposed purchase terms on one property.
// SellerID is absent for platform-listed properties. Offers are never
// physically deleted.
type PropertyOffer struct {
	ID                uuid.UUID     `json:"id"`
	PropertyID        uuid.UUID     `json:"propertyId"`
	BuyerID           uuid.UUID     `json:"buyerId"`
	SellerID          uuid.NullUUID `json:"sellerId,omitempty"`
	OfferPrice        float64       `json:"offerPrice"`
	DepositAmount     float64       `json:"depositAmount"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	EstimatedTimeline string        `json:"estimatedTimeline"`
	Status            OfferStatus   `json:"status"`
	AdminNotes        null.String   `json:"adminNotes,omitempty"`
	AdminReviewedBy   uuid.NullUUID `json:"adminReviewedBy,omitempty"`
	AdminReviewedAt   *time.Time    `json:"adminReviewedAt,omitempty"`
	SubmittedAt       time.Time     `json:"submittedAt"`
	ExpiresAt         time.Time     `json:"expiresAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Terminal reports whether the offer is in a final status.
func (o *PropertyOffer) Terminal() bool {
	return o.Status != OfferStatusPending
}

// OfferStats aggregates offer counts by status.
type OfferStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Withdrawn int64 `json:"withdrawn"`
	Expired   int64 `json:"expired"`
}
