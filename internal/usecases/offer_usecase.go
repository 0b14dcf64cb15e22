package usecases

import (
	"context"
	"strconv"
	"strings"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	"estate-hub.backend/internal/domain/notifications"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"estate-hub.backend/internal/observability"
	"estate-hub.backend/pkg/logger"
	"estate-hub.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpiryWindows holds the offer expiry durations derived from the buyer's
// estimated timeline.
type ExpiryWindows struct {
	FullPaymentDays int
	DefaultDays     int
	MaxDays         int
}

// DefaultExpiryWindows returns the production windows.
func DefaultExpiryWindows() ExpiryWindows {
	return ExpiryWindows{
		FullPaymentDays: 3,
		DefaultDays:     7,
		MaxDays:         30,
	}
}

// Window maps an estimated timeline to the duration an offer stays
// decidable. "ready_to_pay_in_full" gets the short window, "N_months" scales
// with N capped at MaxDays, anything else falls back to the default.
func (w ExpiryWindows) Window(timeline string) time.Duration {
	if timeline == entities.TimelineFullPayment {
		return time.Duration(w.FullPaymentDays) * 24 * time.Hour
	}
	if months, ok := strings.CutSuffix(timeline, "_months"); ok {
		if n, err := strconv.Atoi(months); err == nil && n > 0 {
			days := n * 7
			if days > w.MaxDays {
				days = w.MaxDays
			}
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return time.Duration(w.DefaultDays) * 24 * time.Hour
}

// OfferUsecase owns the offer state machine and keeps the parent property's
// availability status consistent with it.
type OfferUsecase struct {
	offerRepo    domainRepos.PropertyOfferRepository
	propertyRepo domainRepos.PropertyRepository
	userRepo     domainRepos.UserRepository
	uow          domainRepos.UnitOfWork
	dispatcher   notifications.Dispatcher
	windows      ExpiryWindows
}

// NewOfferUsecase creates a new offer usecase
func NewOfferUsecase(
	offerRepo domainRepos.PropertyOfferRepository,
	propertyRepo domainRepos.PropertyRepository,
	userRepo domainRepos.UserRepository,
	uow domainRepos.UnitOfWork,
	dispatcher notifications.Dispatcher,
	windows ExpiryWindows,
) *OfferUsecase {
	return &OfferUsecase{
		offerRepo:    offerRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		uow:          uow,
		dispatcher:   dispatcher,
		windows:      windows,
	}
}

// CreateOfferInput represents input for creating an offer
type CreateOfferInput struct {
	PropertyID        uuid.UUID
	BuyerID           uuid.UUID
	SellerID          uuid.NullUUID
	OfferPrice        float64
	DepositAmount     float64
	PaymentMethod     entities.PaymentMethod
	EstimatedTimeline string
}

func (in *CreateOfferInput) validate() error {
	if in.OfferPrice <= 0 {
		return domainerrors.BadRequest("offer price must be greater than zero")
	}
	if in.DepositAmount < 0 {
		return domainerrors.BadRequest("deposit amount cannot be negative")
	}
	if in.PaymentMethod != entities.PaymentMethodCash && in.PaymentMethod != entities.PaymentMethodInstallments {
		return domainerrors.BadRequest("unrecognized payment method")
	}
	if strings.TrimSpace(in.EstimatedTimeline) == "" {
		return domainerrors.BadRequest("estimated timeline is required")
	}
	return nil
}

// Create submits a new offer on an active property and moves the property
// under offer. The property update happens in the same transaction as the
// insert so two racing buyers on a just-sold property cannot both succeed.
func (uc *OfferUsecase) Create(ctx context.Context, input CreateOfferInput) (*entities.PropertyOffer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	buyer, err := uc.userRepo.GetByID(ctx, input.BuyerID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("buyer not found")
		}
		return nil, err
	}
	if buyer.KYCStatus != entities.KYCVerified {
		return nil, domainerrors.Forbidden("buyer identity is not verified")
	}

	property, err := uc.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("property not found")
		}
		return nil, err
	}
	if property.Status != entities.PropertyStatusActive {
		return nil, domainerrors.PropertyNotAvailable("property is not open for offers")
	}

	sellerID := input.SellerID
	if !sellerID.Valid {
		sellerID = property.OwnerID
	}

	now := time.Now()
	offer := &entities.PropertyOffer{
		ID:                utils.GenerateUUIDv7(),
		PropertyID:        input.PropertyID,
		BuyerID:           input.BuyerID,
		SellerID:          sellerID,
		OfferPrice:        input.OfferPrice,
		DepositAmount:     input.DepositAmount,
		PaymentMethod:     input.PaymentMethod,
		EstimatedTimeline: input.EstimatedTimeline,
		Status:            entities.OfferStatusPending,
		SubmittedAt:       now,
		ExpiresAt:         now.Add(uc.windows.Window(input.EstimatedTimeline)),
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.offerRepo.Create(txCtx, offer); err != nil {
			return err
		}
		// under_offer is allowed as current status so a sibling pending
		// offer does not block creation.
		if err := uc.propertyRepo.SetStatusIf(txCtx, input.PropertyID, entities.PropertyStatusUnderOffer,
			entities.PropertyStatusActive, entities.PropertyStatusUnderOffer); err != nil {
			if err == domainerrors.ErrInvalidTransition {
				return domainerrors.PropertyNotAvailable("property is no longer open for offers")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.OffersCreated.Inc()

	// Platform-listed properties have no seller to notify.
	if offer.SellerID.Valid {
		uc.dispatch(ctx, offer.SellerID.UUID, notifications.EventOfferReceived, map[string]interface{}{
			"offerId":    offer.ID.String(),
			"propertyId": offer.PropertyID.String(),
			"offerPrice": offer.OfferPrice,
			"expiresAt":  offer.ExpiresAt,
		})
	}

	return offer, nil
}

// Decide applies an admin approval or rejection to a pending offer. Sibling
// pending offers are deliberately left untouched for manual resolution; an
// approval never cascades into silent auto-rejections.
func (uc *OfferUsecase) Decide(ctx context.Context, offerID uuid.UUID, decision entities.OfferDecision, reviewerID uuid.UUID, notes string) (*entities.PropertyOffer, error) {
	if decision != entities.OfferDecisionApproved && decision != entities.OfferDecisionRejected {
		return nil, domainerrors.BadRequest("unrecognized decision")
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, uc.mapOfferErr(err)
	}

	target := entities.OfferStatusApproved
	event := notifications.EventOfferApproved
	if decision == entities.OfferDecisionRejected {
		target = entities.OfferStatusRejected
		event = notifications.EventOfferRejected
	}

	update := domainRepos.OfferDecisionUpdate{
		Status:     target,
		ReviewerID: reviewerID,
		Notes:      notes,
		ReviewedAt: time.Now(),
	}

	if target == entities.OfferStatusApproved {
		// Approval claims the property in the same transaction as the
		// offer's status write. A sold property refuses the claim, which
		// rolls the offer back to pending, so at most one offer on a
		// property ever reaches approved.
		err = uc.uow.Do(ctx, func(txCtx context.Context) error {
			if err := uc.offerRepo.RecordDecision(txCtx, offerID, update); err != nil {
				return err
			}
			if err := uc.propertyRepo.SetStatusIf(txCtx, offer.PropertyID, entities.PropertyStatusSold,
				entities.PropertyStatusUnderOffer, entities.PropertyStatusActive); err != nil {
				if err == domainerrors.ErrInvalidTransition {
					return domainerrors.PropertyNotAvailable("property already has an accepted offer")
				}
				return err
			}
			return nil
		})
		if err != nil {
			return nil, uc.mapOfferErr(err)
		}
	} else {
		if err := uc.offerRepo.RecordDecision(ctx, offerID, update); err != nil {
			return nil, uc.mapOfferErr(err)
		}
		uc.releaseProperty(ctx, offer)
	}
	observability.OfferTransitions.WithLabelValues(string(target)).Inc()

	uc.dispatch(ctx, offer.BuyerID, event, map[string]interface{}{
		"offerId":    offer.ID.String(),
		"propertyId": offer.PropertyID.String(),
		"notes":      notes,
	})

	return uc.offerRepo.GetByID(ctx, offerID)
}

// Withdraw lets the offer's buyer retract a pending offer.
func (uc *OfferUsecase) Withdraw(ctx context.Context, offerID, byBuyerID uuid.UUID) (*entities.PropertyOffer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, uc.mapOfferErr(err)
	}
	if offer.BuyerID != byBuyerID {
		return nil, domainerrors.Forbidden("only the offer's buyer may withdraw it")
	}

	if err := uc.offerRepo.MarkWithdrawn(ctx, offerID); err != nil {
		return nil, uc.mapOfferErr(err)
	}
	observability.OfferTransitions.WithLabelValues(string(entities.OfferStatusWithdrawn)).Inc()

	uc.releaseProperty(ctx, offer)

	if offer.SellerID.Valid {
		uc.dispatch(ctx, offer.SellerID.UUID, notifications.EventOfferWithdrawn, map[string]interface{}{
			"offerId":    offer.ID.String(),
			"propertyId": offer.PropertyID.String(),
		})
	}

	return uc.offerRepo.GetByID(ctx, offerID)
}

// SweepExpired expires every pending offer whose deadline passed and returns
// the number processed. Each offer transitions through a conditional update,
// so concurrent sweeps (or a rerun with the same now) count it exactly once.
func (uc *OfferUsecase) SweepExpired(ctx context.Context, now time.Time, batchSize int) (int, error) {
	expired, err := uc.offerRepo.GetExpiredPending(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, offer := range expired {
		if err := uc.offerRepo.MarkExpired(ctx, offer.ID); err != nil {
			if err == domainerrors.ErrInvalidTransition {
				// Lost the race to a decision or another sweep.
				continue
			}
			logger.Error(ctx, "failed to expire offer",
				zap.String("offer_id", offer.ID.String()),
				zap.Error(err))
			continue
		}
		count++
		observability.OffersExpired.Inc()

		uc.releaseProperty(ctx, offer)
		uc.dispatch(ctx, offer.BuyerID, notifications.EventOfferExpired, map[string]interface{}{
			"offerId":    offer.ID.String(),
			"propertyId": offer.PropertyID.String(),
		})
	}
	return count, nil
}

// Get returns one offer by id.
func (uc *OfferUsecase) Get(ctx context.Context, offerID uuid.UUID) (*entities.PropertyOffer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, uc.mapOfferErr(err)
	}
	return offer, nil
}

// List returns offers matching the filter.
func (uc *OfferUsecase) List(ctx context.Context, filter domainRepos.PropertyOfferFilter, params utils.PaginationParams) ([]*entities.PropertyOffer, utils.PaginationMeta, error) {
	offers, total, err := uc.offerRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return offers, utils.CalculateMeta(int64(total), params.Page, params.Limit), nil
}

// GetStats returns offer counts grouped by status.
func (uc *OfferUsecase) GetStats(ctx context.Context) (*entities.OfferStats, error) {
	return uc.offerRepo.GetStats(ctx)
}

// releaseProperty reverts the property to active once no pending offer
// remains on it. The conditional update only fires from under_offer, so a
// sold or rented property is never reopened.
func (uc *OfferUsecase) releaseProperty(ctx context.Context, offer *entities.PropertyOffer) {
	pending, err := uc.offerRepo.CountPendingByProperty(ctx, offer.PropertyID, offer.ID)
	if err != nil {
		logger.Error(ctx, "failed to count sibling pending offers",
			zap.String("property_id", offer.PropertyID.String()),
			zap.Error(err))
		return
	}
	if pending > 0 {
		return
	}

	err = uc.propertyRepo.SetStatusIf(ctx, offer.PropertyID, entities.PropertyStatusActive, entities.PropertyStatusUnderOffer)
	if err != nil && err != domainerrors.ErrInvalidTransition {
		logger.Error(ctx, "failed to release property",
			zap.String("property_id", offer.PropertyID.String()),
			zap.Error(err))
	}
}

// dispatch sends a notification without blocking the transition. Failures
// are logged and counted, never surfaced to the caller.
func (uc *OfferUsecase) dispatch(ctx context.Context, recipientID uuid.UUID, eventType string, payload map[string]interface{}) {
	if uc.dispatcher == nil {
		return
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.dispatcher.Notify(sendCtx, recipientID, eventType, payload); err != nil {
			observability.NotificationFailures.WithLabelValues(eventType).Inc()
			logger.Warn(ctx, "notification dispatch failed",
				zap.String("event_type", eventType),
				zap.String("recipient_id", recipientID.String()),
				zap.Error(err))
		}
	}()
}

func (uc *OfferUsecase) mapOfferErr(err error) error {
	switch {
	case err == domainerrors.ErrNotFound:
		return domainerrors.NotFound("offer not found")
	case err == domainerrors.ErrInvalidTransition:
		return domainerrors.InvalidTransition("offer is no longer pending")
	}
	return err
}
