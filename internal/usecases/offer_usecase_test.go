package usecases_test

import (
	"context"
	"testing"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"estate-hub.backend/internal/usecases"
	"estate-hub.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpiryWindows_Window(t *testing.T) {
	windows := usecases.DefaultExpiryWindows()

	cases := []struct {
		timeline string
		want     time.Duration
	}{
		{"ready_to_pay_in_full", 3 * 24 * time.Hour},
		{"1_months", 7 * 24 * time.Hour},
		{"2_months", 14 * 24 * time.Hour},
		{"4_months", 28 * 24 * time.Hour},
		{"5_months", 30 * 24 * time.Hour}, // 35 days capped at 30
		{"12_months", 30 * 24 * time.Hour},
		{"whenever", 7 * 24 * time.Hour},
		{"_months", 7 * 24 * time.Hour},
		{"-2_months", 7 * 24 * time.Hour},
		{"", 7 * 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.timeline, func(t *testing.T) {
			assert.Equal(t, tc.want, windows.Window(tc.timeline))
		})
	}
}

type offerMocks struct {
	offers     *MockPropertyOfferRepository
	properties *MockPropertyRepository
	users      *MockUserRepository
	uow        *MockUnitOfWork
}

func newOfferUC(t *testing.T) (*usecases.OfferUsecase, offerMocks) {
	t.Helper()
	m := offerMocks{
		offers:     new(MockPropertyOfferRepository),
		properties: new(MockPropertyRepository),
		users:      new(MockUserRepository),
		uow:        new(MockUnitOfWork),
	}
	uc := usecases.NewOfferUsecase(m.offers, m.properties, m.users, m.uow, nil, usecases.DefaultExpiryWindows())
	return uc, m
}

func verifiedBuyer(id uuid.UUID) *entities.User {
	return &entities.User{
		ID:        id,
		Email:     "buyer@example.com",
		Role:      entities.UserRoleBuyer,
		KYCStatus: entities.KYCVerified,
	}
}

func activeProperty(id uuid.UUID) *entities.Property {
	return &entities.Property{
		ID:     id,
		Title:  "Sunny flat",
		Price:  250000,
		Status: entities.PropertyStatusActive,
	}
}

func validCreateInput(propertyID, buyerID uuid.UUID) usecases.CreateOfferInput {
	return usecases.CreateOfferInput{
		PropertyID:        propertyID,
		BuyerID:           buyerID,
		OfferPrice:        240000,
		DepositAmount:     24000,
		PaymentMethod:     entities.PaymentMethodCash,
		EstimatedTimeline: entities.TimelineFullPayment,
	}
}

func TestOfferUsecase_Create_Success(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	buyerID := uuid.New()
	ownerID := uuid.New()

	property := activeProperty(propertyID)
	property.OwnerID = uuid.NullUUID{UUID: ownerID, Valid: true}

	m.users.On("GetByID", context.Background(), buyerID).Return(verifiedBuyer(buyerID), nil).Once()
	m.properties.On("GetByID", context.Background(), propertyID).Return(property, nil).Once()
	m.uow.On("Do", context.Background(), mock.Anything).Return(nil).Once()
	m.offers.On("Create", mock.Anything, mock.AnythingOfType("*entities.PropertyOffer")).Return(nil).Once()
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusUnderOffer,
		entities.PropertyStatusActive, entities.PropertyStatusUnderOffer).Return(nil).Once()

	before := time.Now()
	offer, err := uc.Create(context.Background(), validCreateInput(propertyID, buyerID))
	require.NoError(t, err)

	assert.Equal(t, entities.OfferStatusPending, offer.Status)
	assert.Equal(t, ownerID, offer.SellerID.UUID, "seller defaults to property owner")
	assert.WithinDuration(t, before.Add(3*24*time.Hour), offer.ExpiresAt, 5*time.Second)
	m.offers.AssertExpectations(t)
	m.properties.AssertExpectations(t)
}

func TestOfferUsecase_Create_InvalidInput(t *testing.T) {
	uc, _ := newOfferUC(t)

	cases := []struct {
		name   string
		mutate func(*usecases.CreateOfferInput)
	}{
		{"zero price", func(in *usecases.CreateOfferInput) { in.OfferPrice = 0 }},
		{"negative deposit", func(in *usecases.CreateOfferInput) { in.DepositAmount = -1 }},
		{"bad payment method", func(in *usecases.CreateOfferInput) { in.PaymentMethod = "barter" }},
		{"blank timeline", func(in *usecases.CreateOfferInput) { in.EstimatedTimeline = "  " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput(uuid.New(), uuid.New())
			tc.mutate(&input)
			_, err := uc.Create(context.Background(), input)
			var appErr *domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestOfferUsecase_Create_UnverifiedBuyer(t *testing.T) {
	uc, m := newOfferUC(t)

	buyerID := uuid.New()
	buyer := verifiedBuyer(buyerID)
	buyer.KYCStatus = entities.KYCPending
	m.users.On("GetByID", mock.Anything, buyerID).Return(buyer, nil).Once()

	_, err := uc.Create(context.Background(), validCreateInput(uuid.New(), buyerID))
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestOfferUsecase_Create_PropertyNotActive(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	buyerID := uuid.New()
	property := activeProperty(propertyID)
	property.Status = entities.PropertyStatusSold

	m.users.On("GetByID", mock.Anything, buyerID).Return(verifiedBuyer(buyerID), nil).Once()
	m.properties.On("GetByID", mock.Anything, propertyID).Return(property, nil).Once()

	_, err := uc.Create(context.Background(), validCreateInput(propertyID, buyerID))
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestOfferUsecase_Create_LostRaceToSale(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	buyerID := uuid.New()

	m.users.On("GetByID", mock.Anything, buyerID).Return(verifiedBuyer(buyerID), nil).Once()
	m.properties.On("GetByID", mock.Anything, propertyID).Return(activeProperty(propertyID), nil).Once()
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	m.offers.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	// The property got sold between the read and the conditional update.
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusUnderOffer,
		entities.PropertyStatusActive, entities.PropertyStatusUnderOffer).Return(domainerrors.ErrInvalidTransition).Once()

	_, err := uc.Create(context.Background(), validCreateInput(propertyID, buyerID))
	require.ErrorIs(t, err, domainerrors.ErrPropertyNotAvailable)
}

func pendingOffer(propertyID uuid.UUID) *entities.PropertyOffer {
	return &entities.PropertyOffer{
		ID:                uuid.New(),
		PropertyID:        propertyID,
		BuyerID:           uuid.New(),
		OfferPrice:        100000,
		PaymentMethod:     entities.PaymentMethodCash,
		EstimatedTimeline: entities.TimelineFullPayment,
		Status:            entities.OfferStatusPending,
		SubmittedAt:       time.Now(),
		ExpiresAt:         time.Now().Add(72 * time.Hour),
	}
}

func TestOfferUsecase_Decide_ApproveMarksPropertySold(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)
	reviewerID := uuid.New()

	approved := *offer
	approved.Status = entities.OfferStatusApproved

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	m.offers.On("RecordDecision", mock.Anything, offer.ID, mock.MatchedBy(func(u domainRepos.OfferDecisionUpdate) bool {
		return u.Status == entities.OfferStatusApproved && u.ReviewerID == reviewerID && u.Notes == "good terms"
	})).Return(nil).Once()
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusSold,
		entities.PropertyStatusUnderOffer, entities.PropertyStatusActive).Return(nil).Once()
	m.offers.On("GetByID", mock.Anything, offer.ID).Return(&approved, nil).Once()

	got, err := uc.Decide(context.Background(), offer.ID, entities.OfferDecisionApproved, reviewerID, "good terms")
	require.NoError(t, err)
	assert.Equal(t, entities.OfferStatusApproved, got.Status)
	m.properties.AssertExpectations(t)
	// Sibling pending offers stay untouched on approval.
	m.offers.AssertNotCalled(t, "CountPendingByProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestOfferUsecase_Decide_ApproveFailsWhenPropertyAlreadySold(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	m.offers.On("RecordDecision", mock.Anything, offer.ID, mock.Anything).Return(nil).Once()
	// A sibling approval already moved the property to sold.
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusSold,
		entities.PropertyStatusUnderOffer, entities.PropertyStatusActive).Return(domainerrors.ErrInvalidTransition).Once()

	_, err := uc.Decide(context.Background(), offer.ID, entities.OfferDecisionApproved, uuid.New(), "")
	require.ErrorIs(t, err, domainerrors.ErrPropertyNotAvailable)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestOfferUsecase_Decide_RejectReleasesProperty(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)

	rejected := *offer
	rejected.Status = entities.OfferStatusRejected

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.offers.On("RecordDecision", mock.Anything, offer.ID, mock.Anything).Return(nil).Once()
	m.offers.On("CountPendingByProperty", mock.Anything, propertyID, offer.ID).Return(int64(0), nil).Once()
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusActive,
		entities.PropertyStatusUnderOffer).Return(nil).Once()
	m.offers.On("GetByID", mock.Anything, offer.ID).Return(&rejected, nil).Once()

	got, err := uc.Decide(context.Background(), offer.ID, entities.OfferDecisionRejected, uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, entities.OfferStatusRejected, got.Status)
	m.properties.AssertExpectations(t)
}

func TestOfferUsecase_Decide_RejectKeepsPropertyUnderOfferWithSiblings(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Twice()
	m.offers.On("RecordDecision", mock.Anything, offer.ID, mock.Anything).Return(nil).Once()
	m.offers.On("CountPendingByProperty", mock.Anything, propertyID, offer.ID).Return(int64(2), nil).Once()

	_, err := uc.Decide(context.Background(), offer.ID, entities.OfferDecisionRejected, uuid.New(), "")
	require.NoError(t, err)
	m.properties.AssertNotCalled(t, "SetStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOfferUsecase_Decide_UnknownDecision(t *testing.T) {
	uc, _ := newOfferUC(t)

	_, err := uc.Decide(context.Background(), uuid.New(), entities.OfferDecision("maybe"), uuid.New(), "")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestOfferUsecase_Decide_AlreadyDecided(t *testing.T) {
	uc, m := newOfferUC(t)

	offer := pendingOffer(uuid.New())
	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	m.offers.On("RecordDecision", mock.Anything, offer.ID, mock.Anything).Return(domainerrors.ErrInvalidTransition).Once()

	_, err := uc.Decide(context.Background(), offer.ID, entities.OfferDecisionApproved, uuid.New(), "")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestOfferUsecase_Withdraw_OnlyBuyer(t *testing.T) {
	uc, m := newOfferUC(t)

	offer := pendingOffer(uuid.New())
	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()

	_, err := uc.Withdraw(context.Background(), offer.ID, uuid.New())
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
	m.offers.AssertNotCalled(t, "MarkWithdrawn", mock.Anything, mock.Anything)
}

func TestOfferUsecase_Withdraw_Success(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)

	withdrawn := *offer
	withdrawn.Status = entities.OfferStatusWithdrawn

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.offers.On("MarkWithdrawn", mock.Anything, offer.ID).Return(nil).Once()
	m.offers.On("CountPendingByProperty", mock.Anything, propertyID, offer.ID).Return(int64(0), nil).Once()
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusActive,
		entities.PropertyStatusUnderOffer).Return(nil).Once()
	m.offers.On("GetByID", mock.Anything, offer.ID).Return(&withdrawn, nil).Once()

	got, err := uc.Withdraw(context.Background(), offer.ID, offer.BuyerID)
	require.NoError(t, err)
	assert.Equal(t, entities.OfferStatusWithdrawn, got.Status)
}

func TestOfferUsecase_SweepExpired_CountsOnlyWonTransitions(t *testing.T) {
	uc, m := newOfferUC(t)

	now := time.Now()
	first := pendingOffer(uuid.New())
	second := pendingOffer(uuid.New())

	m.offers.On("GetExpiredPending", mock.Anything, now, 100).
		Return([]*entities.PropertyOffer{first, second}, nil).Once()
	m.offers.On("MarkExpired", mock.Anything, first.ID).Return(nil).Once()
	// The second offer was decided concurrently.
	m.offers.On("MarkExpired", mock.Anything, second.ID).Return(domainerrors.ErrInvalidTransition).Once()
	m.offers.On("CountPendingByProperty", mock.Anything, first.PropertyID, first.ID).Return(int64(0), nil).Once()
	m.properties.On("SetStatusIf", mock.Anything, first.PropertyID, entities.PropertyStatusActive,
		entities.PropertyStatusUnderOffer).Return(nil).Once()

	count, err := uc.SweepExpired(context.Background(), now, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	m.offers.AssertExpectations(t)
}

func TestOfferUsecase_SweepExpired_SecondRunCountsZero(t *testing.T) {
	uc, m := newOfferUC(t)

	now := time.Now()
	m.offers.On("GetExpiredPending", mock.Anything, now, 50).
		Return([]*entities.PropertyOffer{}, nil).Once()

	count, err := uc.SweepExpired(context.Background(), now, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOfferUsecase_ReleaseNeverReopensSoldProperty(t *testing.T) {
	uc, m := newOfferUC(t)

	propertyID := uuid.New()
	offer := pendingOffer(propertyID)

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Twice()
	m.offers.On("MarkWithdrawn", mock.Anything, offer.ID).Return(nil).Once()
	m.offers.On("CountPendingByProperty", mock.Anything, propertyID, offer.ID).Return(int64(0), nil).Once()
	// Property is sold, the conditional release misses and that is fine.
	m.properties.On("SetStatusIf", mock.Anything, propertyID, entities.PropertyStatusActive,
		entities.PropertyStatusUnderOffer).Return(domainerrors.ErrInvalidTransition).Once()

	_, err := uc.Withdraw(context.Background(), offer.ID, offer.BuyerID)
	require.NoError(t, err)
}

func TestOfferUsecase_List(t *testing.T) {
	uc, m := newOfferUC(t)

	buyerID := uuid.New()
	filter := domainRepos.PropertyOfferFilter{BuyerID: buyerID}
	m.offers.On("List", mock.Anything, filter, 20, 0).
		Return([]*entities.PropertyOffer{pendingOffer(uuid.New())}, 1, nil).Once()

	offers, meta, err := uc.List(context.Background(), filter, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, int64(1), meta.TotalCount)
}

func TestOfferUsecase_GetStats(t *testing.T) {
	uc, m := newOfferUC(t)

	m.offers.On("GetStats", mock.Anything).Return(&entities.OfferStats{Total: 3, Pending: 2, Expired: 1}, nil).Once()

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
}
