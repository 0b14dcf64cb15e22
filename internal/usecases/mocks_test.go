package usecases_test

import (
	"context"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock VerificationSubmissionRepository
type MockVerificationSubmissionRepository struct {
	mock.Mock
}

func (m *MockVerificationSubmissionRepository) Create(ctx context.Context, sub *entities.VerificationSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockVerificationSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSubmission), args.Error(1)
}

func (m *MockVerificationSubmissionRepository) List(ctx context.Context, filter domainRepos.VerificationSubmissionFilter) ([]*entities.VerificationSubmission, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VerificationSubmission), args.Error(1)
}

func (m *MockVerificationSubmissionRepository) RecordDecision(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, reviewerID uuid.UUID, reason string, reviewedAt time.Time) error {
	args := m.Called(ctx, id, status, reviewerID, reason, reviewedAt)
	return args.Error(0)
}

// Mock PropertyOfferRepository
type MockPropertyOfferRepository struct {
	mock.Mock
}

func (m *MockPropertyOfferRepository) Create(ctx context.Context, offer *entities.PropertyOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockPropertyOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PropertyOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PropertyOffer), args.Error(1)
}

func (m *MockPropertyOfferRepository) List(ctx context.Context, filter domainRepos.PropertyOfferFilter, limit, offset int) ([]*entities.PropertyOffer, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PropertyOffer), args.Int(1), args.Error(2)
}

func (m *MockPropertyOfferRepository) RecordDecision(ctx context.Context, id uuid.UUID, update domainRepos.OfferDecisionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockPropertyOfferRepository) MarkWithdrawn(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyOfferRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyOfferRepository) GetExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entities.PropertyOffer, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PropertyOffer), args.Error(1)
}

func (m *MockPropertyOfferRepository) CountPendingByProperty(ctx context.Context, propertyID uuid.UUID, excludeOfferID uuid.UUID) (int64, error) {
	args := m.Called(ctx, propertyID, excludeOfferID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyOfferRepository) GetStats(ctx context.Context) (*entities.OfferStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OfferStats), args.Error(1)
}

// Mock PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entities.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Property), args.Error(1)
}

func (m *MockPropertyRepository) SetStatusIf(ctx context.Context, id uuid.UUID, status entities.PropertyStatus, current ...entities.PropertyStatus) error {
	callArgs := make([]interface{}, 0, 3+len(current))
	callArgs = append(callArgs, ctx, id, status)
	for _, c := range current {
		callArgs = append(callArgs, c)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, verifiedAt *time.Time) error {
	args := m.Called(ctx, id, status, verifiedAt)
	return args.Error(0)
}

// Mock Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, recipientID uuid.UUID, eventType string, payload map[string]interface{}) error {
	args := m.Called(ctx, recipientID, eventType, payload)
	return args.Error(0)
}
