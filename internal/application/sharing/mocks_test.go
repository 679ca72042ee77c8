package sharing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
)

// MockDonationRepository is a mock implementation of DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindAll(ctx context.Context, filter sharing.DonationFilter) ([]sharing.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharing.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindNearby(ctx context.Context, point sharing.GeoPoint, filter sharing.NearbyFilter) ([]sharing.Donation, error) {
	args := m.Called(ctx, point, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharing.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]sharing.Donation, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharing.Donation), args.Error(1)
}

func (m *MockDonationRepository) Save(ctx context.Context, donation *sharing.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) SaveWithLock(ctx context.Context, donation *sharing.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonationRepository) Count(ctx context.Context, filter sharing.DonationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) RatingSummaryByDonor(ctx context.Context, donorID uuid.UUID) (*sharing.RatingSummary, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.RatingSummary), args.Error(1)
}

// MockRequestRepository is a mock implementation of RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAll(ctx context.Context, filter sharing.RequestFilter) ([]sharing.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharing.Request), args.Error(1)
}

func (m *MockRequestRepository) FindByDonation(ctx context.Context, donationID uuid.UUID) ([]sharing.Request, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharing.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAcceptedByDonation(ctx context.Context, donationID uuid.UUID) (*sharing.Request, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.Request), args.Error(1)
}

func (m *MockRequestRepository) Save(ctx context.Context, request *sharing.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) SaveWithLock(ctx context.Context, request *sharing.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) Count(ctx context.Context, filter sharing.RequestFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) SaveMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	args := m.Called(ctx, donation, request)
	return args.Error(0)
}

func (m *MockMatchRepository) CreateMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	args := m.Called(ctx, donation, request)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
