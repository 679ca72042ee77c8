package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/notification"
	"github.com/weshare/backend/internal/domain/sharing"
)

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	args := m.Called(ctx, recipientID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

// MockDonationRepository is a mock implementation of sharing.DonationRepository
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

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendRequestApproved(ctx context.Context, to, receiverName, donorName, donationTitle string, pickup PickupDetails) error {
	args := m.Called(ctx, to, receiverName, donorName, donationTitle, pickup)
	return args.Error(0)
}

func (m *MockMailer) SendRequestFulfilled(ctx context.Context, to, receiverName, donationTitle, donorName string) error {
	args := m.Called(ctx, to, receiverName, donationTitle, donorName)
	return args.Error(0)
}

func (m *MockMailer) SendDonationFulfilled(ctx context.Context, to, donorName, donationTitle, receiverName string) error {
	args := m.Called(ctx, to, donorName, donationTitle, receiverName)
	return args.Error(0)
}

// MockUnreadCounter is a mock implementation of UnreadCounter
type MockUnreadCounter struct {
	mock.Mock
}

func (m *MockUnreadCounter) Get(ctx context.Context, recipientID uuid.UUID) (int64, bool) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockUnreadCounter) Set(ctx context.Context, recipientID uuid.UUID, count int64) {
	m.Called(ctx, recipientID, count)
}

func (m *MockUnreadCounter) Invalidate(ctx context.Context, recipientID uuid.UUID) {
	m.Called(ctx, recipientID)
}
