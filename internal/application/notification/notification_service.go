package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/notification"
	"github.com/weshare/backend/internal/domain/shared"
)

// UnreadCounter caches per-recipient unread counts. The cache is an
// optimization only; any miss or failure falls back to the repository.
type UnreadCounter interface {
	// Get returns the cached count; ok is false on a miss
	Get(ctx context.Context, recipientID uuid.UUID) (count int64, ok bool)
	// Set stores the count
	Set(ctx context.Context, recipientID uuid.UUID, count int64)
	// Invalidate drops the cached count
	Invalidate(ctx context.Context, recipientID uuid.UUID)
}

// NotificationService handles recipient-scoped notification queries
type NotificationService struct {
	repo    notification.Repository
	counter UnreadCounter
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// SetUnreadCounter attaches a cache for unread counts
func (s *NotificationService) SetUnreadCounter(counter UnreadCounter) {
	s.counter = counter
}

// List returns the recipient's newest notifications with their unread count
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*NotificationListResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}

	unread, err := s.unreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &NotificationListResponse{
		Notifications: ToNotificationResponses(notifications),
		UnreadCount:   unread,
	}, nil
}

// UnreadCount returns how many unread notifications the recipient has
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.unreadCount(ctx, recipientID)
}

// MarkRead marks one of the recipient's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !n.BelongsTo(recipientID) {
		return nil, shared.ErrForbidden
	}

	n.MarkRead()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	s.invalidate(ctx, recipientID)

	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	changed, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, recipientID)
	return changed, nil
}

// Delete removes one of the recipient's notifications
func (s *NotificationService) Delete(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !n.BelongsTo(recipientID) {
		return shared.ErrForbidden
	}

	if err := s.repo.Delete(ctx, notificationID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

func (s *NotificationService) unreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if s.counter != nil {
		if count, ok := s.counter.Get(ctx, recipientID); ok {
			return count, nil
		}
	}
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if s.counter != nil {
		s.counter.Set(ctx, recipientID, count)
	}
	return count, nil
}

func (s *NotificationService) invalidate(ctx context.Context, recipientID uuid.UUID) {
	if s.counter != nil {
		s.counter.Invalidate(ctx, recipientID)
	}
}
