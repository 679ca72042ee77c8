package notification

import (
	"context"

	"github.com/google/uuid"
)

// ListLimit caps how many notifications a single listing returns
const ListLimit = 50

// Repository defines the interface for notification persistence.
// All reads and mutations are recipient-scoped; a notification is only
// visible to the user it is addressed to.
type Repository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient lists the newest notifications for a recipient,
	// capped at ListLimit. unreadOnly restricts to unread ones.
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error)

	// CountUnread counts unread notifications for a recipient
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks every unread notification of the recipient as read
	// and returns how many rows changed
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Delete removes a notification
	Delete(ctx context.Context, id uuid.UUID) error
}
