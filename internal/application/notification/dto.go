package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/notification"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID                uuid.UUID  `json:"id"`
	RecipientID       uuid.UUID  `json:"recipient_id"`
	SenderID          *uuid.UUID `json:"sender_id,omitempty"`
	Type              string     `json:"type"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	RelatedDonationID *uuid.UUID `json:"related_donation_id,omitempty"`
	RelatedRequestID  *uuid.UUID `json:"related_request_id,omitempty"`
	IsRead            bool       `json:"is_read"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToNotificationResponse maps a notification to its API shape
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		RecipientID:       n.RecipientID,
		SenderID:          n.SenderID,
		Type:              n.Type.String(),
		Title:             n.Title,
		Message:           n.Message,
		RelatedDonationID: n.RelatedDonationID,
		RelatedRequestID:  n.RelatedRequestID,
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
	}
}

// ToNotificationResponses maps a notification slice to API shapes
func ToNotificationResponses(notifications []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses
}

// NotificationListResponse bundles a listing with the recipient's unread count
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}
