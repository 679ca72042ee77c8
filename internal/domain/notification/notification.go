package notification

import (
	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
)

// Type classifies what a notification is about
type Type string

const (
	TypeRequestMade       Type = "request_made"
	TypeRequestAccepted   Type = "request_accepted"
	TypeRequestRejected   Type = "request_rejected"
	TypeDonationFulfilled Type = "donation_fulfilled"
	TypeRatingReceived    Type = "rating_received"
	TypeGeneral           Type = "general"
)

// IsValid checks if the type is a known notification Type
func (t Type) IsValid() bool {
	switch t {
	case TypeRequestMade, TypeRequestAccepted, TypeRequestRejected,
		TypeDonationFulfilled, TypeRatingReceived, TypeGeneral:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// Notification is an in-app message delivered to a single recipient
type Notification struct {
	shared.BaseEntity
	RecipientID       uuid.UUID
	SenderID          *uuid.UUID
	Type              Type
	Title             string
	Message           string
	RelatedDonationID *uuid.UUID
	RelatedRequestID  *uuid.UUID
	IsRead            bool
}

// New creates a notification for a recipient
func New(recipientID uuid.UUID, notifType Type, title, message string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Message:     message,
	}, nil
}

// WithSender attaches the user whose action produced the notification
func (n *Notification) WithSender(senderID uuid.UUID) *Notification {
	if senderID != uuid.Nil {
		n.SenderID = &senderID
	}
	return n
}

// WithDonation links the related donation
func (n *Notification) WithDonation(donationID uuid.UUID) *Notification {
	if donationID != uuid.Nil {
		n.RelatedDonationID = &donationID
	}
	return n
}

// WithRequest links the related request
func (n *Notification) WithRequest(requestID uuid.UUID) *Notification {
	if requestID != uuid.Nil {
		n.RelatedRequestID = &requestID
	}
	return n
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.Touch()
}

// BelongsTo reports whether the notification is addressed to the given user
func (n *Notification) BelongsTo(userID uuid.UUID) bool {
	return n.RecipientID == userID
}
