package sharing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
)

// RequestStatus represents the status of a donation request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusFulfilled,
		RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusAccepted || target == RequestStatusRejected ||
			target == RequestStatusCancelled
	case RequestStatusAccepted:
		return target == RequestStatusFulfilled || target == RequestStatusCancelled
	case RequestStatusFulfilled, RequestStatusRejected, RequestStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Urgency expresses how badly a receiver needs the requested item
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// IsValid checks if the urgency is a known Urgency
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// String returns the string representation of Urgency
func (u Urgency) String() string {
	return string(u)
}

// Rating holds a receiver's one-time feedback on a fulfilled request
type Rating struct {
	Value    int        `json:"value"`
	Feedback string     `json:"feedback"`
	RatedAt  *time.Time `json:"rated_at"`
}

// IsSet reports whether the request has already been rated
func (r Rating) IsSet() bool {
	return r.RatedAt != nil
}

// Request represents a receiver's expression of need aggregate root.
// It may target a specific donation or stand alone as an open request
// visible to donors.
type Request struct {
	shared.BaseAggregateRoot
	ReceiverID      uuid.UUID
	DonationID      *uuid.UUID
	Category        Category
	Title           string
	Description     string
	Quantity        string
	Urgency         Urgency
	DeliveryAddress Address `gorm:"embedded;embeddedPrefix:delivery_"`
	Status          RequestStatus
	Rating          Rating `gorm:"embedded;embeddedPrefix:rating_"`
}

// NewRequest creates a new pending request. A non-nil donationID attaches the
// request to an existing donation; nil makes it a standalone open request.
func NewRequest(receiverID uuid.UUID, donationID *uuid.UUID, category Category, title, description, quantity string, urgency Urgency) (*Request, error) {
	if receiverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIVER", "Receiver ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category %q", category))
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity == "" {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be empty")
	}
	if urgency == "" {
		urgency = UrgencyMedium
	}
	if !urgency.IsValid() {
		return nil, shared.NewDomainError("INVALID_URGENCY", fmt.Sprintf("Unknown urgency %q", urgency))
	}

	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiverID:        receiverID,
		DonationID:        donationID,
		Category:          category,
		Title:             title,
		Description:       description,
		Quantity:          quantity,
		Urgency:           urgency,
		Status:            RequestStatusPending,
	}, nil
}

// SetDeliveryAddress sets the structured delivery address
func (r *Request) SetDeliveryAddress(address Address) {
	r.DeliveryAddress = address
	r.Touch()
}

// UpdateDetails overwrites the supplied descriptive fields. Status moves only
// through the named transitions, never through a generic update.
func (r *Request) UpdateDetails(title, description, quantity *string, urgency *Urgency) error {
	if title != nil {
		if *title == "" {
			return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
		}
		r.Title = *title
	}
	if description != nil {
		if *description == "" {
			return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
		}
		r.Description = *description
	}
	if quantity != nil {
		if *quantity == "" {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be empty")
		}
		r.Quantity = *quantity
	}
	if urgency != nil {
		if !urgency.IsValid() {
			return shared.NewDomainError("INVALID_URGENCY", fmt.Sprintf("Unknown urgency %q", *urgency))
		}
		r.Urgency = *urgency
	}
	r.Touch()
	return nil
}

// Accept links the request to a donation and marks it accepted
func (r *Request) Accept(donationID uuid.UUID) error {
	if !r.Status.CanTransitionTo(RequestStatusAccepted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept request in %s status", r.Status))
	}
	if donationID == uuid.Nil {
		return shared.NewDomainError("INVALID_DONATION", "Donation ID cannot be empty")
	}

	r.Status = RequestStatusAccepted
	r.DonationID = &donationID
	r.Touch()

	return nil
}

// MarkFulfilled transitions the request from accepted to fulfilled
func (r *Request) MarkFulfilled() error {
	if !r.Status.CanTransitionTo(RequestStatusFulfilled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fulfill request in %s status", r.Status))
	}

	r.Status = RequestStatusFulfilled
	r.Touch()

	return nil
}

// Reject marks a pending request as rejected
func (r *Request) Reject() error {
	if !r.Status.CanTransitionTo(RequestStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject request in %s status", r.Status))
	}

	r.Status = RequestStatusRejected
	r.Touch()

	return nil
}

// Cancel marks the request as cancelled. Allowed while pending or accepted;
// the receiver keeps control until fulfillment.
func (r *Request) Cancel() error {
	if !r.Status.CanTransitionTo(RequestStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel request in %s status", r.Status))
	}

	r.Status = RequestStatusCancelled
	r.Touch()

	return nil
}

// Rate records the receiver's one-time rating of a fulfilled request
func (r *Request) Rate(value int, feedback string) error {
	if r.Status != RequestStatusFulfilled {
		return shared.NewDomainError("NOT_FULFILLED", "Can only rate fulfilled requests")
	}
	if r.Rating.IsSet() {
		return shared.NewDomainError("ALREADY_RATED", "This request has already been rated")
	}
	if value < 1 || value > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	now := time.Now()
	r.Rating = Rating{
		Value:    value,
		Feedback: feedback,
		RatedAt:  &now,
	}
	r.UpdatedAt = now

	return nil
}

// IsOpen reports whether the request is a standalone pending request that
// donors may browse and fulfill
func (r *Request) IsOpen() bool {
	return r.DonationID == nil && r.Status == RequestStatusPending
}

// IsPending returns true if the request is pending
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsAccepted returns true if the request is accepted
func (r *Request) IsAccepted() bool {
	return r.Status == RequestStatusAccepted
}

// IsFulfilled returns true if the request is fulfilled
func (r *Request) IsFulfilled() bool {
	return r.Status == RequestStatusFulfilled
}

// IsTerminal returns true if the request reached a terminal state
func (r *Request) IsTerminal() bool {
	switch r.Status {
	case RequestStatusFulfilled, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}
