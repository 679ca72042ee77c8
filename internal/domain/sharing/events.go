package sharing

import (
	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeDonation = "Donation"
	AggregateTypeRequest  = "Request"
)

// Event type constants
const (
	EventTypeDonationCreated   = "DonationCreated"
	EventTypeDonationRequested = "DonationRequested"
	EventTypeRequestAccepted   = "RequestAccepted"
	EventTypeDonationFulfilled = "DonationFulfilled"
	EventTypeRequestRated      = "RequestRated"
	EventTypeDonationExpired   = "DonationExpired"
)

// DonationCreatedEvent is raised when a donor lists a new donation
type DonationCreatedEvent struct {
	shared.BaseDomainEvent
	DonationID uuid.UUID `json:"donation_id"`
	DonorID    uuid.UUID `json:"donor_id"`
	Category   Category  `json:"category"`
	Title      string    `json:"title"`
}

// NewDonationCreatedEvent creates a new DonationCreatedEvent
func NewDonationCreatedEvent(donation *Donation) *DonationCreatedEvent {
	return &DonationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDonationCreated, AggregateTypeDonation, donation.ID),
		DonationID:      donation.ID,
		DonorID:         donation.DonorID,
		Category:        donation.Category,
		Title:           donation.Title,
	}
}

// EventType returns the event type name
func (e *DonationCreatedEvent) EventType() string {
	return EventTypeDonationCreated
}

// DonationRequestedEvent is raised when a receiver requests a specific
// donation. It drives the request_made notification to the donor.
type DonationRequestedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	DonationID    uuid.UUID `json:"donation_id"`
	DonorID       uuid.UUID `json:"donor_id"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	DonationTitle string    `json:"donation_title"`
}

// NewDonationRequestedEvent creates a new DonationRequestedEvent
func NewDonationRequestedEvent(request *Request, donation *Donation) *DonationRequestedEvent {
	return &DonationRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDonationRequested, AggregateTypeRequest, request.ID),
		RequestID:       request.ID,
		DonationID:      donation.ID,
		DonorID:         donation.DonorID,
		ReceiverID:      request.ReceiverID,
		DonationTitle:   donation.Title,
	}
}

// EventType returns the event type name
func (e *DonationRequestedEvent) EventType() string {
	return EventTypeDonationRequested
}

// RequestAcceptedEvent is raised when a donor accepts a request, either for
// an existing donation or by fulfilling an open request with a fresh one.
// It drives the request_accepted notification and approval email.
type RequestAcceptedEvent struct {
	shared.BaseDomainEvent
	RequestID      uuid.UUID `json:"request_id"`
	DonationID     uuid.UUID `json:"donation_id"`
	DonorID        uuid.UUID `json:"donor_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
	DonationTitle  string    `json:"donation_title"`
	ViaFulfillment bool      `json:"via_fulfillment"`
}

// NewRequestAcceptedEvent creates a new RequestAcceptedEvent
func NewRequestAcceptedEvent(donation *Donation, request *Request, viaFulfillment bool) *RequestAcceptedEvent {
	return &RequestAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestAccepted, AggregateTypeRequest, request.ID),
		RequestID:       request.ID,
		DonationID:      donation.ID,
		DonorID:         donation.DonorID,
		ReceiverID:      request.ReceiverID,
		DonationTitle:   donation.Title,
		ViaFulfillment:  viaFulfillment,
	}
}

// EventType returns the event type name
func (e *RequestAcceptedEvent) EventType() string {
	return EventTypeRequestAccepted
}

// DonationFulfilledEvent is raised when a donor marks a reserved donation as
// handed over. It drives the donation_fulfilled notification and the
// completion emails to both parties.
type DonationFulfilledEvent struct {
	shared.BaseDomainEvent
	DonationID    uuid.UUID `json:"donation_id"`
	RequestID     uuid.UUID `json:"request_id"`
	DonorID       uuid.UUID `json:"donor_id"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	DonationTitle string    `json:"donation_title"`
}

// NewDonationFulfilledEvent creates a new DonationFulfilledEvent
func NewDonationFulfilledEvent(donation *Donation, request *Request) *DonationFulfilledEvent {
	return &DonationFulfilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDonationFulfilled, AggregateTypeDonation, donation.ID),
		DonationID:      donation.ID,
		RequestID:       request.ID,
		DonorID:         donation.DonorID,
		ReceiverID:      request.ReceiverID,
		DonationTitle:   donation.Title,
	}
}

// EventType returns the event type name
func (e *DonationFulfilledEvent) EventType() string {
	return EventTypeDonationFulfilled
}

// RequestRatedEvent is raised when a receiver rates a fulfilled request.
// It drives the rating_received notification to the donor.
type RequestRatedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	DonationID    uuid.UUID `json:"donation_id"`
	DonorID       uuid.UUID `json:"donor_id"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	DonationTitle string    `json:"donation_title"`
	RatingValue   int       `json:"rating_value"`
}

// NewRequestRatedEvent creates a new RequestRatedEvent
func NewRequestRatedEvent(request *Request, donation *Donation) *RequestRatedEvent {
	return &RequestRatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestRated, AggregateTypeRequest, request.ID),
		RequestID:       request.ID,
		DonationID:      donation.ID,
		DonorID:         donation.DonorID,
		ReceiverID:      request.ReceiverID,
		DonationTitle:   donation.Title,
		RatingValue:     request.Rating.Value,
	}
}

// EventType returns the event type name
func (e *RequestRatedEvent) EventType() string {
	return EventTypeRequestRated
}

// DonationExpiredEvent is raised when an available donation passes its expiry
type DonationExpiredEvent struct {
	shared.BaseDomainEvent
	DonationID uuid.UUID `json:"donation_id"`
	DonorID    uuid.UUID `json:"donor_id"`
	Title      string    `json:"title"`
}

// NewDonationExpiredEvent creates a new DonationExpiredEvent
func NewDonationExpiredEvent(donation *Donation) *DonationExpiredEvent {
	return &DonationExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDonationExpired, AggregateTypeDonation, donation.ID),
		DonationID:      donation.ID,
		DonorID:         donation.DonorID,
		Title:           donation.Title,
	}
}

// EventType returns the event type name
func (e *DonationExpiredEvent) EventType() string {
	return EventTypeDonationExpired
}
