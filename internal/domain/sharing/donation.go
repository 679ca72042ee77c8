package sharing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
)

// DonationStatus represents the status of a donation listing
type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "available"
	DonationStatusReserved  DonationStatus = "reserved"
	DonationStatusFulfilled DonationStatus = "fulfilled"
	DonationStatusExpired   DonationStatus = "expired"
)

// IsValid checks if the status is a valid DonationStatus
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusAvailable, DonationStatusReserved, DonationStatusFulfilled, DonationStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of DonationStatus
func (s DonationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DonationStatus) CanTransitionTo(target DonationStatus) bool {
	switch s {
	case DonationStatusAvailable:
		return target == DonationStatusReserved || target == DonationStatusExpired
	case DonationStatusReserved:
		return target == DonationStatusFulfilled
	case DonationStatusFulfilled, DonationStatusExpired:
		return false // Terminal states
	}
	return false
}

// PickupMode determines whether the receiver collects or the donor delivers
type PickupMode string

const (
	PickupModePickup PickupMode = "pickup"
	PickupModeDrop   PickupMode = "drop"
)

// IsValid checks if the mode is a known PickupMode
func (m PickupMode) IsValid() bool {
	return m == PickupModePickup || m == PickupModeDrop
}

// PickupSchedule describes when and how a donation changes hands
type PickupSchedule struct {
	Date     *time.Time `json:"date"`
	TimeSlot string     `json:"time_slot"`
	Mode     PickupMode `json:"mode"`
}

// Donation represents a donor-listed item aggregate root.
// It manages the lifecycle of a listing from creation to hand-over.
type Donation struct {
	shared.BaseAggregateRoot
	DonorID        uuid.UUID
	Category       Category
	Title          string
	Description    string
	Quantity       string
	Images         []string `gorm:"serializer:json"`
	Location       *GeoPoint `gorm:"embedded;embeddedPrefix:location_"`
	Address        Address   `gorm:"embedded;embeddedPrefix:address_"`
	PickupSchedule PickupSchedule `gorm:"embedded;embeddedPrefix:pickup_"`
	Status         DonationStatus
	ReceiverID     *uuid.UUID
	ExpiryDate     *time.Time
}

// NewDonation creates a new available donation listed by a donor
func NewDonation(donorID uuid.UUID, category Category, title, description, quantity string, location *GeoPoint) (*Donation, error) {
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
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
	if location == nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location coordinates are required")
	}
	if !location.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location coordinates are out of range")
	}

	donation := &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DonorID:           donorID,
		Category:          category,
		Title:             title,
		Description:       description,
		Quantity:          quantity,
		Images:            make([]string, 0),
		Location:          location,
		Status:            DonationStatusAvailable,
		PickupSchedule:    PickupSchedule{Mode: PickupModePickup},
	}

	donation.AddDomainEvent(NewDonationCreatedEvent(donation))

	return donation, nil
}

// NewFulfillingDonation creates a donation manufactured to satisfy an open
// request. It is born reserved with the receiver already attached, skipping
// the available state entirely.
func NewFulfillingDonation(donorID uuid.UUID, req *Request, location GeoPoint) (*Donation, error) {
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
	}
	if req == nil {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Request cannot be nil")
	}

	date := time.Now().Add(7 * 24 * time.Hour)
	loc := location
	donation := &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DonorID:           donorID,
		Category:          req.Category,
		Title:             req.Title,
		Description:       fmt.Sprintf("Donation to fulfill request: %s", req.Description),
		Quantity:          req.Quantity,
		Images:            make([]string, 0),
		Location:          &loc,
		Address:           req.DeliveryAddress,
		Status:            DonationStatusReserved,
		ReceiverID:        &req.ReceiverID,
		PickupSchedule: PickupSchedule{
			Mode:     PickupModeDrop,
			Date:     &date,
			TimeSlot: "To be coordinated",
		},
	}

	return donation, nil
}

// SetAddress sets the structured pickup address
func (d *Donation) SetAddress(address Address) {
	d.Address = address
	d.Touch()
}

// SetPickupSchedule sets the pickup schedule
func (d *Donation) SetPickupSchedule(schedule PickupSchedule) error {
	if schedule.Mode != "" && !schedule.Mode.IsValid() {
		return shared.NewDomainError("INVALID_PICKUP_MODE", fmt.Sprintf("Unknown pickup mode %q", schedule.Mode))
	}
	if schedule.Mode == "" {
		schedule.Mode = PickupModePickup
	}
	d.PickupSchedule = schedule
	d.Touch()
	return nil
}

// SetImages replaces the image URL list
func (d *Donation) SetImages(images []string) {
	d.Images = images
	d.Touch()
}

// SetExpiryDate sets the expiry date
func (d *Donation) SetExpiryDate(expiry time.Time) {
	d.ExpiryDate = &expiry
	d.Touch()
}

// UpdateDetails overwrites the supplied descriptive fields. Status is not
// part of the update surface; it only moves through the named transitions.
func (d *Donation) UpdateDetails(category *Category, title, description, quantity *string) error {
	if category != nil {
		if !category.IsValid() {
			return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category %q", *category))
		}
		d.Category = *category
	}
	if title != nil {
		if *title == "" {
			return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
		}
		d.Title = *title
	}
	if description != nil {
		if *description == "" {
			return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
		}
		d.Description = *description
	}
	if quantity != nil {
		if *quantity == "" {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be empty")
		}
		d.Quantity = *quantity
	}
	d.Touch()
	return nil
}

// SetLocation sets the geo coordinates
func (d *Donation) SetLocation(location GeoPoint) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Location coordinates are out of range")
	}
	loc := location
	d.Location = &loc
	d.Touch()
	return nil
}

// Reserve transitions the donation to reserved for the given receiver.
// Only an available donation can be reserved.
func (d *Donation) Reserve(receiverID uuid.UUID) error {
	if !d.Status.CanTransitionTo(DonationStatusReserved) {
		return shared.NewDomainError("ALREADY_RESERVED", fmt.Sprintf("Cannot reserve donation in %s status", d.Status))
	}
	if receiverID == uuid.Nil {
		return shared.NewDomainError("INVALID_RECEIVER", "Receiver ID cannot be empty")
	}

	d.Status = DonationStatusReserved
	d.ReceiverID = &receiverID
	d.Touch()

	return nil
}

// MarkFulfilled transitions the donation from reserved to fulfilled
func (d *Donation) MarkFulfilled() error {
	if !d.Status.CanTransitionTo(DonationStatusFulfilled) {
		return shared.NewDomainError("NOT_RESERVED", fmt.Sprintf("Cannot fulfill donation in %s status", d.Status))
	}

	d.Status = DonationStatusFulfilled
	d.Touch()

	return nil
}

// Expire marks an available donation as expired (time-based, externally triggered)
func (d *Donation) Expire() error {
	if !d.Status.CanTransitionTo(DonationStatusExpired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire donation in %s status", d.Status))
	}

	d.Status = DonationStatusExpired
	d.Touch()

	d.AddDomainEvent(NewDonationExpiredEvent(d))

	return nil
}

// CanDelete reports whether the donation may be removed. Reserved and
// fulfilled donations carry receiver-visible state and must stay.
func (d *Donation) CanDelete() bool {
	return d.Status == DonationStatusAvailable
}

// IsAvailable returns true if the donation is open for requests
func (d *Donation) IsAvailable() bool {
	return d.Status == DonationStatusAvailable
}

// IsReserved returns true if the donation is reserved
func (d *Donation) IsReserved() bool {
	return d.Status == DonationStatusReserved
}

// IsFulfilled returns true if the donation is fulfilled
func (d *Donation) IsFulfilled() bool {
	return d.Status == DonationStatusFulfilled
}

// IsTerminal returns true if the donation is fulfilled or expired
func (d *Donation) IsTerminal() bool {
	return d.Status == DonationStatusFulfilled || d.Status == DonationStatusExpired
}

// HasReceiver reports whether a receiver is attached. A receiver is set
// if and only if the status is reserved or fulfilled.
func (d *Donation) HasReceiver() bool {
	return d.ReceiverID != nil
}
