package sharing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/weshare/backend/internal/domain/sharing"
)

// ==================== Shared inputs ====================

// AddressInput carries a structured postal address
type AddressInput struct {
	Street  string `json:"street" binding:"omitempty,max=200"`
	City    string `json:"city" binding:"omitempty,max=100"`
	State   string `json:"state" binding:"omitempty,max=100"`
	ZipCode string `json:"zip_code" binding:"omitempty,max=20"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

// ToAddress converts the input to its domain value
func (a AddressInput) ToAddress() sharing.Address {
	return sharing.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

// LocationInput carries WGS84 coordinates
type LocationInput struct {
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
}

// ToGeoPoint converts the input to its domain value
func (l LocationInput) ToGeoPoint() sharing.GeoPoint {
	return sharing.GeoPoint{Longitude: l.Longitude, Latitude: l.Latitude}
}

// ==================== Donation DTOs ====================

// CreateDonationRequest represents a request to list a new donation
type CreateDonationRequest struct {
	Category       string         `json:"category" binding:"required,sharecategory"`
	Title          string         `json:"title" binding:"required,min=1,max=200"`
	Description    string         `json:"description" binding:"required,min=1,max=2000"`
	Quantity       string         `json:"quantity" binding:"required,min=1,max=100"`
	Images         []string       `json:"images" binding:"omitempty,dive,url"`
	Location       *LocationInput `json:"location" binding:"required"`
	Address        *AddressInput  `json:"address"`
	PickupDate     *time.Time     `json:"pickup_date"`
	PickupTimeSlot string         `json:"pickup_time_slot" binding:"omitempty,max=100"`
	PickupMode     string         `json:"pickup_mode" binding:"omitempty,pickupmode"`
	ExpiryDate     *time.Time     `json:"expiry_date"`
}

// UpdateDonationRequest represents a request to update a donation.
// Status is deliberately absent; it only moves through named transitions.
type UpdateDonationRequest struct {
	Category       *string        `json:"category" binding:"omitempty,sharecategory"`
	Title          *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string        `json:"description" binding:"omitempty,min=1,max=2000"`
	Quantity       *string        `json:"quantity" binding:"omitempty,min=1,max=100"`
	Images         []string       `json:"images" binding:"omitempty,dive,url"`
	Location       *LocationInput `json:"location"`
	Address        *AddressInput  `json:"address"`
	PickupDate     *time.Time     `json:"pickup_date"`
	PickupTimeSlot *string        `json:"pickup_time_slot" binding:"omitempty,max=100"`
	PickupMode     *string        `json:"pickup_mode" binding:"omitempty,pickupmode"`
	ExpiryDate     *time.Time     `json:"expiry_date"`
}

// DonationListFilter represents filter options for donation listings.
// MaxDistance is in meters and only applies to the geo-near form.
type DonationListFilter struct {
	Category    string   `form:"category" binding:"omitempty,sharecategory"`
	Status      string   `form:"status" binding:"omitempty,oneof=available reserved fulfilled expired"`
	Longitude   *float64 `form:"longitude" binding:"omitempty,min=-180,max=180"`
	Latitude    *float64 `form:"latitude" binding:"omitempty,min=-90,max=90"`
	MaxDistance *float64 `form:"max_distance" binding:"omitempty,gt=0"`
	Page        int      `form:"page" binding:"omitempty,min=1"`
	PageSize    int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// LocationResponse represents coordinates in API responses
type LocationResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// PickupScheduleResponse represents a pickup schedule in API responses
type PickupScheduleResponse struct {
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `json:"time_slot,omitempty"`
	Mode     string     `json:"mode"`
}

// DonationResponse represents a donation in API responses
type DonationResponse struct {
	ID             uuid.UUID              `json:"id"`
	DonorID        uuid.UUID              `json:"donor_id"`
	Category       string                 `json:"category"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Quantity       string                 `json:"quantity"`
	Images         []string               `json:"images"`
	Location       *LocationResponse      `json:"location,omitempty"`
	Address        *AddressResponse       `json:"address,omitempty"`
	PickupSchedule PickupScheduleResponse `json:"pickup_schedule"`
	Status         string                 `json:"status"`
	ReceiverID     *uuid.UUID             `json:"receiver_id,omitempty"`
	ExpiryDate     *time.Time             `json:"expiry_date,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToDonationResponse maps a donation aggregate to its API shape
func ToDonationResponse(d *sharing.Donation) DonationResponse {
	resp := DonationResponse{
		ID:          d.ID,
		DonorID:     d.DonorID,
		Category:    d.Category.String(),
		Title:       d.Title,
		Description: d.Description,
		Quantity:    d.Quantity,
		Images:      d.Images,
		PickupSchedule: PickupScheduleResponse{
			Date:     d.PickupSchedule.Date,
			TimeSlot: d.PickupSchedule.TimeSlot,
			Mode:     string(d.PickupSchedule.Mode),
		},
		Status:     d.Status.String(),
		ReceiverID: d.ReceiverID,
		ExpiryDate: d.ExpiryDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if d.Location != nil {
		resp.Location = &LocationResponse{Longitude: d.Location.Longitude, Latitude: d.Location.Latitude}
	}
	if !d.Address.IsZero() {
		resp.Address = &AddressResponse{
			Street:  d.Address.Street,
			City:    d.Address.City,
			State:   d.Address.State,
			ZipCode: d.Address.ZipCode,
			Country: d.Address.Country,
		}
	}
	return resp
}

// ToDonationResponses maps a donation slice to API shapes
func ToDonationResponses(donations []sharing.Donation) []DonationResponse {
	responses := make([]DonationResponse, len(donations))
	for i := range donations {
		responses[i] = ToDonationResponse(&donations[i])
	}
	return responses
}

// ==================== Request DTOs ====================

// CreateRequestRequest represents a receiver's new request. A non-nil
// DonationID targets an existing donation; nil creates an open request.
type CreateRequestRequest struct {
	DonationID      *uuid.UUID    `json:"donation_id"`
	Category        string        `json:"category" binding:"required,sharecategory"`
	Title           string        `json:"title" binding:"required,min=1,max=200"`
	Description     string        `json:"description" binding:"required,min=1,max=2000"`
	Quantity        string        `json:"quantity" binding:"required,min=1,max=100"`
	Urgency         string        `json:"urgency" binding:"omitempty,shareurgency"`
	DeliveryAddress *AddressInput `json:"delivery_address"`
}

// UpdateRequestRequest represents a request update; status is absent here too
type UpdateRequestRequest struct {
	Title           *string       `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string       `json:"description" binding:"omitempty,min=1,max=2000"`
	Quantity        *string       `json:"quantity" binding:"omitempty,min=1,max=100"`
	Urgency         *string       `json:"urgency" binding:"omitempty,shareurgency"`
	DeliveryAddress *AddressInput `json:"delivery_address"`
}

// RateRequestRequest carries the receiver's one-time rating
type RateRequestRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"omitempty,max=1000"`
}

// FulfillRequestRequest lets a donor fulfill an open request directly
type FulfillRequestRequest struct {
	Location *LocationInput `json:"location"`
}

// RequestListFilter represents filter options for request listings
type RequestListFilter struct {
	Category string `form:"category" binding:"omitempty,sharecategory"`
	Urgency  string `form:"urgency" binding:"omitempty,shareurgency"`
	Status   string `form:"status" binding:"omitempty,oneof=pending accepted fulfilled rejected cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RatingResponse represents a rating in API responses
type RatingResponse struct {
	Value    int        `json:"value"`
	Feedback string     `json:"feedback,omitempty"`
	RatedAt  *time.Time `json:"rated_at"`
}

// RequestResponse represents a request in API responses
type RequestResponse struct {
	ID              uuid.UUID        `json:"id"`
	ReceiverID      uuid.UUID        `json:"receiver_id"`
	DonationID      *uuid.UUID       `json:"donation_id,omitempty"`
	Category        string           `json:"category"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Quantity        string           `json:"quantity"`
	Urgency         string           `json:"urgency"`
	DeliveryAddress *AddressResponse `json:"delivery_address,omitempty"`
	Status          string           `json:"status"`
	Rating          *RatingResponse  `json:"rating,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToRequestResponse maps a request aggregate to its API shape
func ToRequestResponse(r *sharing.Request) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID,
		ReceiverID:  r.ReceiverID,
		DonationID:  r.DonationID,
		Category:    r.Category.String(),
		Title:       r.Title,
		Description: r.Description,
		Quantity:    r.Quantity,
		Urgency:     r.Urgency.String(),
		Status:      r.Status.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if !r.DeliveryAddress.IsZero() {
		resp.DeliveryAddress = &AddressResponse{
			Street:  r.DeliveryAddress.Street,
			City:    r.DeliveryAddress.City,
			State:   r.DeliveryAddress.State,
			ZipCode: r.DeliveryAddress.ZipCode,
			Country: r.DeliveryAddress.Country,
		}
	}
	if r.Rating.IsSet() {
		resp.Rating = &RatingResponse{
			Value:    r.Rating.Value,
			Feedback: r.Rating.Feedback,
			RatedAt:  r.Rating.RatedAt,
		}
	}
	return resp
}

// ToRequestResponses maps a request slice to API shapes
func ToRequestResponses(requests []sharing.Request) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}

// FulfillResponse returns both sides of a completed fulfillment
type FulfillResponse struct {
	Request  RequestResponse  `json:"request"`
	Donation DonationResponse `json:"donation"`
}

// RatingSummaryResponse represents a donor's aggregated ratings
type RatingSummaryResponse struct {
	DonorID uuid.UUID       `json:"donor_id"`
	Average decimal.Decimal `json:"average"`
	Count   int64           `json:"count"`
}
