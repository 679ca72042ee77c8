package sharing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/weshare/backend/internal/domain/shared"
)

// DonationFilter narrows donation listings
type DonationFilter struct {
	shared.Filter
	Status   *DonationStatus
	Category *Category
	DonorID  *uuid.UUID
}

// NearbyFilter narrows the geo-near donation listing
type NearbyFilter struct {
	// MaxDistanceMeters caps how far a donation may be from the query
	// point; zero or negative means no cap
	MaxDistanceMeters float64
	Category          *Category
	Limit             int
}

// RequestFilter narrows request listings
type RequestFilter struct {
	shared.Filter
	Status     *RequestStatus
	Category   *Category
	Urgency    *Urgency
	ReceiverID *uuid.UUID
	// OpenOnly restricts the result to requests with no linked donation
	// that are still pending
	OpenOnly bool
}

// RatingSummary aggregates ratings over a donor's fulfilled donations
type RatingSummary struct {
	DonorID uuid.UUID
	Average decimal.Decimal
	Count   int64
}

// DonationRepository defines the interface for donation persistence
type DonationRepository interface {
	// FindByID finds a donation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)

	// FindAll finds donations matching the filter
	FindAll(ctx context.Context, filter DonationFilter) ([]Donation, error)

	// FindNearby finds available donations ordered by distance from the
	// given point, narrowed by the nearby filter
	FindNearby(ctx context.Context, point GeoPoint, filter NearbyFilter) ([]Donation, error)

	// FindExpired finds available donations whose expiry date has passed
	FindExpired(ctx context.Context, now time.Time, limit int) ([]Donation, error)

	// Save creates or updates a donation
	Save(ctx context.Context, donation *Donation) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, donation *Donation) error

	// Delete removes a donation
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts donations matching the filter
	Count(ctx context.Context, filter DonationFilter) (int64, error)

	// RatingSummaryByDonor aggregates rating values across requests linked
	// to the donor's donations
	RatingSummaryByDonor(ctx context.Context, donorID uuid.UUID) (*RatingSummary, error)
}

// RequestRepository defines the interface for request persistence
type RequestRepository interface {
	// FindByID finds a request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// FindAll finds requests matching the filter
	FindAll(ctx context.Context, filter RequestFilter) ([]Request, error)

	// FindByDonation finds requests linked to a donation
	FindByDonation(ctx context.Context, donationID uuid.UUID) ([]Request, error)

	// FindAcceptedByDonation finds the accepted request linked to a donation,
	// or nil when none exists
	FindAcceptedByDonation(ctx context.Context, donationID uuid.UUID) (*Request, error)

	// Save creates or updates a request
	Save(ctx context.Context, request *Request) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, request *Request) error

	// Delete removes a request
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts requests matching the filter
	Count(ctx context.Context, filter RequestFilter) (int64, error)
}

// MatchRepository persists a donation and a request in one transaction.
// Both rows are version checked; if either check fails the whole write is
// rolled back, which makes concurrent acceptance of the same donation a
// first-writer-wins race.
type MatchRepository interface {
	// SaveMatch updates an existing donation/request pair atomically
	SaveMatch(ctx context.Context, donation *Donation, request *Request) error

	// CreateMatch inserts a new donation and updates an existing request
	// atomically, used when fulfilling an open request
	CreateMatch(ctx context.Context, donation *Donation, request *Request) error
}
