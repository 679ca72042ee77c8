package sharing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
)

// DefaultNearbyRadiusMeters bounds the geo-near listing when the caller
// gives no max_distance
const DefaultNearbyRadiusMeters = 50000

// DonationService handles donation business operations
type DonationService struct {
	donationRepo   sharing.DonationRepository
	requestRepo    sharing.RequestRepository
	matchRepo      sharing.MatchRepository
	eventPublisher shared.EventPublisher
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo sharing.DonationRepository, requestRepo sharing.RequestRepository, matchRepo sharing.MatchRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		matchRepo:    matchRepo,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *DonationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create lists a new donation for the acting donor
func (s *DonationService) Create(ctx context.Context, donorID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error) {
	location := req.Location.ToGeoPoint()
	donation, err := sharing.NewDonation(donorID, sharing.Category(req.Category), req.Title, req.Description, req.Quantity, &location)
	if err != nil {
		return nil, err
	}

	if len(req.Images) > 0 {
		donation.SetImages(req.Images)
	}
	if req.Address != nil {
		donation.SetAddress(req.Address.ToAddress())
	}
	if req.PickupDate != nil || req.PickupTimeSlot != "" || req.PickupMode != "" {
		schedule := sharing.PickupSchedule{
			Date:     req.PickupDate,
			TimeSlot: req.PickupTimeSlot,
			Mode:     sharing.PickupMode(req.PickupMode),
		}
		if err := donation.SetPickupSchedule(schedule); err != nil {
			return nil, err
		}
	}
	if req.ExpiryDate != nil {
		donation.SetExpiryDate(*req.ExpiryDate)
	}

	if err := s.donationRepo.Save(ctx, donation); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, donation.GetDomainEvents()...)
	donation.ClearDomainEvents()

	response := ToDonationResponse(donation)
	return &response, nil
}

// GetByID retrieves a donation by ID
func (s *DonationService) GetByID(ctx context.Context, donationID uuid.UUID) (*DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	response := ToDonationResponse(donation)
	return &response, nil
}

// List retrieves donations for public browsing. Without an explicit status
// filter only available donations are returned. When coordinates are given
// the result is ordered by distance instead of recency.
func (s *DonationService) List(ctx context.Context, filter DonationListFilter) ([]DonationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if filter.Longitude != nil && filter.Latitude != nil {
		point := sharing.GeoPoint{Longitude: *filter.Longitude, Latitude: *filter.Latitude}
		nearby := sharing.NearbyFilter{
			MaxDistanceMeters: DefaultNearbyRadiusMeters,
			Limit:             filter.PageSize,
		}
		if filter.MaxDistance != nil {
			nearby.MaxDistanceMeters = *filter.MaxDistance
		}
		if filter.Category != "" {
			category := sharing.Category(filter.Category)
			nearby.Category = &category
		}
		donations, err := s.donationRepo.FindNearby(ctx, point, nearby)
		if err != nil {
			return nil, 0, err
		}
		return ToDonationResponses(donations), int64(len(donations)), nil
	}

	domainFilter := sharing.DonationFilter{Filter: shared.DefaultFilter()}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	status := sharing.DonationStatusAvailable
	if filter.Status != "" {
		status = sharing.DonationStatus(filter.Status)
	}
	domainFilter.Status = &status

	if filter.Category != "" {
		category := sharing.Category(filter.Category)
		domainFilter.Category = &category
	}

	donations, err := s.donationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.donationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDonationResponses(donations), total, nil
}

// ListMine retrieves all donations listed by the acting donor
func (s *DonationService) ListMine(ctx context.Context, donorID uuid.UUID) ([]DonationResponse, error) {
	domainFilter := sharing.DonationFilter{Filter: shared.DefaultFilter()}
	domainFilter.PageSize = 100
	domainFilter.DonorID = &donorID

	donations, err := s.donationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToDonationResponses(donations), nil
}

// Update updates a donation's descriptive fields. Only the owning donor may
// update, and status never changes here.
func (s *DonationService) Update(ctx context.Context, donorID, donationID uuid.UUID, req UpdateDonationRequest) (*DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(donorID, donation.DonorID); err != nil {
		return nil, err
	}

	var category *sharing.Category
	if req.Category != nil {
		c := sharing.Category(*req.Category)
		category = &c
	}
	if err := donation.UpdateDetails(category, req.Title, req.Description, req.Quantity); err != nil {
		return nil, err
	}

	if req.Images != nil {
		donation.SetImages(req.Images)
	}
	if req.Location != nil {
		if err := donation.SetLocation(req.Location.ToGeoPoint()); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		donation.SetAddress(req.Address.ToAddress())
	}
	if req.PickupDate != nil || req.PickupTimeSlot != nil || req.PickupMode != nil {
		schedule := donation.PickupSchedule
		if req.PickupDate != nil {
			schedule.Date = req.PickupDate
		}
		if req.PickupTimeSlot != nil {
			schedule.TimeSlot = *req.PickupTimeSlot
		}
		if req.PickupMode != nil {
			schedule.Mode = sharing.PickupMode(*req.PickupMode)
		}
		if err := donation.SetPickupSchedule(schedule); err != nil {
			return nil, err
		}
	}
	if req.ExpiryDate != nil {
		donation.SetExpiryDate(*req.ExpiryDate)
	}

	if err := s.donationRepo.SaveWithLock(ctx, donation); err != nil {
		return nil, err
	}

	response := ToDonationResponse(donation)
	return &response, nil
}

// Delete removes a donation. Only available donations may go; reserved and
// fulfilled ones carry receiver-visible state.
func (s *DonationService) Delete(ctx context.Context, donorID, donationID uuid.UUID) error {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(donorID, donation.DonorID); err != nil {
		return err
	}
	if !donation.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a donation that is reserved or fulfilled")
	}
	return s.donationRepo.Delete(ctx, donationID)
}

// AcceptRequest reserves the donation for a pending request and accepts the
// request, in one transaction. Concurrent acceptances race on the donation's
// version; the first commit wins and later ones see a conflict.
func (s *DonationService) AcceptRequest(ctx context.Context, donorID, donationID, requestID uuid.UUID) (*DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(donorID, donation.DonorID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := donation.Reserve(request.ReceiverID); err != nil {
		return nil, err
	}
	if err := request.Accept(donation.ID); err != nil {
		return nil, err
	}

	if err := s.matchRepo.SaveMatch(ctx, donation, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sharing.NewRequestAcceptedEvent(donation, request, false))

	response := ToDonationResponse(donation)
	return &response, nil
}

// MarkFulfilled completes a reserved donation and its accepted request
// together. The hand-over is recorded on both sides or not at all.
func (s *DonationService) MarkFulfilled(ctx context.Context, donorID, donationID uuid.UUID) (*DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(donorID, donation.DonorID); err != nil {
		return nil, err
	}

	if err := donation.MarkFulfilled(); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindAcceptedByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if request != nil {
		if err := request.MarkFulfilled(); err != nil {
			return nil, err
		}
		if err := s.matchRepo.SaveMatch(ctx, donation, request); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, sharing.NewDonationFulfilledEvent(donation, request))
	} else {
		// Reserved outside the request workflow; complete the donation alone
		if err := s.donationRepo.SaveWithLock(ctx, donation); err != nil {
			return nil, err
		}
	}

	response := ToDonationResponse(donation)
	return &response, nil
}

// ExpireOverdue sweeps available donations past their expiry date. Invoked
// by an external scheduler, not an in-process timer.
func (s *DonationService) ExpireOverdue(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	donations, err := s.donationRepo.FindExpired(ctx, time.Now(), limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range donations {
		donation := &donations[i]
		if err := donation.Expire(); err != nil {
			continue
		}
		if err := s.donationRepo.SaveWithLock(ctx, donation); err != nil {
			// Lost the race to a concurrent reservation; skip it
			continue
		}
		expired++
		s.publishEvents(ctx, donation.GetDomainEvents()...)
		donation.ClearDomainEvents()
	}
	return expired, nil
}

// RatingSummary aggregates ratings received across the donor's donations
func (s *DonationService) RatingSummary(ctx context.Context, donorID uuid.UUID) (*RatingSummaryResponse, error) {
	summary, err := s.donationRepo.RatingSummaryByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return &RatingSummaryResponse{
		DonorID: summary.DonorID,
		Average: summary.Average,
		Count:   summary.Count,
	}, nil
}

func (s *DonationService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Fan-out is best effort; delivery failures never fail the operation
	_ = s.eventPublisher.Publish(ctx, events...)
}
