package sharing

import (
	"context"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
)

// DefaultFulfillLocation is used when a fulfilling donor has no profile
// location and none is supplied with the fulfillment
var DefaultFulfillLocation = sharing.GeoPoint{Longitude: 76.3869, Latitude: 30.3398}

// RequestService handles request business operations
type RequestService struct {
	requestRepo    sharing.RequestRepository
	donationRepo   sharing.DonationRepository
	matchRepo      sharing.MatchRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewRequestService creates a new RequestService
func NewRequestService(requestRepo sharing.RequestRepository, donationRepo sharing.DonationRepository, matchRepo sharing.MatchRepository, userRepo identity.UserRepository) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		donationRepo: donationRepo,
		matchRepo:    matchRepo,
		userRepo:     userRepo,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *RequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create files a new request by the acting receiver. With a donation ID the
// request targets that donation and the donor is notified; without one it
// becomes an open request visible to donors.
func (s *RequestService) Create(ctx context.Context, receiverID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	var donation *sharing.Donation
	if req.DonationID != nil {
		var err error
		donation, err = s.donationRepo.FindByID(ctx, *req.DonationID)
		if err != nil {
			return nil, err
		}
		if !donation.IsAvailable() {
			return nil, shared.NewDomainError("ALREADY_RESERVED", "This donation is no longer available")
		}
	}

	request, err := sharing.NewRequest(receiverID, req.DonationID, sharing.Category(req.Category), req.Title, req.Description, req.Quantity, sharing.Urgency(req.Urgency))
	if err != nil {
		return nil, err
	}
	if req.DeliveryAddress != nil {
		request.SetDeliveryAddress(req.DeliveryAddress.ToAddress())
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	if donation != nil {
		s.publishEvents(ctx, sharing.NewDonationRequestedEvent(request, donation))
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a request by ID
func (s *RequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(request)
	return &response, nil
}

// ListOpen retrieves standalone pending requests that donors may fulfill
func (s *RequestService) ListOpen(ctx context.Context, filter RequestListFilter) ([]RequestResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := sharing.RequestFilter{Filter: shared.DefaultFilter(), OpenOnly: true}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.Category != "" {
		category := sharing.Category(filter.Category)
		domainFilter.Category = &category
	}
	if filter.Urgency != "" {
		urgency := sharing.Urgency(filter.Urgency)
		domainFilter.Urgency = &urgency
	}

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requestRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRequestResponses(requests), total, nil
}

// ListMine retrieves all requests filed by the acting receiver
func (s *RequestService) ListMine(ctx context.Context, receiverID uuid.UUID) ([]RequestResponse, error) {
	domainFilter := sharing.RequestFilter{Filter: shared.DefaultFilter()}
	domainFilter.PageSize = 100
	domainFilter.ReceiverID = &receiverID

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// ListForDonation retrieves the requests targeting a donation. Only the
// donation's owner may see them.
func (s *RequestService) ListForDonation(ctx context.Context, donorID, donationID uuid.UUID) ([]RequestResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(donorID, donation.DonorID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.FindByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// Update updates a request's descriptive fields for the owning receiver
func (s *RequestService) Update(ctx context.Context, receiverID, requestID uuid.UUID, req UpdateRequestRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(receiverID, request.ReceiverID); err != nil {
		return nil, err
	}

	var urgency *sharing.Urgency
	if req.Urgency != nil {
		u := sharing.Urgency(*req.Urgency)
		urgency = &u
	}
	if err := request.UpdateDetails(req.Title, req.Description, req.Quantity, urgency); err != nil {
		return nil, err
	}
	if req.DeliveryAddress != nil {
		request.SetDeliveryAddress(req.DeliveryAddress.ToAddress())
	}

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// Delete removes a request owned by the acting receiver
func (s *RequestService) Delete(ctx context.Context, receiverID, requestID uuid.UUID) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(receiverID, request.ReceiverID); err != nil {
		return err
	}
	return s.requestRepo.Delete(ctx, requestID)
}

// Rate records the receiver's one-time rating of a fulfilled request and
// notifies the donor
func (s *RequestService) Rate(ctx context.Context, receiverID, requestID uuid.UUID, req RateRequestRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(receiverID, request.ReceiverID); err != nil {
		return nil, err
	}

	if err := request.Rate(req.Rating, req.Feedback); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	if request.DonationID != nil {
		if donation, err := s.donationRepo.FindByID(ctx, *request.DonationID); err == nil {
			s.publishEvents(ctx, sharing.NewRequestRatedEvent(request, donation))
		}
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// Fulfill lets a donor satisfy an open request directly. A reserved donation
// is manufactured from the request and both rows are written in one
// transaction; the request moves to accepted.
func (s *RequestService) Fulfill(ctx context.Context, donorID, requestID uuid.UUID, req FulfillRequestRequest) (*FulfillResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsOpen() {
		if request.DonationID != nil {
			return nil, shared.NewDomainError("ALREADY_RESERVED", "This request is already linked to a donation")
		}
		return nil, shared.NewDomainError("INVALID_STATE", "This request is no longer open")
	}

	location := s.fulfillLocation(ctx, donorID, req.Location)
	donation, err := sharing.NewFulfillingDonation(donorID, request, location)
	if err != nil {
		return nil, err
	}
	if err := request.Accept(donation.ID); err != nil {
		return nil, err
	}

	if err := s.matchRepo.CreateMatch(ctx, donation, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sharing.NewRequestAcceptedEvent(donation, request, true))

	return &FulfillResponse{
		Request:  ToRequestResponse(request),
		Donation: ToDonationResponse(donation),
	}, nil
}

// fulfillLocation resolves where a manufactured donation sits: explicit
// input, then the donor's profile location, then the system default.
func (s *RequestService) fulfillLocation(ctx context.Context, donorID uuid.UUID, input *LocationInput) sharing.GeoPoint {
	if input != nil {
		point := input.ToGeoPoint()
		if point.IsValid() {
			return point
		}
	}
	if donor, err := s.userRepo.FindByID(ctx, donorID); err == nil && donor.Location != nil {
		return *donor.Location
	}
	return DefaultFulfillLocation
}

func (s *RequestService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Fan-out is best effort; delivery failures never fail the operation
	_ = s.eventPublisher.Publish(ctx, events...)
}
