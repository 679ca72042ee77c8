package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/notification"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
	"github.com/weshare/backend/internal/interfaces/http/middleware"
)

// stubDonationRepository is an in-memory sharing.DonationRepository
type stubDonationRepository struct {
	donations map[uuid.UUID]*sharing.Donation
	err       error
}

func newStubDonationRepository() *stubDonationRepository {
	return &stubDonationRepository{donations: make(map[uuid.UUID]*sharing.Donation)}
}

func (r *stubDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Donation, error) {
	if r.err != nil {
		return nil, r.err
	}
	if d, ok := r.donations[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubDonationRepository) FindAll(ctx context.Context, filter sharing.DonationFilter) ([]sharing.Donation, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]sharing.Donation, 0, len(r.donations))
	for _, d := range r.donations {
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		if filter.DonorID != nil && d.DonorID != *filter.DonorID {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (r *stubDonationRepository) FindNearby(ctx context.Context, point sharing.GeoPoint, filter sharing.NearbyFilter) ([]sharing.Donation, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]sharing.Donation, 0)
	for _, d := range r.donations {
		if d.Status != sharing.DonationStatusAvailable || d.Location == nil {
			continue
		}
		if filter.Category != nil && d.Category != *filter.Category {
			continue
		}
		if filter.MaxDistanceMeters > 0 && point.DistanceMeters(*d.Location) > filter.MaxDistanceMeters {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (r *stubDonationRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]sharing.Donation, error) {
	return nil, r.err
}

func (r *stubDonationRepository) Save(ctx context.Context, donation *sharing.Donation) error {
	if r.err != nil {
		return r.err
	}
	copied := *donation
	r.donations[donation.ID] = &copied
	return nil
}

func (r *stubDonationRepository) SaveWithLock(ctx context.Context, donation *sharing.Donation) error {
	return r.Save(ctx, donation)
}

func (r *stubDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.donations[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.donations, id)
	return nil
}

func (r *stubDonationRepository) Count(ctx context.Context, filter sharing.DonationFilter) (int64, error) {
	all, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func (r *stubDonationRepository) RatingSummaryByDonor(ctx context.Context, donorID uuid.UUID) (*sharing.RatingSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &sharing.RatingSummary{DonorID: donorID}, nil
}

// stubRequestRepository is an in-memory sharing.RequestRepository
type stubRequestRepository struct {
	requests map[uuid.UUID]*sharing.Request
	err      error
}

func newStubRequestRepository() *stubRequestRepository {
	return &stubRequestRepository{requests: make(map[uuid.UUID]*sharing.Request)}
}

func (r *stubRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubRequestRepository) FindAll(ctx context.Context, filter sharing.RequestFilter) ([]sharing.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]sharing.Request, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.OpenOnly && (req.DonationID != nil || req.Status != sharing.RequestStatusPending) {
			continue
		}
		if filter.ReceiverID != nil && req.ReceiverID != *filter.ReceiverID {
			continue
		}
		result = append(result, *req)
	}
	return result, nil
}

func (r *stubRequestRepository) FindByDonation(ctx context.Context, donationID uuid.UUID) ([]sharing.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]sharing.Request, 0)
	for _, req := range r.requests {
		if req.DonationID != nil && *req.DonationID == donationID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *stubRequestRepository) FindAcceptedByDonation(ctx context.Context, donationID uuid.UUID) (*sharing.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, req := range r.requests {
		if req.DonationID != nil && *req.DonationID == donationID && req.Status == sharing.RequestStatusAccepted {
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubRequestRepository) Save(ctx context.Context, request *sharing.Request) error {
	if r.err != nil {
		return r.err
	}
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *stubRequestRepository) SaveWithLock(ctx context.Context, request *sharing.Request) error {
	return r.Save(ctx, request)
}

func (r *stubRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.requests[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *stubRequestRepository) Count(ctx context.Context, filter sharing.RequestFilter) (int64, error) {
	all, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// stubMatchRepository writes both aggregates through the underlying stubs
type stubMatchRepository struct {
	donations *stubDonationRepository
	requests  *stubRequestRepository
	err       error
}

func (r *stubMatchRepository) SaveMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	if r.err != nil {
		return r.err
	}
	if err := r.donations.Save(ctx, donation); err != nil {
		return err
	}
	return r.requests.Save(ctx, request)
}

func (r *stubMatchRepository) CreateMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	return r.SaveMatch(ctx, donation, request)
}

// stubNotificationRepository is an in-memory notification.Repository
type stubNotificationRepository struct {
	notifications map[uuid.UUID]*notification.Notification
	err           error
}

func newStubNotificationRepository() *stubNotificationRepository {
	return &stubNotificationRepository{notifications: make(map[uuid.UUID]*notification.Notification)}
}

func (r *stubNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	if r.err != nil {
		return nil, r.err
	}
	if n, ok := r.notifications[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]notification.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (r *stubNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *stubNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	if r.err != nil {
		return r.err
	}
	copied := *n
	r.notifications[n.ID] = &copied
	return nil
}

func (r *stubNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var changed int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *stubNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.notifications[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

// stubUserRepository is an in-memory identity.UserRepository
type stubUserRepository struct {
	users map[uuid.UUID]*identity.User
	err   error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[uuid.UUID]*identity.User)}
}

func (r *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	found := make(map[uuid.UUID]*identity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			found[id] = &copied
		}
	}
	return found, nil
}

func (r *stubUserRepository) Save(ctx context.Context, user *identity.User) error {
	if r.err != nil {
		return r.err
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// asUser simulates a passed JWT middleware for the given user
func asUser(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}
