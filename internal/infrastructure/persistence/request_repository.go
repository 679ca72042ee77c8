package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID finds a request by its ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Request, error) {
	var request sharing.Request
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds requests matching the filter
func (r *GormRequestRepository) FindAll(ctx context.Context, filter sharing.RequestFilter) ([]sharing.Request, error) {
	var requests []sharing.Request
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sharing.Request{}), filter)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByDonation finds requests linked to a donation
func (r *GormRequestRepository) FindByDonation(ctx context.Context, donationID uuid.UUID) ([]sharing.Request, error) {
	var requests []sharing.Request
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindAcceptedByDonation finds the accepted request linked to a donation.
// Returns nil, nil when the donation was reserved outside the request workflow.
func (r *GormRequestRepository) FindAcceptedByDonation(ctx context.Context, donationID uuid.UUID) (*sharing.Request, error) {
	var request sharing.Request
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND status = ?", donationID, sharing.RequestStatusAccepted).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// Save creates or updates a request
func (r *GormRequestRepository) Save(ctx context.Context, request *sharing.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormRequestRepository) SaveWithLock(ctx context.Context, request *sharing.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveRequestWithLock(tx, request)
	})
}

// Delete removes a request
func (r *GormRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sharing.Request{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts requests matching the filter
func (r *GormRequestRepository) Count(ctx context.Context, filter sharing.RequestFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sharing.Request{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func saveRequestWithLock(tx *gorm.DB, request *sharing.Request) error {
	currentVersion := request.Version
	request.Version++
	request.UpdatedAt = time.Now()

	result := tx.Model(request).
		Where("version = ?", currentVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(request)

	if result.Error != nil {
		request.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		request.Version = currentVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormRequestRepository) applyFilter(query *gorm.DB, filter sharing.RequestFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter sharing.RequestFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.OpenOnly {
		query = query.Where("donation_id IS NULL AND status = ?", sharing.RequestStatusPending)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Urgency != nil {
		query = query.Where("urgency = ?", *filter.Urgency)
	}
	if filter.ReceiverID != nil {
		query = query.Where("receiver_id = ?", *filter.ReceiverID)
	}
	return query
}

var _ sharing.RequestRepository = (*GormRequestRepository)(nil)
