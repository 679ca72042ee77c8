package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDonationRepository implements DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharing.Donation, error) {
	var donation sharing.Donation
	if err := r.db.WithContext(ctx).First(&donation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// FindAll finds donations matching the filter
func (r *GormDonationRepository) FindAll(ctx context.Context, filter sharing.DonationFilter) ([]sharing.Donation, error) {
	var donations []sharing.Donation
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sharing.Donation{}), filter)

	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// FindNearby finds available donations ordered by distance from the given
// point. Ordering uses the squared coordinate delta, which preserves
// nearest-first order at city scale without a spatial extension; the
// max-distance cutoff uses the haversine distance and runs in Go for the
// same reason.
func (r *GormDonationRepository) FindNearby(ctx context.Context, point sharing.GeoPoint, filter sharing.NearbyFilter) ([]sharing.Donation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&sharing.Donation{}).
		Where("status = ?", sharing.DonationStatusAvailable).
		Where("location_longitude IS NOT NULL")
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var donations []sharing.Donation
	err := query.
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "((location_longitude - ?) * (location_longitude - ?)) + ((location_latitude - ?) * (location_latitude - ?)) ASC",
			Vars: []interface{}{point.Longitude, point.Longitude, point.Latitude, point.Latitude},
		}}).
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, err
	}

	if filter.MaxDistanceMeters <= 0 {
		return donations, nil
	}
	within := make([]sharing.Donation, 0, len(donations))
	for _, d := range donations {
		if d.Location != nil && point.DistanceMeters(*d.Location) <= filter.MaxDistanceMeters {
			within = append(within, d)
		}
	}
	return within, nil
}

// FindExpired finds available donations whose expiry date has passed
func (r *GormDonationRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]sharing.Donation, error) {
	var donations []sharing.Donation
	query := r.db.WithContext(ctx).
		Where("status = ?", sharing.DonationStatusAvailable).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", now).
		Order("expiry_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Save creates or updates a donation
func (r *GormDonationRepository) Save(ctx context.Context, donation *sharing.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDonationRepository) SaveWithLock(ctx context.Context, donation *sharing.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDonationWithLock(tx, donation)
	})
}

// Delete removes a donation
func (r *GormDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sharing.Donation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts donations matching the filter
func (r *GormDonationRepository) Count(ctx context.Context, filter sharing.DonationFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sharing.Donation{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RatingSummaryByDonor aggregates rating values across requests linked to
// the donor's donations
func (r *GormDonationRepository) RatingSummaryByDonor(ctx context.Context, donorID uuid.UUID) (*sharing.RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}

	err := r.db.WithContext(ctx).
		Model(&sharing.Request{}).
		Select("AVG(requests.rating_value) AS average, COUNT(*) AS count").
		Joins("JOIN donations ON donations.id = requests.donation_id").
		Where("donations.donor_id = ?", donorID).
		Where("requests.rating_rated_at IS NOT NULL").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary := &sharing.RatingSummary{
		DonorID: donorID,
		Count:   row.Count,
	}
	if row.Average != nil {
		summary.Average = decimal.NewFromFloat(*row.Average).Round(2)
	}
	return summary, nil
}

func saveDonationWithLock(tx *gorm.DB, donation *sharing.Donation) error {
	currentVersion := donation.Version
	donation.Version++
	donation.UpdatedAt = time.Now()

	result := tx.Model(donation).
		Where("version = ?", currentVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(donation)

	if result.Error != nil {
		donation.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		donation.Version = currentVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormDonationRepository) applyFilter(query *gorm.DB, filter sharing.DonationFilter) *gorm.DB {
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

func (r *GormDonationRepository) applyFilterWithoutPagination(query *gorm.DB, filter sharing.DonationFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	return query
}

var _ sharing.DonationRepository = (*GormDonationRepository)(nil)
