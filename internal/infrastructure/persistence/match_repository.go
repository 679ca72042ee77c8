package persistence

import (
	"context"

	"github.com/weshare/backend/internal/domain/sharing"
	"gorm.io/gorm"
)

// GormMatchRepository writes a donation and a request in one transaction.
// Both rows are version checked; concurrent acceptance of the same donation
// resolves first-writer-wins.
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// SaveMatch updates an existing donation/request pair atomically
func (r *GormMatchRepository) SaveMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDonationWithLock(tx, donation); err != nil {
			return err
		}
		return saveRequestWithLock(tx, request)
	})
}

// CreateMatch inserts a new donation and updates an existing request
// atomically, used when fulfilling an open request
func (r *GormMatchRepository) CreateMatch(ctx context.Context, donation *sharing.Donation, request *sharing.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		return saveRequestWithLock(tx, request)
	})
}

var _ sharing.MatchRepository = (*GormMatchRepository)(nil)
