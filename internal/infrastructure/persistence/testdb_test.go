package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/notification"
	"github.com/weshare/backend/internal/domain/sharing"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&sharing.Donation{},
		&sharing.Request{},
		&notification.Notification{},
		&identity.User{},
	)
	require.NoError(t, err)

	return db
}

func mustNewDonation(t *testing.T, donorID uuid.UUID, location *sharing.GeoPoint) *sharing.Donation {
	t.Helper()
	d, err := sharing.NewDonation(donorID, sharing.CategoryFood, "Rice Bags", "Ten bags of rice", "10", location)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func mustNewOpenRequest(t *testing.T, receiverID uuid.UUID) *sharing.Request {
	t.Helper()
	r, err := sharing.NewRequest(receiverID, nil, sharing.CategoryFood, "Need Rice", "For the shelter", "5", sharing.UrgencyHigh)
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func mustNewTargetedRequest(t *testing.T, receiverID, donationID uuid.UUID) *sharing.Request {
	t.Helper()
	r, err := sharing.NewRequest(receiverID, &donationID, sharing.CategoryFood, "Need Rice", "For the shelter", "5", sharing.UrgencyMedium)
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func backdate(db *gorm.DB, table string, id uuid.UUID, createdAt time.Time) error {
	return db.Table(table).Where("id = ?", id).Update("created_at", createdAt).Error
}
