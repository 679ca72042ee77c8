package sharing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weshare/backend/internal/domain/shared"
)

// Test helpers
func createTestDonation(t *testing.T) *Donation {
	donorID := uuid.New()
	location := &GeoPoint{Longitude: 76.3869, Latitude: 30.3398}
	donation, err := NewDonation(donorID, CategoryFood, "Rice bags", "Ten bags of rice", "10 bags", location)
	require.NoError(t, err)
	return donation
}

func createTestOpenRequest(t *testing.T) *Request {
	receiverID := uuid.New()
	request, err := NewRequest(receiverID, nil, CategoryClothes, "Winter jackets", "Warm jackets for children", "5", UrgencyHigh)
	require.NoError(t, err)
	request.SetDeliveryAddress(Address{Street: "12 Mill Rd", City: "Patiala", State: "Punjab", ZipCode: "147001", Country: "India"})
	return request
}

// ============================================
// DonationStatus Tests
// ============================================

func TestDonationStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  DonationStatus
		isValid bool
	}{
		{DonationStatusAvailable, true},
		{DonationStatusReserved, true},
		{DonationStatusFulfilled, true},
		{DonationStatusExpired, true},
		{DonationStatus("invalid"), false},
		{DonationStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestDonationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     DonationStatus
		to       DonationStatus
		canTrans bool
	}{
		// From available
		{DonationStatusAvailable, DonationStatusReserved, true},
		{DonationStatusAvailable, DonationStatusExpired, true},
		{DonationStatusAvailable, DonationStatusFulfilled, false},
		// From reserved
		{DonationStatusReserved, DonationStatusFulfilled, true},
		{DonationStatusReserved, DonationStatusAvailable, false},
		{DonationStatusReserved, DonationStatusExpired, false},
		// From fulfilled (terminal)
		{DonationStatusFulfilled, DonationStatusAvailable, false},
		{DonationStatusFulfilled, DonationStatusReserved, false},
		{DonationStatusFulfilled, DonationStatusExpired, false},
		// From expired (terminal)
		{DonationStatusExpired, DonationStatusAvailable, false},
		{DonationStatusExpired, DonationStatusReserved, false},
		{DonationStatusExpired, DonationStatusFulfilled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// NewDonation Tests
// ============================================

func TestNewDonation(t *testing.T) {
	donorID := uuid.New()
	location := &GeoPoint{Longitude: 76.3869, Latitude: 30.3398}

	t.Run("creates donation with valid inputs", func(t *testing.T) {
		donation, err := NewDonation(donorID, CategoryFood, "Rice bags", "Ten bags of rice", "10 bags", location)
		require.NoError(t, err)
		require.NotNil(t, donation)

		assert.Equal(t, donorID, donation.DonorID)
		assert.Equal(t, CategoryFood, donation.Category)
		assert.Equal(t, "Rice bags", donation.Title)
		assert.Equal(t, DonationStatusAvailable, donation.Status)
		assert.Nil(t, donation.ReceiverID)
		assert.Empty(t, donation.Images)
		assert.Equal(t, PickupModePickup, donation.PickupSchedule.Mode)
		assert.Equal(t, 1, donation.Version)
	})

	t.Run("raises DonationCreated event", func(t *testing.T) {
		donation, err := NewDonation(donorID, CategoryFood, "Rice bags", "Ten bags of rice", "10 bags", location)
		require.NoError(t, err)

		events := donation.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDonationCreated, events[0].EventType())
		assert.Equal(t, donation.ID, events[0].AggregateID())
	})

	t.Run("rejects empty donor ID", func(t *testing.T) {
		_, err := NewDonation(uuid.Nil, CategoryFood, "Rice", "Rice", "1", location)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DONOR", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewDonation(donorID, Category("toys"), "Rice", "Rice", "1", location)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewDonation(donorID, CategoryFood, "", "Rice", "1", location)
		require.Error(t, err)
	})

	t.Run("rejects missing location", func(t *testing.T) {
		_, err := NewDonation(donorID, CategoryFood, "Rice", "Rice", "1", nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_LOCATION", domainErr.Code)
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		_, err := NewDonation(donorID, CategoryFood, "Rice", "Rice", "1", &GeoPoint{Longitude: 200, Latitude: 30})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_LOCATION", domainErr.Code)
	})
}

// ============================================
// NewFulfillingDonation Tests
// ============================================

func TestNewFulfillingDonation(t *testing.T) {
	donorID := uuid.New()
	location := GeoPoint{Longitude: 76.3869, Latitude: 30.3398}

	t.Run("creates reserved donation from open request", func(t *testing.T) {
		request := createTestOpenRequest(t)
		donation, err := NewFulfillingDonation(donorID, request, location)
		require.NoError(t, err)
		require.NotNil(t, donation)

		assert.Equal(t, DonationStatusReserved, donation.Status)
		assert.Equal(t, donorID, donation.DonorID)
		require.NotNil(t, donation.ReceiverID)
		assert.Equal(t, request.ReceiverID, *donation.ReceiverID)
		assert.Equal(t, request.Category, donation.Category)
		assert.Equal(t, request.Title, donation.Title)
		assert.Equal(t, request.Quantity, donation.Quantity)
		assert.Equal(t, "Donation to fulfill request: "+request.Description, donation.Description)
		assert.Equal(t, request.DeliveryAddress, donation.Address)
	})

	t.Run("schedules a drop about a week out", func(t *testing.T) {
		request := createTestOpenRequest(t)
		donation, err := NewFulfillingDonation(donorID, request, location)
		require.NoError(t, err)

		assert.Equal(t, PickupModeDrop, donation.PickupSchedule.Mode)
		assert.Equal(t, "To be coordinated", donation.PickupSchedule.TimeSlot)
		require.NotNil(t, donation.PickupSchedule.Date)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *donation.PickupSchedule.Date, time.Minute)
	})

	t.Run("rejects nil request", func(t *testing.T) {
		_, err := NewFulfillingDonation(donorID, nil, location)
		require.Error(t, err)
	})

	t.Run("rejects empty donor ID", func(t *testing.T) {
		request := createTestOpenRequest(t)
		_, err := NewFulfillingDonation(uuid.Nil, request, location)
		require.Error(t, err)
	})
}

// ============================================
// Donation Transition Tests
// ============================================

func TestDonation_Reserve(t *testing.T) {
	t.Run("reserves available donation", func(t *testing.T) {
		donation := createTestDonation(t)
		receiverID := uuid.New()

		err := donation.Reserve(receiverID)
		require.NoError(t, err)

		assert.Equal(t, DonationStatusReserved, donation.Status)
		require.NotNil(t, donation.ReceiverID)
		assert.Equal(t, receiverID, *donation.ReceiverID)
	})

	t.Run("rejects reserving a reserved donation", func(t *testing.T) {
		donation := createTestDonation(t)
		require.NoError(t, donation.Reserve(uuid.New()))

		err := donation.Reserve(uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_RESERVED", domainErr.Code)
	})

	t.Run("rejects empty receiver ID", func(t *testing.T) {
		donation := createTestDonation(t)
		err := donation.Reserve(uuid.Nil)
		require.Error(t, err)
	})
}

func TestDonation_MarkFulfilled(t *testing.T) {
	t.Run("fulfills reserved donation", func(t *testing.T) {
		donation := createTestDonation(t)
		require.NoError(t, donation.Reserve(uuid.New()))

		err := donation.MarkFulfilled()
		require.NoError(t, err)
		assert.Equal(t, DonationStatusFulfilled, donation.Status)
		assert.True(t, donation.IsTerminal())
	})

	t.Run("rejects fulfilling available donation", func(t *testing.T) {
		donation := createTestDonation(t)

		err := donation.MarkFulfilled()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_RESERVED", domainErr.Code)
	})

	t.Run("rejects fulfilling twice", func(t *testing.T) {
		donation := createTestDonation(t)
		require.NoError(t, donation.Reserve(uuid.New()))
		require.NoError(t, donation.MarkFulfilled())

		err := donation.MarkFulfilled()
		require.Error(t, err)
	})
}

func TestDonation_Expire(t *testing.T) {
	t.Run("expires available donation and raises event", func(t *testing.T) {
		donation := createTestDonation(t)
		donation.ClearDomainEvents()

		err := donation.Expire()
		require.NoError(t, err)
		assert.Equal(t, DonationStatusExpired, donation.Status)

		events := donation.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDonationExpired, events[0].EventType())
	})

	t.Run("rejects expiring reserved donation", func(t *testing.T) {
		donation := createTestDonation(t)
		require.NoError(t, donation.Reserve(uuid.New()))

		err := donation.Expire()
		require.Error(t, err)
	})
}

func TestDonation_UpdateDetails(t *testing.T) {
	t.Run("updates only supplied fields", func(t *testing.T) {
		donation := createTestDonation(t)
		newTitle := "Wheat bags"
		newCategory := CategoryOther

		err := donation.UpdateDetails(&newCategory, &newTitle, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "Wheat bags", donation.Title)
		assert.Equal(t, CategoryOther, donation.Category)
		assert.Equal(t, "Ten bags of rice", donation.Description)
		assert.Equal(t, "10 bags", donation.Quantity)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		donation := createTestDonation(t)
		empty := ""
		err := donation.UpdateDetails(nil, &empty, nil, nil)
		require.Error(t, err)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		donation := createTestDonation(t)
		bad := Category("toys")
		err := donation.UpdateDetails(&bad, nil, nil, nil)
		require.Error(t, err)
	})
}

func TestDonation_SetPickupSchedule(t *testing.T) {
	t.Run("defaults empty mode to pickup", func(t *testing.T) {
		donation := createTestDonation(t)
		date := time.Now().Add(48 * time.Hour)

		err := donation.SetPickupSchedule(PickupSchedule{Date: &date, TimeSlot: "morning"})
		require.NoError(t, err)
		assert.Equal(t, PickupModePickup, donation.PickupSchedule.Mode)
		assert.Equal(t, "morning", donation.PickupSchedule.TimeSlot)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		donation := createTestDonation(t)
		err := donation.SetPickupSchedule(PickupSchedule{Mode: PickupMode("courier")})
		require.Error(t, err)
	})
}

func TestDonation_CanDelete(t *testing.T) {
	donation := createTestDonation(t)
	assert.True(t, donation.CanDelete())

	require.NoError(t, donation.Reserve(uuid.New()))
	assert.False(t, donation.CanDelete())

	require.NoError(t, donation.MarkFulfilled())
	assert.False(t, donation.CanDelete())
}

func TestGeoPoint_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		point   GeoPoint
		isValid bool
	}{
		{"valid", GeoPoint{Longitude: 76.3869, Latitude: 30.3398}, true},
		{"zero", GeoPoint{}, true},
		{"longitude too big", GeoPoint{Longitude: 181, Latitude: 0}, false},
		{"longitude too small", GeoPoint{Longitude: -181, Latitude: 0}, false},
		{"latitude too big", GeoPoint{Longitude: 0, Latitude: 91}, false},
		{"latitude too small", GeoPoint{Longitude: 0, Latitude: -91}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.point.IsValid())
		})
	}
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	patiala := GeoPoint{Longitude: 76.3869, Latitude: 30.3398}
	delhi := GeoPoint{Longitude: 77.2090, Latitude: 28.6139}

	assert.Zero(t, patiala.DistanceMeters(patiala))

	d := patiala.DistanceMeters(delhi)
	assert.InDelta(t, 209000, d, 5000)
	assert.InDelta(t, d, delhi.DistanceMeters(patiala), 0.001)
}
