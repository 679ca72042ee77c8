package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	notifapp "github.com/weshare/backend/internal/application/notification"
)

func TestRequestApprovedBody(t *testing.T) {
	pickup := notifapp.PickupDetails{
		Mode:     "pickup",
		Date:     "Sep 5, 2026",
		TimeSlot: "10:00-12:00",
		Address:  "12 MG Road, Patiala",
	}

	body := requestApprovedBody("Asha", "Ravi", "Winter Blankets", pickup)

	assert.Contains(t, body, "Great News, Asha!")
	assert.Contains(t, body, "Ravi has approved your request for: Winter Blankets")
	assert.Contains(t, body, "You pick up from donor")
	assert.Contains(t, body, "Date: Sep 5, 2026")
	assert.Contains(t, body, "Location: 12 MG Road, Patiala")
}

func TestRequestApprovedBody_DropoffWithoutAddress(t *testing.T) {
	pickup := notifapp.PickupDetails{
		Mode:     "dropoff",
		Date:     "Sep 5, 2026",
		TimeSlot: "To be coordinated",
	}

	body := requestApprovedBody("Asha", "Ravi", "Winter Blankets", pickup)

	assert.Contains(t, body, "Donor will drop off")
	assert.NotContains(t, body, "Location:")
}

func TestRequestFulfilledBody(t *testing.T) {
	body := requestFulfilledBody("Asha", "Winter Blankets", "Ravi")

	assert.Contains(t, body, "Congratulations, Asha!")
	assert.Contains(t, body, `"Winter Blankets" has been marked as fulfilled by Ravi`)
	assert.Contains(t, body, "rate your experience with Ravi")
}

func TestDonationFulfilledBody(t *testing.T) {
	body := donationFulfilledBody("Ravi", "Winter Blankets", "Asha")

	assert.Contains(t, body, "Thank You, Ravi!")
	assert.Contains(t, body, `"Winter Blankets" has been successfully fulfilled and delivered to Asha`)
}
