package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/notification"
	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
	"go.uber.org/zap"
)

// PickupDetails is the hand-over summary included in approval emails
type PickupDetails struct {
	Mode     string
	Date     string
	TimeSlot string
	Address  string
}

// Mailer delivers workflow emails. Implementations must treat delivery as
// best effort; the dispatcher never retries.
type Mailer interface {
	SendRequestApproved(ctx context.Context, to, receiverName, donorName, donationTitle string, pickup PickupDetails) error
	SendRequestFulfilled(ctx context.Context, to, receiverName, donationTitle, donorName string) error
	SendDonationFulfilled(ctx context.Context, to, donorName, donationTitle, receiverName string) error
}

// Dispatcher turns sharing workflow events into in-app notifications and
// best-effort emails. Notification persistence failures are logged and
// swallowed; a failed fan-out never affects the triggering operation.
type Dispatcher struct {
	notificationRepo notification.Repository
	donationRepo     sharing.DonationRepository
	userRepo         identity.UserRepository
	mailer           Mailer
	counter          UnreadCounter
	logger           *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(notificationRepo notification.Repository, donationRepo sharing.DonationRepository, userRepo identity.UserRepository, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notificationRepo: notificationRepo,
		donationRepo:     donationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// SetMailer attaches the email sink
func (d *Dispatcher) SetMailer(mailer Mailer) {
	d.mailer = mailer
}

// SetUnreadCounter attaches the unread-count cache for invalidation
func (d *Dispatcher) SetUnreadCounter(counter UnreadCounter) {
	d.counter = counter
}

// EventTypes returns the event types this handler is interested in
func (d *Dispatcher) EventTypes() []string {
	return []string{
		sharing.EventTypeDonationRequested,
		sharing.EventTypeRequestAccepted,
		sharing.EventTypeDonationFulfilled,
		sharing.EventTypeRequestRated,
	}
}

// Handle routes a workflow event to its fan-out
func (d *Dispatcher) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *sharing.DonationRequestedEvent:
		return d.onDonationRequested(ctx, e)
	case *sharing.RequestAcceptedEvent:
		return d.onRequestAccepted(ctx, e)
	case *sharing.DonationFulfilledEvent:
		return d.onDonationFulfilled(ctx, e)
	case *sharing.RequestRatedEvent:
		return d.onRequestRated(ctx, e)
	default:
		d.logger.Warn("unexpected event type", zap.String("event_type", event.EventType()))
		return nil
	}
}

func (d *Dispatcher) onDonationRequested(ctx context.Context, e *sharing.DonationRequestedEvent) error {
	requester := d.userName(ctx, e.ReceiverID)
	message := fmt.Sprintf("%s has requested your donation: %q", requester, e.DonationTitle)

	return d.deliver(ctx, e.DonorID, e.ReceiverID, notification.TypeRequestMade,
		"New Request for Your Donation", message, e.DonationID, e.RequestID)
}

func (d *Dispatcher) onRequestAccepted(ctx context.Context, e *sharing.RequestAcceptedEvent) error {
	var title, message string
	if e.ViaFulfillment {
		donor := d.userName(ctx, e.DonorID)
		title = "Your Request Has Been Approved!"
		message = fmt.Sprintf("%s will fulfill your request for %q", donor, e.DonationTitle)
	} else {
		title = "Request Accepted"
		message = fmt.Sprintf("Your request for %q has been accepted!", e.DonationTitle)
	}

	if err := d.deliver(ctx, e.ReceiverID, e.DonorID, notification.TypeRequestAccepted,
		title, message, e.DonationID, e.RequestID); err != nil {
		return err
	}

	d.emailRequestApproved(ctx, e)
	return nil
}

func (d *Dispatcher) onDonationFulfilled(ctx context.Context, e *sharing.DonationFulfilledEvent) error {
	message := fmt.Sprintf("The donation %q has been marked as fulfilled. Please rate your experience!", e.DonationTitle)

	if err := d.deliver(ctx, e.ReceiverID, e.DonorID, notification.TypeDonationFulfilled,
		"Donation Fulfilled", message, e.DonationID, e.RequestID); err != nil {
		return err
	}

	d.emailFulfilled(ctx, e)
	return nil
}

func (d *Dispatcher) onRequestRated(ctx context.Context, e *sharing.RequestRatedEvent) error {
	rater := d.userName(ctx, e.ReceiverID)
	message := fmt.Sprintf("%s rated your donation %q with %d stars", rater, e.DonationTitle, e.RatingValue)

	return d.deliver(ctx, e.DonorID, e.ReceiverID, notification.TypeRatingReceived,
		"You Received a Rating", message, e.DonationID, e.RequestID)
}

// deliver persists one notification and invalidates the recipient's cached
// unread count
func (d *Dispatcher) deliver(ctx context.Context, recipientID, senderID uuid.UUID, notifType notification.Type, title, message string, donationID, requestID uuid.UUID) error {
	n, err := notification.New(recipientID, notifType, title, message)
	if err != nil {
		return err
	}
	n.WithSender(senderID).WithDonation(donationID).WithRequest(requestID)

	if err := d.notificationRepo.Save(ctx, n); err != nil {
		d.logger.Error("failed to persist notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", notifType.String()),
			zap.Error(err),
		)
		return err
	}

	if d.counter != nil {
		d.counter.Invalidate(ctx, recipientID)
	}
	return nil
}

func (d *Dispatcher) emailRequestApproved(ctx context.Context, e *sharing.RequestAcceptedEvent) {
	if d.mailer == nil {
		return
	}
	receiver, err := d.userRepo.FindByID(ctx, e.ReceiverID)
	if err != nil {
		d.logEmailSkip("request approved", e.ReceiverID, err)
		return
	}

	donor := d.userName(ctx, e.DonorID)
	pickup := d.pickupDetails(ctx, e.DonationID)

	if err := d.mailer.SendRequestApproved(ctx, receiver.Email, receiver.Name, donor, e.DonationTitle, pickup); err != nil {
		d.logEmailSkip("request approved", e.ReceiverID, err)
	}
}

func (d *Dispatcher) emailFulfilled(ctx context.Context, e *sharing.DonationFulfilledEvent) {
	if d.mailer == nil {
		return
	}

	receiver, recErr := d.userRepo.FindByID(ctx, e.ReceiverID)
	donor, donErr := d.userRepo.FindByID(ctx, e.DonorID)

	receiverName := "a receiver"
	if recErr == nil {
		receiverName = receiver.Name
	}
	donorName := "the donor"
	if donErr == nil {
		donorName = donor.Name
	}

	if recErr == nil {
		if err := d.mailer.SendRequestFulfilled(ctx, receiver.Email, receiver.Name, e.DonationTitle, donorName); err != nil {
			d.logEmailSkip("fulfillment (receiver)", e.ReceiverID, err)
		}
	}
	if donErr == nil {
		if err := d.mailer.SendDonationFulfilled(ctx, donor.Email, donor.Name, e.DonationTitle, receiverName); err != nil {
			d.logEmailSkip("fulfillment (donor)", e.DonorID, err)
		}
	}
}

func (d *Dispatcher) pickupDetails(ctx context.Context, donationID uuid.UUID) PickupDetails {
	details := PickupDetails{Mode: string(sharing.PickupModePickup)}
	donation, err := d.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return details
	}

	details.Mode = string(donation.PickupSchedule.Mode)
	details.TimeSlot = donation.PickupSchedule.TimeSlot
	if donation.PickupSchedule.Date != nil {
		details.Date = donation.PickupSchedule.Date.Format("Jan 2, 2006")
	}
	if !donation.Address.IsZero() {
		details.Address = fmt.Sprintf("%s, %s", donation.Address.Street, donation.Address.City)
	}
	return details
}

func (d *Dispatcher) userName(ctx context.Context, userID uuid.UUID) string {
	user, err := d.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "Someone"
	}
	return user.Name
}

func (d *Dispatcher) logEmailSkip(kind string, userID uuid.UUID, err error) {
	d.logger.Warn("email delivery skipped",
		zap.String("email", kind),
		zap.String("user_id", userID.String()),
		zap.Error(err),
	)
}
