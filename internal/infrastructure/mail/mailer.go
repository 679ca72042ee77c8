package mail

import (
	"context"
	"fmt"
	"strings"

	notifapp "github.com/weshare/backend/internal/application/notification"
	"github.com/weshare/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends workflow emails over SMTP using gomail.
// Delivery is best effort; callers decide whether a failure matters.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer from SMTP configuration
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendRequestApproved notifies a receiver that the donor approved their request
func (m *SMTPMailer) SendRequestApproved(ctx context.Context, to, receiverName, donorName, donationTitle string, pickup notifapp.PickupDetails) error {
	subject := "Your Donation Request Has Been Approved!"
	body := requestApprovedBody(receiverName, donorName, donationTitle, pickup)
	return m.send(ctx, to, subject, body)
}

// SendRequestFulfilled asks a receiver to rate a completed donation
func (m *SMTPMailer) SendRequestFulfilled(ctx context.Context, to, receiverName, donationTitle, donorName string) error {
	subject := "Donation Fulfilled - Please Rate Your Experience!"
	body := requestFulfilledBody(receiverName, donationTitle, donorName)
	return m.send(ctx, to, subject, body)
}

// SendDonationFulfilled thanks a donor for a completed donation
func (m *SMTPMailer) SendDonationFulfilled(ctx context.Context, to, donorName, donationTitle, receiverName string) error {
	subject := "Donation Fulfilled - You Made a Difference!"
	body := donationFulfilledBody(donorName, donationTitle, receiverName)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("email delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

func requestApprovedBody(receiverName, donorName, donationTitle string, pickup notifapp.PickupDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great News, %s!\n\n", receiverName)
	fmt.Fprintf(&b, "%s has approved your request for: %s\n\n", donorName, donationTitle)

	if pickup.Mode == "pickup" {
		b.WriteString("Pickup Type: You pick up from donor\n")
	} else {
		b.WriteString("Pickup Type: Donor will drop off\n")
	}
	fmt.Fprintf(&b, "Date: %s\n", pickup.Date)
	fmt.Fprintf(&b, "Time: %s\n", pickup.TimeSlot)
	if pickup.Address != "" {
		fmt.Fprintf(&b, "Location: %s\n", pickup.Address)
	}

	b.WriteString("\nPlease coordinate with the donor to finalize the details.\n\n")
	b.WriteString("Best regards,\nThe WeShare Team\n")
	return b.String()
}

func requestFulfilledBody(receiverName, donationTitle, donorName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Congratulations, %s!\n\n", receiverName)
	fmt.Fprintf(&b, "Your donation request for %q has been marked as fulfilled by %s.\n\n", donationTitle, donorName)
	fmt.Fprintf(&b, "Please take a moment to rate your experience with %s. Your feedback helps build trust in our community.\n\n", donorName)
	b.WriteString("Thank you for being part of the WeShare community!\n\n")
	b.WriteString("Best regards,\nThe WeShare Team\n")
	return b.String()
}

func donationFulfilledBody(donorName, donationTitle, receiverName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank You, %s!\n\n", donorName)
	fmt.Fprintf(&b, "Your donation %q has been successfully fulfilled and delivered to %s.\n\n", donationTitle, receiverName)
	b.WriteString("You've helped someone in need and made our community stronger.\n\n")
	b.WriteString("Keep up the great work! Every donation counts.\n\n")
	b.WriteString("Best regards,\nThe WeShare Team\n")
	return b.String()
}

var _ notifapp.Mailer = (*SMTPMailer)(nil)
