package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/salon-api/internal/config"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to, customerName, title, date, timeOfDay string) error
	SendStatusUpdate(ctx context.Context, to, title, status string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, customerName, title, date, timeOfDay string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s at %s is confirmed.\n\nSee you soon!",
		customerName, title, date, timeOfDay)
	return s.send(ctx, to, "Booking confirmed", body)
}

func (s *smtpService) SendStatusUpdate(ctx context.Context, to, title, status string) error {
	body := fmt.Sprintf("Your booking for %s is now %s.", title, status)
	return s.send(ctx, to, "Booking update", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NoopService drops every message. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendBookingConfirmation(context.Context, string, string, string, string, string) error {
	return nil
}
func (NoopService) SendStatusUpdate(context.Context, string, string, string) error { return nil }
func (NoopService) SendCustom(context.Context, string, string, string) error       { return nil }
