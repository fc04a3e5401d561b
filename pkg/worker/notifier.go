package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/email"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging"
)

// Notifier consumes booking and payout events off the broker and emails
// the affected party. Delivery is best effort; a failed send is logged
// and dropped.
type Notifier struct {
	broker     messaging.Broker
	emails     email.Service
	customers  repository.WalletRepository
	businesses repository.BusinessRepository
	logger     *logger.Logger
}

func NewNotifier(
	broker messaging.Broker,
	emails email.Service,
	customers repository.WalletRepository,
	businesses repository.BusinessRepository,
	log *logger.Logger,
) *Notifier {
	return &Notifier{
		broker:     broker,
		emails:     emails,
		customers:  customers,
		businesses: businesses,
		logger:     log,
	}
}

var notifierChannels = []string{
	model.EventBookingCreated,
	model.EventBookingStatusChanged,
	model.EventBookingSettled,
	model.EventPayoutRequested,
}

func (n *Notifier) Start(ctx context.Context) error {
	for _, channel := range notifierChannels {
		messages, err := n.broker.Subscribe(ctx, channel)
		if err != nil {
			return err
		}
		go n.consume(ctx, channel, messages)
	}

	n.logger.Info("Notifier started")
	<-ctx.Done()
	n.logger.Info("Notifier shutting down")
	return nil
}

func (n *Notifier) consume(ctx context.Context, eventType string, messages <-chan []byte) {
	for payload := range messages {
		n.handle(ctx, eventType, payload)
	}
}

func (n *Notifier) handle(ctx context.Context, eventType string, payload []byte) {
	if eventType == model.EventPayoutRequested {
		n.handlePayout(ctx, payload)
		return
	}

	var booking model.Booking
	if err := json.Unmarshal(payload, &booking); err != nil {
		n.logger.Error(err, "failed to decode booking event", "event_type", eventType)
		return
	}

	customer, err := n.customers.GetCustomer(ctx, booking.CustomerID)
	if err != nil {
		n.logger.Error(err, "failed to load customer for notification",
			"customer_id", booking.CustomerID.String())
		return
	}
	if customer.Email == "" {
		return
	}

	switch eventType {
	case model.EventBookingCreated:
		err = n.emails.SendBookingConfirmation(ctx, customer.Email, customer.Name,
			booking.Title, booking.Date.Format(model.DateFormat), booking.Time)
	default:
		err = n.emails.SendStatusUpdate(ctx, customer.Email, booking.Title, string(booking.Status))
	}
	if err != nil {
		n.logger.Error(err, "failed to send notification email",
			"event_type", eventType, "booking_id", booking.ID.String())
	}
}

func (n *Notifier) handlePayout(ctx context.Context, payload []byte) {
	var payout model.Payout
	if err := json.Unmarshal(payload, &payout); err != nil {
		n.logger.Error(err, "failed to decode payout event")
		return
	}

	business, err := n.businesses.Get(ctx, payout.BusinessID)
	if err != nil {
		n.logger.Error(err, "failed to load business for payout notification",
			"business_id", payout.BusinessID.String())
		return
	}
	if business.Email == "" {
		return
	}

	body := fmt.Sprintf("A payout of %d for %s has been requested and is pending review.",
		payout.Amount, business.Name)
	if err := n.emails.SendCustom(ctx, business.Email, "Payout requested", body); err != nil {
		n.logger.Error(err, "failed to send payout notification",
			"payout_id", payout.ID.String())
	}
}
