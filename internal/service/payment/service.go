package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service/settlement"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Service struct {
	gateway    Gateway
	bookings   repository.BookingRepository
	settlement *settlement.Service
}

func NewService(gateway Gateway, bookings repository.BookingRepository, settlementSvc *settlement.Service) *Service {
	return &Service{
		gateway:    gateway,
		bookings:   bookings,
		settlement: settlementSvc,
	}
}

// Order is what the client needs to drive the gateway's checkout flow.
type Order struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

// InitiatePayment creates a remote order for the booking's snapshot price
// and records the order id for later verification.
func (s *Service) InitiatePayment(ctx context.Context, principal model.Principal, bookingID uuid.UUID) (*Order, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != principal.ID {
		return nil, apperrors.Forbidden("booking does not belong to this account")
	}
	if booking.PaymentStatus == model.PaymentStatusPaid {
		return nil, apperrors.Conflict(apperrors.ReasonInvalidTransition,
			"booking is already paid", nil)
	}

	orderID, err := s.gateway.CreateOrder(ctx, booking.Price, booking.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	if err := s.bookings.SetGatewayOrder(ctx, bookingID, orderID); err != nil {
		return nil, fmt.Errorf("failed to record gateway order: %w", err)
	}

	return &Order{OrderID: orderID, Amount: booking.Price}, nil
}

type ConfirmPaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	OrderID   string    `json:"order_id" binding:"required"`
	PaymentID string    `json:"payment_id" binding:"required"`
	Signature string    `json:"signature" binding:"required"`
}

// ConfirmPayment verifies the gateway callback signature and, only then,
// hands the booking to settlement.
func (s *Service) ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.GatewayOrderID == nil || *booking.GatewayOrderID != req.OrderID {
		return nil, apperrors.PaymentVerification("order does not match booking")
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, apperrors.PaymentVerification("payment signature mismatch")
	}

	return s.settlement.SettlePayment(ctx, req.BookingID)
}

func (s *Service) getBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}
