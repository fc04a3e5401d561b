package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service/event"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

type Service struct {
	bookings   repository.BookingRepository
	businesses repository.BusinessRepository
	payouts    repository.PayoutRepository
	wallets    repository.WalletRepository
	events     *event.Service
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewService(
	bookings repository.BookingRepository,
	businesses repository.BusinessRepository,
	payouts repository.PayoutRepository,
	wallets repository.WalletRepository,
	events *event.Service,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bookings:   bookings,
		businesses: businesses,
		payouts:    payouts,
		wallets:    wallets,
		events:     events,
		logger:     log,
		metrics:    m,
	}
}

// SettlePayment stamps the commission split onto a booking once payment is
// confirmed. The business's current commission rate applies; later rate
// changes never reprice settled bookings. Settling an already-paid booking
// is a no-op.
func (s *Service) SettlePayment(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == model.PaymentStatusPaid {
		return booking, nil
	}

	if err := s.settle(ctx, nil, booking); err != nil {
		return nil, err
	}

	settled, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.events.Emit(ctx, model.EventBookingSettled, settled); err != nil {
		s.logger.Error(err, "failed to emit settlement event", "booking_id", bookingID.String())
	}
	return settled, nil
}

// settle performs the split and the guarded update, joining tx when given.
func (s *Service) settle(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	business, err := s.businesses.Get(ctx, booking.BusinessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("business", err)
		}
		return fmt.Errorf("failed to load business: %w", err)
	}

	commission, earnings := ComputeSplit(booking.Price, business.CommissionRate)

	var q sqlx.ExtContext
	if tx != nil {
		q = tx
	}
	stamped, err := s.bookings.Settle(ctx, q, booking.ID, commission, earnings)
	if err != nil {
		return err
	}
	if !stamped {
		// lost a race against a concurrent settlement; the first one stands
		return apperrors.Conflict(apperrors.ReasonInvalidTransition,
			"booking is already settled", nil)
	}

	if s.metrics != nil {
		s.metrics.SettlementsCompleted.Inc()
		s.metrics.SettledAmount.Add(float64(booking.Price))
	}
	return nil
}

// PayWithWallet settles a booking from the customer's wallet balance in a
// single transaction: lock, balance check, debit, settle, ledger row. Any
// failure rolls back the lot; the wallet is never debited without the
// booking being settled.
func (s *Service) PayWithWallet(ctx context.Context, bookingID, customerID uuid.UUID) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperrors.Forbidden("booking does not belong to this account")
	}
	if booking.PaymentStatus == model.PaymentStatusPaid {
		return booking, nil
	}

	err = s.bookings.WithTx(ctx, func(tx *sqlx.Tx) error {
		balance, err := s.wallets.BalanceForUpdate(ctx, tx, customerID)
		if err != nil {
			return fmt.Errorf("failed to read wallet: %w", err)
		}
		if balance < booking.Price {
			s.recordWalletDebit("insufficient_funds")
			return apperrors.InsufficientFunds(
				fmt.Sprintf("wallet balance %d is below booking price %d", balance, booking.Price))
		}

		if err := s.wallets.Debit(ctx, tx, customerID, booking.Price); err != nil {
			return fmt.Errorf("failed to debit wallet: %w", err)
		}

		if err := s.settle(ctx, tx, booking); err != nil {
			return err
		}

		return s.wallets.CreateTransaction(ctx, tx, &model.WalletTransaction{
			CustomerID: customerID,
			BookingID:  &booking.ID,
			Amount:     booking.Price,
			Type:       model.TransactionTypeDebit,
			Status:     model.TransactionStatusSuccess,
		})
	})
	if err != nil {
		return nil, err
	}
	s.recordWalletDebit("success")

	settled, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.events.Emit(ctx, model.EventBookingSettled, settled); err != nil {
		s.logger.Error(err, "failed to emit settlement event", "booking_id", bookingID.String())
	}
	return settled, nil
}

// RequestPayout creates a pending payout after checking it fits inside the
// business's available balance: settled earnings minus processed and
// already-pending payouts. The balance read and the insert run in one
// transaction under a lock on the business row, so two concurrent requests
// cannot both spend the same balance.
func (s *Service) RequestPayout(ctx context.Context, vendorID, businessID uuid.UUID, amount int64) (*model.Payout, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("payout amount must be positive", nil)
	}

	business, err := s.businesses.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if business.VendorID != vendorID {
		return nil, apperrors.Forbidden("business does not belong to this account")
	}

	payout := &model.Payout{
		VendorID:   vendorID,
		BusinessID: businessID,
		Amount:     amount,
		Status:     model.PayoutStatusPending,
	}
	err = s.bookings.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.businesses.GetForUpdate(ctx, tx, businessID); err != nil {
			return err
		}

		totals, err := s.payouts.Totals(ctx, tx, businessID)
		if err != nil {
			return fmt.Errorf("failed to compute payout totals: %w", err)
		}
		if available := totals.AvailableBalance(); amount > available {
			s.recordPayout("rejected")
			return apperrors.InsufficientFunds(
				fmt.Sprintf("requested %d exceeds available balance %d", amount, available))
		}

		return s.payouts.Create(ctx, tx, payout)
	})
	if err != nil {
		return nil, err
	}
	s.recordPayout("accepted")

	if err := s.events.Emit(ctx, model.EventPayoutRequested, payout); err != nil {
		s.logger.Error(err, "failed to emit payout event", "payout_id", payout.ID.String())
	}
	return payout, nil
}

// Balance reports the ledger position for one business.
func (s *Service) Balance(ctx context.Context, vendorID, businessID uuid.UUID) (*model.PayoutTotals, error) {
	business, err := s.businesses.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if business.VendorID != vendorID {
		return nil, apperrors.Forbidden("business does not belong to this account")
	}
	return s.payouts.Totals(ctx, nil, businessID)
}

func (s *Service) ListPayouts(ctx context.Context, vendorID uuid.UUID) ([]*model.Payout, error) {
	payouts, err := s.payouts.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func (s *Service) recordWalletDebit(status string) {
	if s.metrics != nil {
		s.metrics.WalletDebits.WithLabelValues(status).Inc()
	}
}

func (s *Service) recordPayout(status string) {
	if s.metrics != nil {
		s.metrics.PayoutRequests.WithLabelValues(status).Inc()
	}
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
