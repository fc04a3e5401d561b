package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer carries the wallet balance. The balance is only ever mutated
// inside the same transaction as the booking it pays for, and debits are
// rejected rather than clamped.
type Customer struct {
	Base
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	WalletBalance int64  `db:"wallet_balance" json:"wallet_balance"`
}

type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// WalletTransaction is one ledger row per wallet movement.
type WalletTransaction struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	CustomerID uuid.UUID         `db:"customer_id" json:"customer_id"`
	BookingID  *uuid.UUID        `db:"booking_id" json:"booking_id,omitempty"`
	Amount     int64             `db:"amount" json:"amount"`
	Type       TransactionType   `db:"type" json:"type"`
	Status     TransactionStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}
