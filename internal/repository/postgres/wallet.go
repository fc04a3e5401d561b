package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *walletRepository) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, name, email, phone, wallet_balance, created_at, updated_at
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *walletRepository) BalanceForUpdate(ctx context.Context, tx *sqlx.Tx, customerID uuid.UUID) (int64, error) {
	query := `
		SELECT wallet_balance
		FROM customers
		WHERE id = $1
		FOR UPDATE
	`
	var balance int64
	err := tx.GetContext(ctx, &balance, query, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return balance, nil
}

// Debit keeps the non-negative balance invariant in the statement itself;
// a stale read cannot push the balance below zero.
func (r *walletRepository) Debit(ctx context.Context, tx *sqlx.Tx, customerID uuid.UUID, amount int64) error {
	query := `
		UPDATE customers
		SET wallet_balance = wallet_balance - $1, updated_at = $2
		WHERE id = $3 AND wallet_balance >= $1
	`
	result, err := tx.ExecContext(ctx, query, amount, time.Now(), customerID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("insufficient wallet balance")
	}
	return nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *sqlx.Tx, txn *model.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (
			id, customer_id, booking_id, amount, type, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	txn.ID = uuid.New()
	txn.CreatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		txn.ID,
		txn.CustomerID,
		txn.BookingID,
		txn.Amount,
		txn.Type,
		txn.Status,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}
