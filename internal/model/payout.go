package model

import (
	"github.com/google/uuid"
)

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusProcessed PayoutStatus = "processed"
	PayoutStatusRejected  PayoutStatus = "rejected"
)

// Payout is a vendor's request to withdraw settled earnings. An admin
// action later moves it to processed or rejected.
type Payout struct {
	Base
	VendorID   uuid.UUID    `db:"vendor_id" json:"vendor_id"`
	BusinessID uuid.UUID    `db:"business_id" json:"business_id"`
	Amount     int64        `db:"amount" json:"amount"`
	Status     PayoutStatus `db:"status" json:"status"`
}

// PayoutTotals aggregates a business's ledger position. AvailableBalance
// must never go negative: totalEarnings >= processed + pending always holds.
type PayoutTotals struct {
	TotalEarnings    int64 `db:"total_earnings" json:"total_earnings"`
	ProcessedPayouts int64 `db:"processed_payouts" json:"processed_payouts"`
	PendingPayouts   int64 `db:"pending_payouts" json:"pending_payouts"`
}

func (t PayoutTotals) AvailableBalance() int64 {
	return t.TotalEarnings - t.ProcessedPayouts - t.PendingPayouts
}

type RequestPayoutRequest struct {
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
	Amount     int64     `json:"amount" binding:"required,gt=0"`
}
