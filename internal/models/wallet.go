package models

import "time"

// Transaction types.
const (
	TxTypeTopup    = "topup"
	TxTypePurchase = "purchase"
)

// Transaction statuses.
const (
	TxStatusCompleted = "completed"
)

// Wallet holds a user's spendable balance in cents.
// The balance is a cached running total; the transaction log is the source
// of truth and the two are only ever mutated together in one DB transaction.
type Wallet struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"uniqueIndex;not null"`
	BalanceCent int64 `gorm:"not null;default:0"` // never negative
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WalletTransaction is one append-only ledger entry. Amounts are signed:
// topups positive, purchases negative. Rows are never updated or deleted;
// corrections would be new offsetting entries.
type WalletTransaction struct {
	ID          uint   `gorm:"primaryKey"`
	WalletID    uint   `gorm:"index;not null"`
	Type        string `gorm:"size:16;index;not null"` // topup / purchase
	AmountCent  int64  `gorm:"not null"`
	Description string `gorm:"size:255"`
	Status      string `gorm:"size:16;not null"`
	CreatedAt   time.Time
}
