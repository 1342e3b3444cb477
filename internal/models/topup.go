package models

import "time"

// Top-up request statuses. pending is the only non-terminal state.
const (
	TopupStatusPending  = "pending"
	TopupStatusApproved = "approved"
	TopupStatusRejected = "rejected"
)

// Accepted top-up payment methods.
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodPaypal       = "paypal"
)

// ValidPaymentMethod reports whether m is an accepted top-up payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodPaypal:
		return true
	}
	return false
}

// TopupRequest is a user-submitted funding claim reviewed by an admin.
// Once approved or rejected it can never be processed again; the pending
// status acts as the serialization point for concurrent reviews.
type TopupRequest struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index;not null"`
	AmountCent    int64  `gorm:"not null"` // always > 0
	PaymentMethod string `gorm:"size:32;not null"`
	PaymentProof  string `gorm:"size:255;not null"` // opaque reference, e.g. upload id
	Status        string `gorm:"size:16;index;not null;default:pending"`
	AdminNotes    string `gorm:"size:255"`
	ProcessedBy   *uint  `gorm:"index"` // admin user id
	ProcessedAt   *time.Time
	CreatedAt     time.Time
}
