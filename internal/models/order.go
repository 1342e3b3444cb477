package models

import "time"

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment fields on orders.
const (
	OrderPaymentWallet = "wallet"
	OrderPaymentPaid   = "paid"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a completed checkout. Items and the
// captured totals never change after creation; only status, tracking number
// and notes are admin-mutable.
type Order struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index;not null"`
	OrderNumber string      `gorm:"size:32;uniqueIndex;not null"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE"`

	SubtotalCent int64 `gorm:"not null"`
	TaxCent      int64 `gorm:"not null"`
	ShippingCent int64 `gorm:"not null"`
	TotalCent    int64 `gorm:"not null"` // subtotal + tax + shipping

	Status        string `gorm:"size:16;index;not null;default:pending"`
	PaymentMethod string `gorm:"size:16;not null"`
	PaymentStatus string `gorm:"size:16;not null"`

	// shipping address snapshot
	ShippingName       string `gorm:"size:128;not null"`
	ShippingAddress    string `gorm:"size:255;not null"`
	ShippingCity       string `gorm:"size:64;not null"`
	ShippingPostalCode string `gorm:"size:16;not null"`
	ShippingPhone      string `gorm:"size:32;not null"`

	TrackingNumber string `gorm:"size:64"`
	Notes          string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem captures one purchased line with the product's name, image and
// unit price at purchase time, decoupled from later catalog edits.
type OrderItem struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"index;not null"`
	ProductID    uint   `gorm:"index;not null"`
	ProductName  string `gorm:"size:128;not null"`
	ProductImage string `gorm:"size:255"`
	PriceCent    int64  `gorm:"not null"` // unit price at purchase time
	Quantity     int    `gorm:"not null"`
}
