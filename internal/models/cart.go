package models

import "time"

// CartItem is one line of a user's server-side cart.
// OwnerID is the cart owner key ("u:<id>" for logged-in users); guest carts
// live in memory and never reach this table.
// The cart keeps no price snapshot: prices are re-read from Product at checkout.
type CartItem struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerID   string `gorm:"size:64;index;not null"`
	ProductID uint   `gorm:"index;not null"`
	Quantity  int    `gorm:"not null"` // always >= 1
	CreatedAt time.Time
	UpdatedAt time.Time
}
