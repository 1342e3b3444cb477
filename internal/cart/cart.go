// Package cart abstracts where a shopping cart lives. Logged-in users get a
// database-backed cart; guests get an in-memory cart keyed by a device token.
// Callers (including checkout) depend only on Store, never on the location.
package cart

import "gorm.io/gorm"

// Line is one cart line. Quantity is always >= 1; product data (price, name,
// stock) is deliberately absent and must be resolved from the catalog when
// the cart is read or checked out.
type Line struct {
	ProductID uint
	Quantity  int
}

// Store is the capability interface over a cart owner's lines.
// owner is an opaque key: "u:<id>" for users, a random token for guests.
type Store interface {
	Items(owner string) ([]Line, error)
	// Add inserts a line or bumps the quantity of an existing one.
	Add(owner string, productID uint, quantity int) error
	// Update replaces the quantity of an existing line.
	Update(owner string, productID uint, quantity int) error
	Remove(owner string, productID uint) error
	Clear(owner string) error
}

// TxJoiner is implemented by stores that can participate in a database
// transaction, so checkout can clear the cart in the same atomic commit.
type TxJoiner interface {
	WithTx(tx *gorm.DB) Store
}
