package models

import "time"

// Product represents a catalog item.
// Prices are stored in cents to avoid float error, e.g. 12.34 = 1234.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;index;not null"`
	Description string `gorm:"type:text"`
	PriceCent   int64  `gorm:"not null"`
	Category    string `gorm:"size:64;index"`
	Stock       int    `gorm:"not null;default:0"` // never negative; decremented conditionally
	ImageURL    string `gorm:"size:255"`
	IsActive    bool   `gorm:"index;not null;default:true"` // soft-delete marker
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
