package util

import (
	"fmt"
	"strings"
)

// maximum single amount in cents (10 million)
const maxAmountCent = 1_000_000_000

// ValidateAmountCents checks a monetary amount in cents (> 0 and below cap).
func ValidateAmountCents(cents int64) error {
	if cents <= 0 {
		return fmt.Errorf("amount must be positive, got %s", FormatCents(cents))
	}
	if cents >= maxAmountCent {
		return fmt.Errorf("amount too large, got %s", FormatCents(cents))
	}
	return nil
}

// ValidateQuantity checks an order/cart line quantity.
func ValidateQuantity(qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", qty)
	}
	if qty > 1000 {
		return fmt.Errorf("quantity too large, got %d", qty)
	}
	return nil
}

// RequireField checks a required free-text field after trimming.
func RequireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
