package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCents converts a decimal amount string like "25.00" to cents.
// Only plain non-negative decimals are accepted: digits with at most two
// decimal places, no sign and no exponent notation.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount has more than two decimal places: %q", s)
	}
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount: %q", s)
			}
		}
	}

	var cents int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount: %q", s)
		}
		cents = n * 100
	}
	if frac != "" {
		n, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount: %q", s)
		}
		if len(frac) == 1 {
			n *= 10
		}
		cents += n
	}
	return cents, nil
}

// FormatCents renders cents as a two-decimal string, e.g. 8100 -> "81.00".
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}
