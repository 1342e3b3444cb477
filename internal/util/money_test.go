package util

import "testing"

func TestParseCents_Valid(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 100},
		{"0.01", 1},
		{"25.00", 2500},
		{"50.01", 5001},
		{"99999.99", 9999999},
		{" 12.5 ", 1250},
	}

	for _, tc := range testCases {
		got, err := ParseCents(tc.in)
		if err != nil {
			t.Errorf("ParseCents(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCents_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"  ",
		"abc",
		"-1",
		"-0.01",
		"1.999", // more than two decimal places
		"12,50",
		"1e3", // exponent notation is not an amount
		"1.5e1",
		"1E2",
		"0x10",
		"+1",
		"Inf",
		"NaN",
		".",
	}

	for _, in := range testCases {
		if _, err := ParseCents(in); err == nil {
			t.Errorf("ParseCents(%q) error = nil, want error", in)
		}
	}
}

func TestFormatCents(t *testing.T) {
	testCases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{100, "1.00"},
		{8100, "81.00"},
		{-8100, "-81.00"},
		{5001, "50.01"},
	}

	for _, tc := range testCases {
		if got := FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 101, 123456} {
		s := FormatCents(cents)
		got, err := ParseCents(s)
		if err != nil {
			t.Fatalf("ParseCents(FormatCents(%d)) error = %v", cents, err)
		}
		if got != cents {
			t.Errorf("round trip %d -> %q -> %d", cents, s, got)
		}
	}
}
