package util

import "testing"

func TestValidateAmountCents_Positive(t *testing.T) {
	testCases := []int64{1, 100, 10050, 999999999}

	for _, cents := range testCases {
		if err := ValidateAmountCents(cents); err != nil {
			t.Errorf("ValidateAmountCents(%d) error = %v, want nil", cents, err)
		}
	}
}

func TestValidateAmountCents_Invalid(t *testing.T) {
	testCases := []int64{0, -1, -10000, 1000000000, 2000000000}

	for _, cents := range testCases {
		if err := ValidateAmountCents(cents); err == nil {
			t.Errorf("ValidateAmountCents(%d) error = nil, want error", cents)
		}
	}
}

func TestValidateQuantity(t *testing.T) {
	for _, qty := range []int{1, 2, 10, 1000} {
		if err := ValidateQuantity(qty); err != nil {
			t.Errorf("ValidateQuantity(%d) error = %v, want nil", qty, err)
		}
	}
	for _, qty := range []int{0, -1, 1001} {
		if err := ValidateQuantity(qty); err == nil {
			t.Errorf("ValidateQuantity(%d) error = nil, want error", qty)
		}
	}
}

func TestRequireField(t *testing.T) {
	if err := RequireField("shipping name", "Alice"); err != nil {
		t.Errorf("RequireField with value error = %v, want nil", err)
	}

	for _, v := range []string{"", "   ", "\t\n"} {
		err := RequireField("shipping name", v)
		if err == nil {
			t.Errorf("RequireField(%q) error = nil, want error", v)
			continue
		}
		if err.Error() != "shipping name is required" {
			t.Errorf("RequireField(%q) message = %q", v, err.Error())
		}
	}
}
