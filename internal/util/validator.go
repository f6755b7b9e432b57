package util

import (
	"fmt"
	"strconv"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
)

// ValidateAmount checks a rupee amount (must be positive, sane upper bound).
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 { // one crore cap
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateHomeNo checks the unit code against the fixed set.
func ValidateHomeNo(homeNo string) error {
	if homeNo == "" {
		return fmt.Errorf("homeNo is empty")
	}
	if !models.ValidHomeNo(homeNo) {
		return fmt.Errorf("unknown homeNo %q", homeNo)
	}
	return nil
}

// ValidateMonth checks a full English month name, e.g. "January".
func ValidateMonth(month string) error {
	if month == "" {
		return fmt.Errorf("month is empty")
	}
	if !models.ValidMonth(month) {
		return fmt.Errorf("invalid month %q", month)
	}
	return nil
}

// ValidateYear checks a plausible 4-digit year.
func ValidateYear(year int) error {
	if year < 2000 || year > 2100 {
		return fmt.Errorf("invalid year %d", year)
	}
	return nil
}

// RupeesToPaise converts a rupee amount to paise, rounding to the paisa.
func RupeesToPaise(amount float64) int64 {
	if amount < 0 {
		return -RupeesToPaise(-amount)
	}
	return int64(amount*100 + 0.5)
}

// FormatPaise renders paise as a rupee string with two decimals.
func FormatPaise(paise int64) string {
	return strconv.FormatFloat(float64(paise)/100.0, 'f', 2, 64)
}
