package payroll

import (
	"math"
	"strconv"
	"strings"
)

// ValidateBonus accepts zero and any positive amount up to MaxMoney.
func ValidateBonus(bonus float64) error {
	if math.IsNaN(bonus) || math.IsInf(bonus, 0) {
		return &ValidationError{Field: "bonus", Value: strconv.FormatFloat(bonus, 'f', -1, 64), Err: ErrBonusNotNumber}
	}
	if bonus < 0 {
		return &ValidationError{Field: "bonus", Value: strconv.FormatFloat(bonus, 'f', -1, 64), Err: ErrNegativeBonus}
	}
	if bonus > MaxMoney {
		return &ValidationError{Field: "bonus", Value: strconv.FormatFloat(bonus, 'f', -1, 64), Err: ErrAmountTooLarge}
	}
	return nil
}

// ParseBonus parses a bonus typed by a person. A decimal comma is accepted.
func ParseBonus(raw string) (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	bonus, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ValidationError{Field: "bonus", Value: raw, Err: ErrBonusNotNumber}
	}
	if err := ValidateBonus(bonus); err != nil {
		return 0, err
	}
	return bonus, nil
}
