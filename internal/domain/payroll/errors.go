package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRole        = errors.New("unknown employee role")
	ErrSalaryNotComputed  = errors.New("salary has not been computed")
	ErrNegativeBonus      = errors.New("bonus must not be negative")
	ErrBonusNotNumber     = errors.New("bonus must be a number")
	ErrNegativeBaseSalary = errors.New("base salary must not be negative")
	ErrNegativeExperience = errors.New("experience must not be negative")
	ErrEmployeeOutOfRange = errors.New("employee index out of range")
	ErrAmountTooLarge     = errors.New("amount exceeds the supported maximum")
	ErrAmountNotFinite    = errors.New("amount is not a finite number")
)

// ValidationError reports invalid input that the caller is expected to correct
// and resubmit, such as a negative bonus typed at a prompt.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
