package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"schooladmin/internal/domain/payroll"
)

// ErrNoInput is returned when input ends before a valid value was entered.
var ErrNoInput = errors.New("no valid input before end of input")

// PromptBonus asks for a bonus until a non-negative number is entered.
func PromptBonus(in io.Reader, out io.Writer) (float64, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Bonus amount for every employee: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			fmt.Fprintln(out)
			return 0, ErrNoInput
		}
		bonus, err := payroll.ParseBonus(scanner.Text())
		if err == nil {
			return bonus, nil
		}
		var vErr *payroll.ValidationError
		if !errors.As(err, &vErr) {
			return 0, err
		}
		switch {
		case errors.Is(err, payroll.ErrNegativeBonus):
			fmt.Fprintln(out, "The bonus cannot be negative, try again.")
		case errors.Is(err, payroll.ErrAmountTooLarge):
			fmt.Fprintln(out, "The bonus is too large, try again.")
		default:
			fmt.Fprintf(out, "%q is not a number, try again.\n", strings.TrimSpace(scanner.Text()))
		}
	}
}

// Confirm asks a yes/no question. Anything but y/yes (or the Ukrainian "т"/"так") is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes", "т", "так":
		return true, nil
	}
	return false, nil
}
