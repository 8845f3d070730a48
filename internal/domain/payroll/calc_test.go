package payroll

import (
	"errors"
	"testing"
)

func TestComputeSalary(t *testing.T) {
	cases := []struct {
		name string
		emp  Employee
		want float64
	}{
		{"teacher", NewTeacher("Бова С.М.", 12000, 15), 6000},
		{"director", NewDirector("Шевченко Л.В.", 15000, 25, 10), 12500},
		{"guard", NewGuard("Стороженко Р.Р.", 11000, 5), 12250},
		{"teacher rounding", NewTeacher("Дрібна Т.М.", 12000, 8), 3200},
		{"teacher thirds", NewTeacher("X", 1000, 1), 33.33},
		{"guard no experience", NewGuard("Y", 9000, 0), 9000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeSalary(tc.emp, Policy{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// Two variants of the teacher formula disagree on zero experience; the direct
// formula is the default and the base-salary clamp is opt-in.
func TestComputeSalaryTeacherZeroExperience(t *testing.T) {
	teacher := NewTeacher("Новенька", 12000, 0)

	got, err := ComputeSalary(teacher, Policy{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 with the direct formula, got %v", got)
	}

	got, err = ComputeSalary(teacher, Policy{TeacherZeroExperienceBase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12000 {
		t.Fatalf("expected base salary with clamp enabled, got %v", got)
	}
}

func TestComputeSalaryUnknownRole(t *testing.T) {
	_, err := ComputeSalary(Employee{Role: "janitor", BaseSalary: 100}, Policy{})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestApplyBonusDoesNotMutateSalary(t *testing.T) {
	salary := 6000.0
	emp := NewTeacher("Бова С.М.", 12000, 15)
	emp.Salary = &salary

	first, err := ApplyBonus(emp, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ApplyBonus(emp, 1250.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 6500 || second != 7250.5 {
		t.Fatalf("unexpected totals %v/%v", first, second)
	}
	if *emp.Salary != 6000 {
		t.Fatalf("expected stored salary to stay 6000, got %v", *emp.Salary)
	}
}

func TestApplyBonusRequiresComputedSalary(t *testing.T) {
	_, err := ApplyBonus(NewGuard("Y", 1, 1), 10)
	if !errors.Is(err, ErrSalaryNotComputed) {
		t.Fatalf("expected ErrSalaryNotComputed, got %v", err)
	}
}

func TestValidateBonus(t *testing.T) {
	if err := ValidateBonus(-0.01); !errors.Is(err, ErrNegativeBonus) {
		t.Fatalf("expected -0.01 to be rejected, got %v", err)
	}
	for _, ok := range []float64{0, 0.01, 1000} {
		if err := ValidateBonus(ok); err != nil {
			t.Fatalf("expected %v to be accepted, got %v", ok, err)
		}
	}
}

func TestParseBonus(t *testing.T) {
	got, err := ParseBonus(" 250,75 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 250.75 {
		t.Fatalf("expected 250.75, got %v", got)
	}

	for _, raw := range []string{"abc", "", "NaN", "-5"} {
		_, err := ParseBonus(raw)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError for %q, got %v", raw, err)
		}
		if vErr.Field != "bonus" {
			t.Fatalf("unexpected field %q", vErr.Field)
		}
	}
}

func TestValidateBonusRejectsAmountsAboveMaxMoney(t *testing.T) {
	if err := ValidateBonus(MaxMoney); err != nil {
		t.Fatalf("expected MaxMoney to be accepted, got %v", err)
	}
	for _, bonus := range []float64{MaxMoney + 1, 1e307} {
		err := ValidateBonus(bonus)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || !errors.Is(err, ErrAmountTooLarge) {
			t.Fatalf("expected ErrAmountTooLarge ValidationError for %v, got %v", bonus, err)
		}
	}
}

func TestApplyBonusRejectsNonFiniteTotal(t *testing.T) {
	salary := 1e307
	emp := NewGuard("Y", 1, 1)
	emp.Salary = &salary
	if _, err := ApplyBonus(emp, 0); !errors.Is(err, ErrAmountNotFinite) {
		t.Fatalf("expected ErrAmountNotFinite, got %v", err)
	}
}
