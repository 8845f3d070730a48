package payroll

import (
	"fmt"
	"math"
)

// Policy holds the configurable parts of the salary rules.
type Policy struct {
	// TeacherZeroExperienceBase pays a teacher with no teaching experience the
	// base salary instead of base*0/30. Off by default.
	TeacherZeroExperienceBase bool
}

// ComputeSalary evaluates the role formula for emp, rounded to 2 decimals:
//
//	teacher:  base * teaching / 30
//	director: base * teaching / 50 + management * 500
//	guard:    base + general * 250
func ComputeSalary(emp Employee, policy Policy) (float64, error) {
	var salary float64
	switch emp.Role {
	case RoleTeacher:
		if emp.TeachingExperience == 0 && policy.TeacherZeroExperienceBase {
			salary = emp.BaseSalary
		} else {
			salary = emp.BaseSalary * float64(emp.TeachingExperience) / TeacherExperienceDivisor
		}
	case RoleDirector:
		salary = emp.BaseSalary*float64(emp.TeachingExperience)/DirectorExperienceDivisor +
			float64(emp.ManagementExperience)*DirectorManagementRate
	case RoleGuard:
		salary = emp.BaseSalary + float64(emp.GeneralExperience)*GuardExperienceRate
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, emp.Role)
	}
	return finiteMoney(salary)
}

// ApplyBonus returns the computed salary plus bonus without touching emp.
func ApplyBonus(emp Employee, bonus float64) (float64, error) {
	if emp.Salary == nil {
		return 0, ErrSalaryNotComputed
	}
	if err := ValidateBonus(bonus); err != nil {
		return 0, err
	}
	return finiteMoney(*emp.Salary + bonus)
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func finiteMoney(v float64) (float64, error) {
	rounded := RoundMoney(v)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return 0, ErrAmountNotFinite
	}
	return rounded, nil
}
