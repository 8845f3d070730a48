package payroll

import (
	"fmt"
	"math"
	"strconv"
)

// Engine keeps employees in the order they were added. It is not safe for
// concurrent use.
type Engine struct {
	policy    Policy
	employees []Employee
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// AddEmployee appends emp to the roster. Duplicate names are allowed.
func (e *Engine) AddEmployee(emp Employee) error {
	if err := validateEmployee(emp); err != nil {
		return err
	}
	emp.Salary = nil
	e.employees = append(e.employees, emp)
	return nil
}

func validateEmployee(emp Employee) error {
	if !emp.Role.Valid() {
		return &ValidationError{Field: "role", Value: string(emp.Role), Err: ErrUnknownRole}
	}
	base := strconv.FormatFloat(emp.BaseSalary, 'f', -1, 64)
	switch {
	case math.IsNaN(emp.BaseSalary) || math.IsInf(emp.BaseSalary, 0):
		return &ValidationError{Field: "baseSalary", Value: base, Err: ErrAmountNotFinite}
	case emp.BaseSalary < 0:
		return &ValidationError{Field: "baseSalary", Value: base, Err: ErrNegativeBaseSalary}
	case emp.BaseSalary > MaxMoney:
		return &ValidationError{Field: "baseSalary", Value: base, Err: ErrAmountTooLarge}
	}
	experience := []struct {
		field string
		value int
	}{
		{"teachingExperience", emp.TeachingExperience},
		{"managementExperience", emp.ManagementExperience},
		{"generalExperience", emp.GeneralExperience},
	}
	for _, exp := range experience {
		if exp.value < 0 {
			return &ValidationError{Field: exp.field, Value: strconv.Itoa(exp.value), Err: ErrNegativeExperience}
		}
	}
	return nil
}

func (e *Engine) Len() int {
	return len(e.employees)
}

// Employees returns a copy of the roster.
func (e *Engine) Employees() []Employee {
	out := make([]Employee, len(e.employees))
	for i, emp := range e.employees {
		out[i] = copyEmployee(emp)
	}
	return out
}

func (e *Engine) Employee(i int) (Employee, error) {
	if i < 0 || i >= len(e.employees) {
		return Employee{}, fmt.Errorf("%w: %d", ErrEmployeeOutOfRange, i)
	}
	return copyEmployee(e.employees[i]), nil
}

func copyEmployee(emp Employee) Employee {
	if emp.Salary != nil {
		salary := *emp.Salary
		emp.Salary = &salary
	}
	return emp
}

// ComputeSalary evaluates and stores the salary of the i-th employee.
func (e *Engine) ComputeSalary(i int) (float64, error) {
	if i < 0 || i >= len(e.employees) {
		return 0, fmt.Errorf("%w: %d", ErrEmployeeOutOfRange, i)
	}
	salary, err := ComputeSalary(e.employees[i], e.policy)
	if err != nil {
		return 0, err
	}
	e.employees[i].Salary = &salary
	return salary, nil
}

// ComputeAll evaluates every employee's salary.
func (e *Engine) ComputeAll() error {
	for i := range e.employees {
		if _, err := e.ComputeSalary(i); err != nil {
			return fmt.Errorf("employee %d (%s): %w", i, e.employees[i].FullName, err)
		}
	}
	return nil
}

// SetBonus sets the per-run bonus of every employee. Stored salaries are left as they are.
func (e *Engine) SetBonus(bonus float64) error {
	if err := ValidateBonus(bonus); err != nil {
		return err
	}
	for i := range e.employees {
		e.employees[i].Bonus = bonus
	}
	return nil
}

// Snapshot projects every employee to a Row in roster order. Salaries not yet
// computed are computed first.
func (e *Engine) Snapshot() ([]Row, error) {
	rows := make([]Row, 0, len(e.employees))
	for i := range e.employees {
		if e.employees[i].Salary == nil {
			if _, err := e.ComputeSalary(i); err != nil {
				return nil, err
			}
		}
		emp := e.employees[i]
		total, err := ApplyBonus(emp, emp.Bonus)
		if err != nil {
			return nil, err
		}
		rows = append(rows, newRow(emp, total))
	}
	return rows, nil
}

func newRow(emp Employee, total float64) Row {
	row := Row{
		Role:       emp.Role,
		Position:   emp.Role.Label(),
		Name:       emp.FullName,
		BaseSalary: emp.BaseSalary,
		Salary:     *emp.Salary,
		Bonus:      emp.Bonus,
		Total:      total,
	}
	switch emp.Role {
	case RoleTeacher:
		row.TeachingExperience = intPtr(emp.TeachingExperience)
	case RoleDirector:
		row.TeachingExperience = intPtr(emp.TeachingExperience)
		row.ManagementExperience = intPtr(emp.ManagementExperience)
	case RoleGuard:
		row.GeneralExperience = intPtr(emp.GeneralExperience)
	}
	return row
}

func intPtr(v int) *int {
	return &v
}

// Summarize totals a snapshot.
func Summarize(rows []Row) Summary {
	summary := Summary{EmployeeCount: len(rows), ByRole: map[Role]float64{}}
	for _, row := range rows {
		summary.TotalSalary += row.Salary
		summary.TotalBonus += row.Bonus
		summary.TotalPayable += row.Total
		summary.ByRole[row.Role] += row.Total
	}
	summary.TotalSalary = RoundMoney(summary.TotalSalary)
	summary.TotalBonus = RoundMoney(summary.TotalBonus)
	summary.TotalPayable = RoundMoney(summary.TotalPayable)
	for role, total := range summary.ByRole {
		summary.ByRole[role] = RoundMoney(total)
	}
	return summary
}

// DefaultStaff is the staff used when no staff file is configured.
func DefaultStaff() []Employee {
	return []Employee{
		NewDirector("Шевченко Лариса Вікторівна", 15000, 25, 10),
		NewTeacher("Бова Сергій Миколайович", 12000, 15),
		NewTeacher("Дрібна Тетяна Михайлівна", 12000, 8),
		NewTeacher("Клунник Ольга Сергіївна", 12000, 2),
		NewGuard("Стороженко Роман Романович", 11000, 5),
	}
}
