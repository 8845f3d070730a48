package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"schooladmin/internal/domain/payroll"
)

const SourceStaff = "staff"

type staffFile struct {
	Employees []staffRecord `yaml:"employees" validate:"dive"`
}

type staffRecord struct {
	Role                 string  `yaml:"role" validate:"required,oneof=teacher director guard"`
	FullName             string  `yaml:"fullName" validate:"required"`
	BaseSalary           float64 `yaml:"baseSalary" validate:"gte=0,lte=1000000000000"`
	TeachingExperience   int     `yaml:"teachingExperience" validate:"gte=0"`
	ManagementExperience int     `yaml:"managementExperience" validate:"gte=0"`
	GeneralExperience    int     `yaml:"generalExperience" validate:"gte=0"`
}

// StaffError reports a malformed staff file.
type StaffError struct {
	Index int
	Field string
	Err   error
}

func (e *StaffError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("staff: %v", e.Err)
	}
	return fmt.Sprintf("staff entry %d field %s: %v", e.Index, e.Field, e.Err)
}

func (e *StaffError) Unwrap() error {
	return e.Err
}

// ReadStaff decodes a YAML staff roster:
//
//	employees:
//	  - role: director
//	    fullName: ...
//	    baseSalary: 15000
//	    teachingExperience: 25
//	    managementExperience: 10
func ReadStaff(in io.Reader) ([]payroll.Employee, error) {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	var file staffFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &StaffError{Err: err}
	}
	employees := make([]payroll.Employee, 0, len(file.Employees))
	for i, rec := range file.Employees {
		if err := validate.Struct(rec); err != nil {
			return nil, staffValidationError(i, err)
		}
		employees = append(employees, payroll.Employee{
			Role:                 payroll.Role(rec.Role),
			FullName:             rec.FullName,
			BaseSalary:           rec.BaseSalary,
			TeachingExperience:   rec.TeachingExperience,
			ManagementExperience: rec.ManagementExperience,
			GeneralExperience:    rec.GeneralExperience,
		})
	}
	return employees, nil
}

// WriteStaff encodes employees in the format ReadStaff accepts.
func WriteStaff(out io.Writer, employees []payroll.Employee) error {
	file := staffFile{Employees: make([]staffRecord, 0, len(employees))}
	for _, emp := range employees {
		file.Employees = append(file.Employees, staffRecord{
			Role:                 string(emp.Role),
			FullName:             emp.FullName,
			BaseSalary:           emp.BaseSalary,
			TeachingExperience:   emp.TeachingExperience,
			ManagementExperience: emp.ManagementExperience,
			GeneralExperience:    emp.GeneralExperience,
		})
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}

// LoadStaff reads the staff file at path. A missing file falls back to the
// default staff.
func LoadStaff(path string) ([]payroll.Employee, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("staff file not found, using default staff", "path", path)
		return payroll.DefaultStaff(), nil
	}
	if err != nil {
		return nil, &StaffError{Err: err}
	}
	defer f.Close()
	return ReadStaff(f)
}

// LoadEngine builds a payroll engine from the staff file at path.
func LoadEngine(path string, policy payroll.Policy) (*payroll.Engine, error) {
	employees, err := LoadStaff(path)
	if err != nil {
		return nil, err
	}
	engine := payroll.NewEngine(policy)
	for i, emp := range employees {
		if err := engine.AddEmployee(emp); err != nil {
			return nil, &StaffError{Index: i, Err: err}
		}
	}
	return engine, nil
}

func staffValidationError(index int, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &StaffError{Index: index, Field: fe.Field(), Err: fmt.Errorf("failed %q", fe.Tag())}
	}
	return &StaffError{Index: index, Err: err}
}
