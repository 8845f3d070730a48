package export

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

// Money formats currency cells with two decimals.
type Money float64

func (m Money) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(m), 'f', 2, 64), nil
}

func (m *Money) UnmarshalCSV(raw string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return err
	}
	*m = Money(value)
	return nil
}

// PayrollRecord is one line of the payroll file. Experience columns a role does
// not own are left empty.
type PayrollRecord struct {
	Role                 payroll.Role `csv:"role"`
	Name                 string       `csv:"name"`
	BaseSalary           Money        `csv:"base_salary"`
	TeachingExperience   *int         `csv:"teaching_experience,omitempty"`
	ManagementExperience *int         `csv:"management_experience,omitempty"`
	GeneralExperience    *int         `csv:"general_experience,omitempty"`
	Salary               Money        `csv:"salary"`
	Bonus                Money        `csv:"bonus"`
	Total                Money        `csv:"total"`
}

func payrollRecords(rows []payroll.Row) []PayrollRecord {
	records := make([]PayrollRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, PayrollRecord{
			Role:                 row.Role,
			Name:                 row.Name,
			BaseSalary:           Money(row.BaseSalary),
			TeachingExperience:   row.TeachingExperience,
			ManagementExperience: row.ManagementExperience,
			GeneralExperience:    row.GeneralExperience,
			Salary:               Money(row.Salary),
			Bonus:                Money(row.Bonus),
			Total:                Money(row.Total),
		})
	}
	return records
}

// WritePayrollCSV writes the payroll snapshot in roster order.
func WritePayrollCSV(out io.Writer, rows []payroll.Row) error {
	records := payrollRecords(rows)
	return gocsv.Marshal(&records, out)
}

// ReadPayrollCSV parses a file written by WritePayrollCSV back into rows.
func ReadPayrollCSV(in io.Reader) ([]payroll.Row, error) {
	var records []PayrollRecord
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, err
	}
	rows := make([]payroll.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, payroll.Row{
			Role:                 rec.Role,
			Position:             rec.Role.Label(),
			Name:                 rec.Name,
			BaseSalary:           float64(rec.BaseSalary),
			TeachingExperience:   rec.TeachingExperience,
			ManagementExperience: rec.ManagementExperience,
			GeneralExperience:    rec.GeneralExperience,
			Salary:               float64(rec.Salary),
			Bonus:                float64(rec.Bonus),
			Total:                float64(rec.Total),
		})
	}
	return rows, nil
}

// SavePayrollCSV overwrites path with the payroll snapshot.
func SavePayrollCSV(path string, rows []payroll.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	records := payrollRecords(rows)
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type classRecord struct {
	Name         string `csv:"class"`
	Grade        int    `csv:"grade"`
	Section      string `csv:"section"`
	StudentCount int    `csv:"student_count"`
	AverageGrade Money  `csv:"average_grade"`
}

type studentRecord struct {
	ClassName    string `csv:"class"`
	Grade        int    `csv:"grade"`
	Section      string `csv:"section"`
	LastName     string `csv:"last_name"`
	FirstName    string `csv:"first_name"`
	MiddleName   string `csv:"middle_name"`
	BirthYear    int    `csv:"birth_year"`
	Gender       string `csv:"gender"`
	AverageGrade Money  `csv:"average_grade"`
}

// WriteClassTableCSV writes one line per class.
func WriteClassTableCSV(out io.Writer, rows []roster.ClassTableRow) error {
	records := make([]classRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, classRecord{
			Name:         row.Name,
			Grade:        row.Grade,
			Section:      row.Section,
			StudentCount: row.StudentCount,
			AverageGrade: Money(row.AverageGrade),
		})
	}
	return gocsv.Marshal(&records, out)
}

// WriteStudentTableCSV writes one line per student.
func WriteStudentTableCSV(out io.Writer, rows []roster.StudentTableRow) error {
	records := make([]studentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, studentRecord{
			ClassName:    row.ClassName,
			Grade:        row.Grade,
			Section:      row.Section,
			LastName:     row.LastName,
			FirstName:    row.FirstName,
			MiddleName:   row.Patronymic,
			BirthYear:    row.BirthYear,
			Gender:       string(row.Gender),
			AverageGrade: Money(row.AverageGrade),
		})
	}
	return gocsv.Marshal(&records, out)
}
