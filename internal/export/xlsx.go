package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

const (
	SheetClasses  = "Classes"
	SheetStudents = "Students"
	SheetPayroll  = "Payroll"
)

// Workbook collects the tables written to one XLSX file. Nil tables are skipped;
// at least one table must be set.
type Workbook struct {
	Classes  []roster.ClassTableRow
	Students []roster.StudentTableRow
	Payroll  []payroll.Row
}

func (wb Workbook) Write(out io.Writer) error {
	f, err := wb.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

func (wb Workbook) Save(path string) error {
	f, err := wb.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func (wb Workbook) build() (*excelize.File, error) {
	var sheets []sheet
	if wb.Classes != nil {
		sheets = append(sheets, classSheet(wb.Classes))
	}
	if wb.Students != nil {
		sheets = append(sheets, studentSheet(wb.Students))
	}
	if wb.Payroll != nil {
		sheets = append(sheets, payrollSheet(wb.Payroll))
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no tables")
	}

	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := s.write(f); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

func (s sheet) write(f *excelize.File) error {
	for i, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return err
		}
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func classSheet(rows []roster.ClassTableRow) sheet {
	s := sheet{name: SheetClasses, headers: []string{"Class", "Grade", "Section", "Students", "Average grade"}}
	for _, row := range rows {
		s.rows = append(s.rows, []any{row.Name, row.Grade, row.Section, row.StudentCount, row.AverageGrade})
	}
	return s
}

func studentSheet(rows []roster.StudentTableRow) sheet {
	s := sheet{name: SheetStudents, headers: []string{
		"Class", "Grade", "Section", "Last name", "First name", "Middle name", "Birth year", "Gender", "Average grade",
	}}
	for _, row := range rows {
		s.rows = append(s.rows, []any{
			row.ClassName, row.Grade, row.Section, row.LastName, row.FirstName, row.Patronymic,
			row.BirthYear, string(row.Gender), row.AverageGrade,
		})
	}
	return s
}

func payrollSheet(rows []payroll.Row) sheet {
	s := sheet{name: SheetPayroll, headers: []string{
		"Position", "Name", "Base salary", "Teaching experience", "Management experience",
		"General experience", "Salary", "Bonus", "Total",
	}}
	for _, row := range rows {
		s.rows = append(s.rows, []any{
			row.Position, row.Name, row.BaseSalary,
			optionalInt(row.TeachingExperience), optionalInt(row.ManagementExperience), optionalInt(row.GeneralExperience),
			row.Salary, row.Bonus, row.Total,
		})
	}
	return s
}

// optionalInt leaves the cell blank for experience a role does not own.
func optionalInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
