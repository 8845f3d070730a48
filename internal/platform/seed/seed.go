package seed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
	"schooladmin/internal/importer"
)

const (
	ClassesFile  = "classes.csv"
	StudentsFile = "students.csv"
	StaffFile    = "staff.yaml"
)

var sections = []string{"А", "Б"}

// Labels used by the school's own spreadsheets.
var genderLabels = map[roster.Gender]string{
	roster.GenderMale:   "Хлопець",
	roster.GenderFemale: "Дівчина",
}

type classLine struct {
	Parallel int    `csv:"parallel"`
	Vertical string `csv:"vertical"`
}

type studentLine struct {
	LastName      string  `csv:"last_name"`
	FirstName     string  `csv:"first_name"`
	MiddleName    string  `csv:"middle_name"`
	BirthYear     int     `csv:"birth_year"`
	Gender        string  `csv:"gender"`
	AverageGrade  float64 `csv:"average_grade"`
	ClassParallel int     `csv:"class_parallel"`
	ClassVertical string  `csv:"class_vertical"`
}

// ClassRows returns every grade from 1 to 11 in sections А and Б.
func ClassRows() []roster.ClassRow {
	rows := make([]roster.ClassRow, 0, roster.MaxGrade*len(sections))
	for grade := roster.MinGrade; grade <= roster.MaxGrade; grade++ {
		for _, section := range sections {
			rows = append(rows, roster.ClassRow{Grade: grade, Section: section})
		}
	}
	return rows
}

func StudentRows() []roster.StudentRow {
	rows := make([]roster.StudentRow, 0, len(sampleStudents))
	for _, s := range sampleStudents {
		rows = append(rows, roster.StudentRow{
			Student: roster.Student{
				LastName:     s.lastName,
				FirstName:    s.firstName,
				Patronymic:   s.patronymic,
				BirthYear:    s.birthYear,
				Gender:       s.gender,
				AverageGrade: s.averageGrade,
			},
			ClassGrade:   s.grade,
			ClassSection: s.section,
		})
	}
	return rows
}

// Write creates dir and overwrites the sample classes, students and staff files in it.
func Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	classes := make([]classLine, 0)
	for _, row := range ClassRows() {
		classes = append(classes, classLine{Parallel: row.Grade, Vertical: row.Section})
	}
	if err := writeCSV(filepath.Join(dir, ClassesFile), &classes); err != nil {
		return err
	}

	students := make([]studentLine, 0, len(sampleStudents))
	for _, row := range StudentRows() {
		students = append(students, studentLine{
			LastName:      row.Student.LastName,
			FirstName:     row.Student.FirstName,
			MiddleName:    row.Student.Patronymic,
			BirthYear:     row.Student.BirthYear,
			Gender:        genderLabels[row.Student.Gender],
			AverageGrade:  row.Student.AverageGrade,
			ClassParallel: row.ClassGrade,
			ClassVertical: row.ClassSection,
		})
	}
	if err := writeCSV(filepath.Join(dir, StudentsFile), &students); err != nil {
		return err
	}

	staffPath := filepath.Join(dir, StaffFile)
	f, err := os.Create(staffPath)
	if err != nil {
		return err
	}
	if err := importer.WriteStaff(f, payroll.DefaultStaff()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", staffPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	slog.Info("sample data written", "dir", dir, "classes", len(classes), "students", len(students))
	return nil
}

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
