package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"schooladmin/internal/domain/roster"
)

type classRecord struct {
	Parallel string `csv:"parallel" validate:"required,number"`
	Vertical string `csv:"vertical" validate:"required"`
}

type studentRecord struct {
	LastName      string `csv:"last_name" validate:"required"`
	FirstName     string `csv:"first_name" validate:"required"`
	MiddleName    string `csv:"middle_name"`
	BirthYear     string `csv:"birth_year" validate:"required,number"`
	Gender        string `csv:"gender" validate:"required"`
	AverageGrade  string `csv:"average_grade" validate:"required"`
	ClassParallel string `csv:"class_parallel" validate:"omitempty,number"`
	ClassVertical string `csv:"class_vertical"`
	Class         string `csv:"class"`
}

var (
	classColumns   = [][]string{{"parallel"}, {"vertical"}}
	studentColumns = [][]string{
		{"last_name"}, {"first_name"}, {"birth_year"}, {"gender"}, {"average_grade"},
		{"class_parallel+class_vertical", "class"},
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadClasses decodes class rows from CSV with a header line.
func ReadClasses(in io.Reader) ([]roster.ClassRow, error) {
	var records []classRecord
	if err := gocsv.UnmarshalCSV(newHeaderReader(in, roster.SourceClasses, classColumns...), &records); err != nil {
		return nil, asLoadError(roster.SourceClasses, err)
	}
	rows := make([]roster.ClassRow, 0, len(records))
	for i, rec := range records {
		line := i + 2
		if err := validate.Struct(rec); err != nil {
			return nil, validationLoadError(roster.SourceClasses, line, err)
		}
		grade, err := strconv.Atoi(strings.TrimSpace(rec.Parallel))
		if err != nil {
			return nil, fieldError(roster.SourceClasses, line, "parallel", err)
		}
		rows = append(rows, roster.ClassRow{Grade: grade, Section: strings.TrimSpace(rec.Vertical)})
	}
	return rows, nil
}

// ReadStudents decodes student rows from CSV with a header line. The class
// assignment is taken from class_parallel/class_vertical when present, else from
// a combined class column such as "7А" or "7-А".
func ReadStudents(in io.Reader) ([]roster.StudentRow, error) {
	var records []studentRecord
	if err := gocsv.UnmarshalCSV(newHeaderReader(in, roster.SourceStudents, studentColumns...), &records); err != nil {
		return nil, asLoadError(roster.SourceStudents, err)
	}
	rows := make([]roster.StudentRow, 0, len(records))
	for i, rec := range records {
		row, err := parseStudent(rec, i+2)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseStudent(rec studentRecord, line int) (roster.StudentRow, error) {
	const source = roster.SourceStudents
	if err := validate.Struct(rec); err != nil {
		return roster.StudentRow{}, validationLoadError(source, line, err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(rec.BirthYear))
	if err != nil {
		return roster.StudentRow{}, fieldError(source, line, "birth_year", err)
	}
	gender, err := roster.ParseGender(rec.Gender)
	if err != nil {
		return roster.StudentRow{}, fieldError(source, line, "gender", err)
	}
	avg, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rec.AverageGrade), ",", "."), 64)
	if err != nil {
		return roster.StudentRow{}, fieldError(source, line, "average_grade", err)
	}

	var key roster.ClassKey
	if rec.ClassParallel != "" && rec.ClassVertical != "" {
		grade, err := strconv.Atoi(strings.TrimSpace(rec.ClassParallel))
		if err != nil {
			return roster.StudentRow{}, fieldError(source, line, "class_parallel", err)
		}
		key = roster.ClassKey{Grade: grade, Section: strings.TrimSpace(rec.ClassVertical)}
	} else {
		key, err = ParseClassName(rec.Class)
		if err != nil {
			return roster.StudentRow{}, fieldError(source, line, "class", err)
		}
	}

	return roster.StudentRow{
		Student: roster.Student{
			LastName:     strings.TrimSpace(rec.LastName),
			FirstName:    strings.TrimSpace(rec.FirstName),
			Patronymic:   strings.TrimSpace(rec.MiddleName),
			BirthYear:    year,
			Gender:       gender,
			AverageGrade: avg,
		},
		ClassGrade:   key.Grade,
		ClassSection: key.Section,
	}, nil
}

// ParseClassName splits a class name such as "7А", "10-Б" or "11 B" into grade and section.
func ParseClassName(name string) (roster.ClassKey, error) {
	name = strings.TrimSpace(name)
	digits := strings.IndexFunc(name, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits < 0 {
		return roster.ClassKey{}, fmt.Errorf("class name %q has no section", name)
	}
	if digits == 0 {
		return roster.ClassKey{}, fmt.Errorf("class name %q has no grade", name)
	}
	grade, err := strconv.Atoi(name[:digits])
	if err != nil {
		return roster.ClassKey{}, err
	}
	section := strings.TrimSpace(strings.TrimLeft(name[digits:], "- "))
	if section == "" {
		return roster.ClassKey{}, fmt.Errorf("class name %q has no section", name)
	}
	return roster.ClassKey{Grade: grade, Section: section}, nil
}

// LoadRoster reads both CSV files and builds the store. Students whose class is
// missing are logged and counted, not fatal.
func LoadRoster(name, classesPath, studentsPath string) (*roster.Store, error) {
	classRows, err := readFile(classesPath, roster.SourceClasses, ReadClasses)
	if err != nil {
		return nil, err
	}
	studentRows, err := readFile(studentsPath, roster.SourceStudents, ReadStudents)
	if err != nil {
		return nil, err
	}
	store, err := roster.Load(name, classRows, studentRows)
	if err != nil {
		return nil, err
	}
	for _, dropped := range store.Dropped() {
		slog.Warn("student dropped: no such class",
			"student", dropped.Student.FullName(),
			"class", dropped.ClassName,
		)
	}
	slog.Info("roster loaded",
		"school", name,
		"classes", store.Len(),
		"students", store.TotalStudents(),
		"dropped", len(store.Dropped()),
	)
	return store, nil
}

func readFile[T any](path, source string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &roster.LoadError{Source: source, Err: err}
	}
	defer f.Close()
	return read(f)
}

func asLoadError(source string, err error) error {
	var loadErr *roster.LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &roster.LoadError{Source: source, Err: err}
}

func fieldError(source string, line int, field string, err error) error {
	return &roster.LoadError{Source: source, Line: line, Field: field, Err: fmt.Errorf("%w: %v", roster.ErrInvalidField, err)}
}

func validationLoadError(source string, line int, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &roster.LoadError{
			Source: source,
			Line:   line,
			Field:  fe.Field(),
			Err:    fmt.Errorf("%w: failed %q", roster.ErrInvalidField, fe.Tag()),
		}
	}
	return &roster.LoadError{Source: source, Line: line, Err: err}
}
