package roster

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderLabels = map[string]Gender{
	"male":    GenderMale,
	"m":       GenderMale,
	"boy":     GenderMale,
	"хлопець": GenderMale,
	"female":  GenderFemale,
	"f":       GenderFemale,
	"girl":    GenderFemale,
	"дівчина": GenderFemale,
}

// ParseGender accepts the English labels and the two localized labels used in
// the school's source files.
func ParseGender(label string) (Gender, error) {
	gender, ok := genderLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("unknown gender label %q", label)
	}
	return gender, nil
}

type Student struct {
	LastName     string  `json:"lastName"`
	FirstName    string  `json:"firstName"`
	Patronymic   string  `json:"patronymic"`
	BirthYear    int     `json:"birthYear"`
	Gender       Gender  `json:"gender"`
	AverageGrade float64 `json:"averageGrade"`
}

func (s Student) FullName() string {
	return strings.Join(strings.Fields(s.LastName+" "+s.FirstName+" "+s.Patronymic), " ")
}

// ClassKey identifies a class by grade and section.
type ClassKey struct {
	Grade   int
	Section string
}

func (k ClassKey) Name() string {
	return strconv.Itoa(k.Grade) + k.Section
}

type SchoolClass struct {
	Grade    int       `json:"grade"`
	Section  string    `json:"section"`
	Students []Student `json:"students"`
}

func (c SchoolClass) Key() ClassKey {
	return ClassKey{Grade: c.Grade, Section: c.Section}
}

func (c SchoolClass) Name() string {
	return c.Key().Name()
}

func (c SchoolClass) StudentCount() int {
	return len(c.Students)
}

// AverageGrade is the mean of the students' average grades, zero for an empty class.
func (c SchoolClass) AverageGrade() float64 {
	if len(c.Students) == 0 {
		return 0
	}
	var sum float64
	for _, s := range c.Students {
		sum += s.AverageGrade
	}
	return round2(sum / float64(len(c.Students)))
}

func (c SchoolClass) clone() *SchoolClass {
	return &SchoolClass{Grade: c.Grade, Section: c.Section, Students: slices.Clone(c.Students)}
}

// ClassRow is one already-parsed class record.
type ClassRow struct {
	Grade   int
	Section string
}

// StudentRow is one already-parsed student record together with its class assignment.
type StudentRow struct {
	Student
	ClassGrade   int
	ClassSection string
}

func (r StudentRow) ClassKey() ClassKey {
	return ClassKey{Grade: r.ClassGrade, Section: r.ClassSection}
}

// DroppedStudent records a student whose class assignment matched no loaded class.
type DroppedStudent struct {
	Student   Student `json:"student"`
	ClassName string  `json:"className"`
}

type PromotionReport struct {
	Graduated []string          `json:"graduated"`
	Promoted  map[string]string `json:"promoted"`
}
