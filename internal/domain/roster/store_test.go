package roster

import (
	"errors"
	"testing"
)

func student(last string, year int, gender Gender, avg float64) Student {
	return Student{LastName: last, FirstName: "Test", Patronymic: "T", BirthYear: year, Gender: gender, AverageGrade: avg}
}

func sampleStore(t *testing.T) *Store {
	t.Helper()
	classes := []ClassRow{
		{Grade: 1, Section: "А"},
		{Grade: 1, Section: "Б"},
		{Grade: 5, Section: "А"},
		{Grade: 10, Section: "Б"},
		{Grade: 11, Section: "А"},
		{Grade: 11, Section: "Б"},
	}
	students := []StudentRow{
		{Student: student("Іванов", 2018, GenderMale, 10.5), ClassGrade: 1, ClassSection: "А"},
		{Student: student("Коваленко", 2019, GenderFemale, 11.2), ClassGrade: 1, ClassSection: "А"},
		{Student: student("Мельник", 2018, GenderMale, 9.8), ClassGrade: 1, ClassSection: "Б"},
		{Student: student("Шевченко", 2015, GenderFemale, 10.0), ClassGrade: 5, ClassSection: "А"},
		{Student: student("Коваль", 2010, GenderMale, 10.4), ClassGrade: 10, ClassSection: "Б"},
		{Student: student("Сидоренко", 2008, GenderMale, 9.5), ClassGrade: 11, ClassSection: "А"},
		{Student: student("Марченко", 2008, GenderFemale, 10.9), ClassGrade: 11, ClassSection: "Б"},
		{Student: student("Загублений", 2012, GenderMale, 8.0), ClassGrade: 7, ClassSection: "В"},
	}
	store, err := Load("Lyceum", classes, students)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return store
}

func TestLoadAssignsStudentsAndDropsUnmatched(t *testing.T) {
	store := sampleStore(t)

	if store.Len() != 6 {
		t.Fatalf("expected 6 classes, got %d", store.Len())
	}
	class, ok := store.Class("1А")
	if !ok {
		t.Fatal("expected class 1А")
	}
	if class.StudentCount() != 2 {
		t.Fatalf("expected 2 students in 1А, got %d", class.StudentCount())
	}
	if class.Students[0].LastName != "Іванов" || class.Students[1].LastName != "Коваленко" {
		t.Fatalf("expected load order to be kept, got %+v", class.Students)
	}

	dropped := store.Dropped()
	if len(dropped) != 1 || dropped[0].ClassName != "7В" {
		t.Fatalf("expected one dropped student for 7В, got %+v", dropped)
	}
	if store.TotalStudents() != 7 {
		t.Fatalf("expected 7 assigned students, got %d", store.TotalStudents())
	}
}

func TestLoadRejectsMalformedClasses(t *testing.T) {
	cases := []struct {
		name string
		rows []ClassRow
		want error
	}{
		{"grade zero", []ClassRow{{Grade: 0, Section: "А"}}, ErrGradeOutOfRange},
		{"grade twelve", []ClassRow{{Grade: 12, Section: "А"}}, ErrGradeOutOfRange},
		{"empty section", []ClassRow{{Grade: 3, Section: ""}}, ErrInvalidSection},
		{"long section", []ClassRow{{Grade: 3, Section: "АБ"}}, ErrInvalidSection},
		{"digit section", []ClassRow{{Grade: 1, Section: "1"}}, ErrInvalidSection},
		{"punctuation section", []ClassRow{{Grade: 4, Section: "-"}}, ErrInvalidSection},
		{"duplicate", []ClassRow{{Grade: 3, Section: "А"}, {Grade: 3, Section: "А"}}, ErrDuplicateClass},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load("x", tc.rows, nil)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if loadErr.Source != SourceClasses {
				t.Fatalf("expected classes source, got %q", loadErr.Source)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadRejectsUnknownGender(t *testing.T) {
	rows := []StudentRow{{Student: Student{LastName: "X", Gender: "other"}, ClassGrade: 1, ClassSection: "А"}}
	_, err := Load("x", []ClassRow{{Grade: 1, Section: "А"}}, rows)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Source != SourceStudents || loadErr.Line != 2 {
		t.Fatalf("expected students LoadError on line 2, got %v", err)
	}
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"male":     GenderMale,
		" Female ": GenderFemale,
		"Хлопець":  GenderMale,
		"дівчина":  GenderFemale,
	}
	for label, want := range cases {
		got, err := ParseGender(label)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", label, err)
		}
		if got != want {
			t.Fatalf("expected %q for %q, got %q", want, label, got)
		}
	}
	if _, err := ParseGender("unknown"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestClassesOrderedByGradeThenSection(t *testing.T) {
	store := sampleStore(t)
	classes := store.Classes()
	want := []string{"1А", "1Б", "5А", "10Б", "11А", "11Б"}
	for i, name := range want {
		if classes[i].Name() != name {
			t.Fatalf("expected %s at %d, got %s", name, i, classes[i].Name())
		}
	}
}

func TestClassesReturnsCopies(t *testing.T) {
	store := sampleStore(t)
	classes := store.Classes()
	classes[0].Students[0].LastName = "changed"
	classes[0].Grade = 9

	class, _ := store.Class("1А")
	if class.Students[0].LastName != "Іванов" || class.Grade != 1 {
		t.Fatal("expected store to be unaffected by mutation of returned classes")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	store := sampleStore(t)
	clone := store.Clone()
	clone.PromoteAll()

	if _, ok := store.Class("1А"); !ok {
		t.Fatal("expected original store to keep 1А after promoting clone")
	}
	if _, ok := clone.Class("1А"); ok {
		t.Fatal("expected clone to have no 1А after promotion")
	}
	if store.Promotions() != 0 || clone.Promotions() != 1 {
		t.Fatalf("unexpected promotion counters %d/%d", store.Promotions(), clone.Promotions())
	}
}
