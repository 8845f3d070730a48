package roster

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"unicode"
	"unicode/utf8"
)

const (
	MinGrade = 1
	MaxGrade = 11
)

const (
	SourceClasses  = "classes"
	SourceStudents = "students"
)

// Store holds the classes of one school keyed by class name. It is not safe for
// concurrent use; callers serialize access per session.
type Store struct {
	name       string
	classes    map[string]*SchoolClass
	dropped    []DroppedStudent
	promotions int
}

func New(name string) *Store {
	return &Store{name: name, classes: map[string]*SchoolClass{}}
}

// Load builds a store from class rows, then assigns each student row to the class
// with the matching grade and section. Students without a matching class are
// kept aside in Dropped rather than failing the load.
func Load(name string, classRows []ClassRow, studentRows []StudentRow) (*Store, error) {
	store := New(name)
	for i, row := range classRows {
		if err := store.addClass(row); err != nil {
			return nil, &LoadError{Source: SourceClasses, Line: i + 2, Err: err}
		}
	}
	for i, row := range studentRows {
		if err := validateStudent(row.Student); err != nil {
			return nil, &LoadError{Source: SourceStudents, Line: i + 2, Err: err}
		}
		class, ok := store.classes[row.ClassKey().Name()]
		if !ok {
			store.dropped = append(store.dropped, DroppedStudent{Student: row.Student, ClassName: row.ClassKey().Name()})
			continue
		}
		class.Students = append(class.Students, row.Student)
	}
	return store, nil
}

func (s *Store) addClass(row ClassRow) error {
	if row.Grade < MinGrade || row.Grade > MaxGrade {
		return fmt.Errorf("%w: got %d", ErrGradeOutOfRange, row.Grade)
	}
	if section, _ := utf8.DecodeRuneInString(row.Section); utf8.RuneCountInString(row.Section) != 1 || !unicode.IsLetter(section) {
		return fmt.Errorf("%w: got %q", ErrInvalidSection, row.Section)
	}
	key := ClassKey{Grade: row.Grade, Section: row.Section}
	if _, exists := s.classes[key.Name()]; exists {
		return fmt.Errorf("%w %s", ErrDuplicateClass, key.Name())
	}
	s.classes[key.Name()] = &SchoolClass{Grade: row.Grade, Section: row.Section}
	return nil
}

func validateStudent(st Student) error {
	if st.Gender != GenderMale && st.Gender != GenderFemale {
		return fmt.Errorf("%w: gender %q", ErrInvalidField, st.Gender)
	}
	if math.IsNaN(st.AverageGrade) || math.IsInf(st.AverageGrade, 0) {
		return fmt.Errorf("%w: average grade", ErrInvalidField)
	}
	return nil
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Len() int {
	return len(s.classes)
}

// Dropped returns the students that could not be assigned during Load.
func (s *Store) Dropped() []DroppedStudent {
	return slices.Clone(s.dropped)
}

// Promotions is the number of PromoteAll calls applied to this store.
func (s *Store) Promotions() int {
	return s.promotions
}

// Class returns a copy of the named class.
func (s *Store) Class(name string) (SchoolClass, bool) {
	class, ok := s.classes[name]
	if !ok {
		return SchoolClass{}, false
	}
	return *class.clone(), true
}

// Classes returns copies of all classes ordered by grade, then section.
func (s *Store) Classes() []SchoolClass {
	out := make([]SchoolClass, 0, len(s.classes))
	for _, class := range s.classes {
		out = append(out, *class.clone())
	}
	slices.SortFunc(out, compareClasses)
	return out
}

func compareClasses(a, b SchoolClass) int {
	if c := cmp.Compare(a.Grade, b.Grade); c != 0 {
		return c
	}
	return cmp.Compare(a.Section, b.Section)
}

func (s *Store) TotalStudents() int {
	total := 0
	for _, class := range s.classes {
		total += len(class.Students)
	}
	return total
}

// Clone returns an independent deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{
		name:       s.name,
		classes:    make(map[string]*SchoolClass, len(s.classes)),
		dropped:    slices.Clone(s.dropped),
		promotions: s.promotions,
	}
	for name, class := range s.classes {
		out.classes[name] = class.clone()
	}
	return out
}
