package roster

type ClassTableRow struct {
	Name         string  `json:"name"`
	Grade        int     `json:"grade"`
	Section      string  `json:"section"`
	StudentCount int     `json:"studentCount"`
	AverageGrade float64 `json:"averageGrade"`
}

type StudentTableRow struct {
	ClassName    string  `json:"className"`
	Grade        int     `json:"grade"`
	Section      string  `json:"section"`
	LastName     string  `json:"lastName"`
	FirstName    string  `json:"firstName"`
	Patronymic   string  `json:"patronymic"`
	BirthYear    int     `json:"birthYear"`
	Gender       Gender  `json:"gender"`
	AverageGrade float64 `json:"averageGrade"`
}

// ClassTable returns one row per class in (grade, section) order.
func (s *Store) ClassTable() []ClassTableRow {
	classes := s.Classes()
	rows := make([]ClassTableRow, 0, len(classes))
	for _, class := range classes {
		rows = append(rows, ClassTableRow{
			Name:         class.Name(),
			Grade:        class.Grade,
			Section:      class.Section,
			StudentCount: class.StudentCount(),
			AverageGrade: class.AverageGrade(),
		})
	}
	return rows
}

// StudentTable returns one row per student, classes in (grade, section) order and
// students in load order within a class.
func (s *Store) StudentTable() []StudentTableRow {
	rows := make([]StudentTableRow, 0, s.TotalStudents())
	for _, class := range s.Classes() {
		for _, st := range class.Students {
			rows = append(rows, StudentTableRow{
				ClassName:    class.Name(),
				Grade:        class.Grade,
				Section:      class.Section,
				LastName:     st.LastName,
				FirstName:    st.FirstName,
				Patronymic:   st.Patronymic,
				BirthYear:    st.BirthYear,
				Gender:       st.Gender,
				AverageGrade: st.AverageGrade,
			})
		}
	}
	return rows
}
