package roster

import (
	"fmt"
	"sort"
)

// PromoteAll advances the school by one year: classes at the final grade graduate
// and are removed, every other class moves up one grade and is re-keyed under its
// new name. Students are carried over untouched. No grade-1 class is created.
func (s *Store) PromoteAll() PromotionReport {
	report := PromotionReport{Graduated: []string{}, Promoted: map[string]string{}}
	next := make(map[string]*SchoolClass, len(s.classes))
	for oldName, class := range s.classes {
		if class.Grade >= MaxGrade {
			report.Graduated = append(report.Graduated, oldName)
			continue
		}
		class.Grade++
		next[class.Name()] = class
		report.Promoted[oldName] = class.Name()
	}
	sort.Strings(report.Graduated)
	s.classes = next
	s.promotions++
	return report
}

// Verify checks the grade invariants of the store: every grade lies in range and,
// once promoted, no grade-1 class remains.
func (s *Store) Verify() error {
	for name, class := range s.classes {
		if class.Grade < MinGrade || class.Grade > MaxGrade {
			return fmt.Errorf("class %s: %w", name, ErrGradeOutOfRange)
		}
		if s.promotions > 0 && class.Grade == MinGrade {
			return fmt.Errorf("class %s: grade %d present after promotion", name, MinGrade)
		}
	}
	return nil
}
