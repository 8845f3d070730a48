package roster

import (
	"math"
	"slices"
	"sort"
)

type ClassSize struct {
	Name         string  `json:"name"`
	Grade        int     `json:"grade"`
	Section      string  `json:"section"`
	Students     int     `json:"students"`
	AverageGrade float64 `json:"averageGrade"`
}

type GradeTotal struct {
	Grade    int `json:"grade"`
	Students int `json:"students"`
}

type SectionMean struct {
	Section       string  `json:"section"`
	Classes       int     `json:"classes"`
	MeanClassSize float64 `json:"meanClassSize"`
}

type BirthYearCount struct {
	Year     int `json:"year"`
	Students int `json:"students"`
}

// GradePoint is one student's average grade plotted against the class.
type GradePoint struct {
	ClassName    string  `json:"className"`
	Gender       Gender  `json:"gender"`
	AverageGrade float64 `json:"averageGrade"`
}

type Stats struct {
	School         string           `json:"school"`
	Classes        int              `json:"classes"`
	TotalStudents  int              `json:"totalStudents"`
	ByGender       map[Gender]int   `json:"byGender"`
	MalePercent    float64          `json:"malePercent"`
	FemalePercent  float64          `json:"femalePercent"`
	PerClass       []ClassSize      `json:"perClass"`
	Largest        *ClassSize       `json:"largest,omitempty"`
	Smallest       *ClassSize       `json:"smallest,omitempty"`
	MeanClassSize  float64          `json:"meanClassSize"`
	ByGrade        []GradeTotal     `json:"byGrade"`
	BySection      []SectionMean    `json:"bySection"`
	ByBirthYear    []BirthYearCount `json:"byBirthYear"`
	GradePoints    []GradePoint     `json:"gradePoints"`
	DroppedOnLoad  int              `json:"droppedOnLoad"`
	PromotionCount int              `json:"promotionCount"`
}

// AggregateStatistics summarizes the store. Classes are visited in (grade,
// section) order, so ties for largest and smallest resolve to the first class in
// that order. An empty store yields zero counts and no largest/smallest class.
func (s *Store) AggregateStatistics() Stats {
	classes := s.Classes()
	stats := Stats{
		School:         s.name,
		Classes:        len(classes),
		ByGender:       map[Gender]int{GenderMale: 0, GenderFemale: 0},
		PerClass:       make([]ClassSize, 0, len(classes)),
		ByGrade:        []GradeTotal{},
		BySection:      []SectionMean{},
		ByBirthYear:    []BirthYearCount{},
		GradePoints:    []GradePoint{},
		DroppedOnLoad:  len(s.dropped),
		PromotionCount: s.promotions,
	}

	gradeTotals := map[int]int{}
	sectionSizes := map[string][]int{}
	birthYears := map[int]int{}
	for _, class := range classes {
		size := ClassSize{
			Name:         class.Name(),
			Grade:        class.Grade,
			Section:      class.Section,
			Students:     class.StudentCount(),
			AverageGrade: class.AverageGrade(),
		}
		stats.PerClass = append(stats.PerClass, size)
		stats.TotalStudents += size.Students
		gradeTotals[class.Grade] += size.Students
		sectionSizes[class.Section] = append(sectionSizes[class.Section], size.Students)
		for _, student := range class.Students {
			stats.ByGender[student.Gender]++
			birthYears[student.BirthYear]++
			stats.GradePoints = append(stats.GradePoints, GradePoint{
				ClassName:    size.Name,
				Gender:       student.Gender,
				AverageGrade: student.AverageGrade,
			})
		}
	}

	for i := range stats.PerClass {
		size := stats.PerClass[i]
		if stats.Largest == nil || size.Students > stats.Largest.Students {
			stats.Largest = &size
		}
		if stats.Smallest == nil || size.Students < stats.Smallest.Students {
			stats.Smallest = &size
		}
	}

	if stats.Classes > 0 {
		stats.MeanClassSize = round2(float64(stats.TotalStudents) / float64(stats.Classes))
	}
	if stats.TotalStudents > 0 {
		stats.MalePercent = percent(stats.ByGender[GenderMale], stats.TotalStudents)
		stats.FemalePercent = percent(stats.ByGender[GenderFemale], stats.TotalStudents)
	}

	for _, grade := range sortedKeys(gradeTotals) {
		stats.ByGrade = append(stats.ByGrade, GradeTotal{Grade: grade, Students: gradeTotals[grade]})
	}
	sections := make([]string, 0, len(sectionSizes))
	for section := range sectionSizes {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		sizes := sectionSizes[section]
		total := 0
		for _, n := range sizes {
			total += n
		}
		stats.BySection = append(stats.BySection, SectionMean{
			Section:       section,
			Classes:       len(sizes),
			MeanClassSize: round2(float64(total) / float64(len(sizes))),
		})
	}
	for _, year := range sortedKeys(birthYears) {
		stats.ByBirthYear = append(stats.ByBirthYear, BirthYearCount{Year: year, Students: birthYears[year]})
	}
	return stats
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func percent(part, total int) float64 {
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
