package payroll

// Employee is a closed variant over the roles. Role selects the salary formula
// and which experience fields are meaningful:
//
//	teacher:  TeachingExperience
//	director: TeachingExperience, ManagementExperience
//	guard:    GeneralExperience
type Employee struct {
	Role                 Role     `json:"role" yaml:"role"`
	FullName             string   `json:"fullName" yaml:"fullName"`
	BaseSalary           float64  `json:"baseSalary" yaml:"baseSalary"`
	TeachingExperience   int      `json:"teachingExperience,omitempty" yaml:"teachingExperience,omitempty"`
	ManagementExperience int      `json:"managementExperience,omitempty" yaml:"managementExperience,omitempty"`
	GeneralExperience    int      `json:"generalExperience,omitempty" yaml:"generalExperience,omitempty"`
	Salary               *float64 `json:"salary,omitempty" yaml:"-"`
	Bonus                float64  `json:"bonus" yaml:"-"`
}

func NewTeacher(fullName string, baseSalary float64, teachingExperience int) Employee {
	return Employee{Role: RoleTeacher, FullName: fullName, BaseSalary: baseSalary, TeachingExperience: teachingExperience}
}

func NewDirector(fullName string, baseSalary float64, teachingExperience, managementExperience int) Employee {
	return Employee{
		Role:                 RoleDirector,
		FullName:             fullName,
		BaseSalary:           baseSalary,
		TeachingExperience:   teachingExperience,
		ManagementExperience: managementExperience,
	}
}

func NewGuard(fullName string, baseSalary float64, generalExperience int) Employee {
	return Employee{Role: RoleGuard, FullName: fullName, BaseSalary: baseSalary, GeneralExperience: generalExperience}
}

// Row is the tabular projection of one employee. Experience fields the role does
// not own are nil, never zero.
type Row struct {
	Role                 Role    `json:"role"`
	Position             string  `json:"position"`
	Name                 string  `json:"name"`
	BaseSalary           float64 `json:"baseSalary"`
	TeachingExperience   *int    `json:"teachingExperience"`
	ManagementExperience *int    `json:"managementExperience"`
	GeneralExperience    *int    `json:"generalExperience"`
	Salary               float64 `json:"salary"`
	Bonus                float64 `json:"bonus"`
	Total                float64 `json:"total"`
}

type Summary struct {
	EmployeeCount int              `json:"employeeCount"`
	TotalSalary   float64          `json:"totalSalary"`
	TotalBonus    float64          `json:"totalBonus"`
	TotalPayable  float64          `json:"totalPayable"`
	ByRole        map[Role]float64 `json:"byRole"`
}
