package payroll

type Role string

const (
	RoleTeacher  Role = "teacher"
	RoleDirector Role = "director"
	RoleGuard    Role = "guard"
)

const (
	TeacherExperienceDivisor  = 30
	DirectorExperienceDivisor = 50
	DirectorManagementRate    = 500
	GuardExperienceRate       = 250
)

// MaxMoney bounds base salaries and bonuses so every derived amount stays finite.
const MaxMoney = 1e12

var roleLabels = map[Role]string{
	RoleTeacher:  "Teacher",
	RoleDirector: "Director",
	RoleGuard:    "Guard",
}

// Roles lists every role variant in display order.
func Roles() []Role {
	return []Role{RoleDirector, RoleTeacher, RoleGuard}
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}
