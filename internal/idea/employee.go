package idea

import "strings"

// DefaultDepartment is reported for employees stored without a department.
const DefaultDepartment = "Unassigned"

// Employee is a read-only reference record. Both name representations are
// always populated after Normalize.
type Employee struct {
	ID           string `json:"id" bson:"id"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Name         string `json:"name" bson:"name"`
	ProfileImage string `json:"profileImage" bson:"profileImage"`
	Department   string `json:"department" bson:"department"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
}

// Normalize fills whichever name representation is missing and applies the
// department default.
func (e Employee) Normalize() Employee {
	parts := strings.Fields(e.Name)
	if e.FirstName == "" && len(parts) > 0 {
		e.FirstName = parts[0]
	}
	if e.LastName == "" && len(parts) > 1 {
		e.LastName = strings.Join(parts[1:], " ")
	}
	if e.Name == "" {
		e.Name = strings.TrimSpace(e.FirstName + " " + e.LastName)
	}
	if e.Department == "" {
		e.Department = DefaultDepartment
	}
	return e
}

// NormalizeAll normalizes a whole employee collection in place and returns it.
func NormalizeAll(es []Employee) []Employee {
	for i := range es {
		es[i] = es[i].Normalize()
	}
	return es
}
