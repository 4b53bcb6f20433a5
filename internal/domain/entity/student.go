package entity

// StudentKey is the composite identity key carried by every report row. It is
// not guaranteed to be globally unique by the platform but the pipeline
// treats it as such.
type StudentKey struct {
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	PrimaryEmail string `json:"primary_email"`
	SchoolEmail  string `json:"school_email"`
	StudentID    string `json:"student_id"`
}

// Fields returns the key components in KeyColumns order.
func (k StudentKey) Fields() []string {
	return []string{k.LastName, k.FirstName, k.PrimaryEmail, k.SchoolEmail, k.StudentID}
}

// Less orders keys lexicographically over their components.
func (k StudentKey) Less(other StudentKey) bool {
	a, b := k.Fields(), other.Fields()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
