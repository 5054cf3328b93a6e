package models

// StudentStatus represents the lifecycle state of a student as reported by the API.
type StudentStatus string

const (
	StudentStatusNew     StudentStatus = "NEW_STUDENT"
	StudentStatusActive  StudentStatus = "ACTIVE"
	StudentStatusBlocked StudentStatus = "BLOCKED"
	StudentStatusExpired StudentStatus = "EXPIRED"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusNew, StudentStatusActive, StudentStatusBlocked, StudentStatusExpired:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status is server-driven and never set by this client.
func (s StudentStatus) Terminal() bool {
	return s == StudentStatusBlocked || s == StudentStatusExpired
}

// Student is the client view of a learner. Durable state is owned by the API;
// the client never mutates a student outside the documented workflows.
type Student struct {
	ID            int64         `json:"id"`
	FullName      string        `json:"full_name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Status        StudentStatus `json:"status"`
	PaymentExpiry string        `json:"payment_expiry,omitempty"`
	GroupID       *int64        `json:"group_id,omitempty"`
	AvatarURL     string        `json:"avatar_url,omitempty"`
}

// Assigned reports whether the student currently belongs to a group.
func (s Student) Assigned() bool {
	return s.GroupID != nil
}

// StudentFilter encapsulates the search parameters for listing students.
type StudentFilter struct {
	Search   string
	GroupID  *int64
	Status   StudentStatus
	Page     int
	PageSize int
}

// NewPool is the two-bucket listing of unassigned students: freshly registered
// students and students who previously belonged to a group.
type NewPool struct {
	NewStudents      []Student `json:"new_students"`
	PreviouslyActive []Student `json:"previously_active"`
}
