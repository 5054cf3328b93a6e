package models

// TeacherPosition distinguishes main teachers from assistants.
type TeacherPosition string

const (
	TeacherPositionMain      TeacherPosition = "main"
	TeacherPositionAssistant TeacherPosition = "assistant"
)

// Valid returns true when the position is a supported value.
func (p TeacherPosition) Valid() bool {
	return p == TeacherPositionMain || p == TeacherPositionAssistant
}

// Teacher is the client view of an instructor.
type Teacher struct {
	ID         int64           `json:"id"`
	FullName   string          `json:"full_name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Position   TeacherPosition `json:"position"`
	GroupCount int             `json:"group_count"` // derived server-side
}

// TeacherFilter encapsulates the search parameters for listing teachers.
type TeacherFilter struct {
	Search   string
	Position TeacherPosition
	Page     int
	PageSize int
}
