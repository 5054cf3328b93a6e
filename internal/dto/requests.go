package dto

import "github.com/SawaDev/remix-of-eduadmin-pro/internal/models"

// CreateStudentRequest is the payload for student create and update calls.
type CreateStudentRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	PaymentExpiry string `json:"payment_expiry,omitempty"`
}

// CreateTeacherRequest is the payload for teacher create and update calls.
type CreateTeacherRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// CreateGroupRequest is the payload for group create and update calls. A nil
// AssistantTeacherID means no assistant; the API treats the field as nullable.
type CreateGroupRequest struct {
	Name               string `json:"name"`
	Level              string `json:"level"`
	MainTeacherID      int64  `json:"main_teacher_id"`
	AssistantTeacherID *int64 `json:"assistant_teacher_id"`
}

// ActivateStudentRequest is the activation payload. Level is copied from the
// chosen group's record, never chosen independently.
type ActivateStudentRequest struct {
	StudentID int64  `json:"student_id"`
	GroupID   int64  `json:"group_id"`
	Level     string `json:"level"`
}

// AddStudentsRequest is the batch add-to-group payload.
type AddStudentsRequest struct {
	StudentIDs []int64 `json:"student_ids"`
}

// RemoveStudentRequest is the remove-from-group payload.
type RemoveStudentRequest struct {
	StudentID int64 `json:"student_id"`
}

// PaymentPeriodRequest edits a payment record's date range.
type PaymentPeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SubmitAttendanceRequest carries one date's marks for a group in a single call.
type SubmitAttendanceRequest struct {
	GroupID int64                    `json:"group_id"`
	Date    string                   `json:"date"`
	Entries []models.AttendanceEntry `json:"entries"`
}

// CreateAssignmentRequest is the payload for publishing homework to a group.
type CreateAssignmentRequest struct {
	GroupID     int64  `json:"group_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// GradeSubmissionRequest commits a pending grade.
type GradeSubmissionRequest struct {
	Grade int `json:"grade"`
}

// LoginRequest is the credential payload for the external auth collaborator.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
