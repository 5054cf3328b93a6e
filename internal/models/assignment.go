package models

import "time"

// Assignment is the client view of homework published to a group.
type Assignment struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"group_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Submission is a student's answer to an assignment. Grade is nullable until
// the teacher commits one.
type Submission struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignment_id"`
	StudentID    int64     `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Content      string    `json:"content,omitempty"`
	Grade        *int      `json:"grade,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
