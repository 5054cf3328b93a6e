package models

import "sort"

// AttendanceEntry is one student's mark for one date.
type AttendanceEntry struct {
	StudentID int64 `json:"student_id"`
	Present   bool  `json:"present"`
}

// AttendanceSheet holds the pending marks for one group and date. It is the
// only record of those marks within a session: the API exposes no read-back
// endpoint for saved attendance.
type AttendanceSheet struct {
	GroupID int64
	Date    string // YYYY-MM-DD
	marks   map[int64]bool
}

// NewAttendanceSheet starts an empty sheet for the group and date.
func NewAttendanceSheet(groupID int64, date string) *AttendanceSheet {
	return &AttendanceSheet{GroupID: groupID, Date: date, marks: make(map[int64]bool)}
}

// Mark records a student's presence, replacing any prior mark for that student.
func (s *AttendanceSheet) Mark(studentID int64, present bool) {
	s.marks[studentID] = present
}

// Unmark removes the student's pending mark.
func (s *AttendanceSheet) Unmark(studentID int64) {
	delete(s.marks, studentID)
}

// Len returns the number of pending marks.
func (s *AttendanceSheet) Len() int {
	return len(s.marks)
}

// Entries flattens the sheet into wire entries, ordered by student id.
func (s *AttendanceSheet) Entries() []AttendanceEntry {
	entries := make([]AttendanceEntry, 0, len(s.marks))
	for id, present := range s.marks {
		entries = append(entries, AttendanceEntry{StudentID: id, Present: present})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StudentID < entries[j].StudentID })
	return entries
}
