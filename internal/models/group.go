package models

// Group is the client view of a study group.
type Group struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Level              string `json:"level"`
	MainTeacherID      int64  `json:"main_teacher_id"`
	AssistantTeacherID *int64 `json:"assistant_teacher_id,omitempty"`
	MemberCount        int    `json:"member_count"` // derived server-side
}

// GroupDetail enriches Group with its roster and teacher names.
type GroupDetail struct {
	Group
	MainTeacherName      string    `json:"main_teacher_name"`
	AssistantTeacherName string    `json:"assistant_teacher_name,omitempty"`
	Students             []Student `json:"students"`
}

// GroupFilter encapsulates the search parameters for listing groups.
type GroupFilter struct {
	Search   string
	Level    string
	Page     int
	PageSize int
}
