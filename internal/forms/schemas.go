package forms

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AssistantNone is the explicit "no assistant teacher" marker. It is distinct
// from the empty string, which means the operator has not chosen yet.
const AssistantNone = "none"

// StudentForm is the intake/edit form for a student.
type StudentForm struct {
	FullName      string
	Phone         string
	Email         string
	PaymentExpiry string
}

// Validate returns field-level errors for the student form.
func (f StudentForm) Validate(v *validator.Validate) Errors {
	return Validate(v,
		Field{Name: "full_name", Value: strings.TrimSpace(f.FullName), Rules: []Rule{
			{Tag: "required", Message: "name is required"},
		}},
		Field{Name: "phone", Value: f.Phone, Rules: []Rule{
			{Tag: "required", Message: "phone is required"},
			{Tag: "phone12", Message: "phone must be exactly 12 digits"},
		}},
		Field{Name: "email", Value: f.Email, Rules: []Rule{
			{Tag: "omitempty,email", Message: "invalid email address"},
		}},
		Field{Name: "payment_expiry", Value: f.PaymentExpiry, Rules: []Rule{
			{Tag: "omitempty,ymd", Message: "date must be YYYY-MM-DD"},
		}},
	)
}

// TeacherForm is the create/edit form for a teacher.
type TeacherForm struct {
	FullName string
	Phone    string
	Email    string
	Position string
}

// Validate returns field-level errors for the teacher form.
func (f TeacherForm) Validate(v *validator.Validate) Errors {
	return Validate(v,
		Field{Name: "full_name", Value: strings.TrimSpace(f.FullName), Rules: []Rule{
			{Tag: "required", Message: "name is required"},
		}},
		Field{Name: "phone", Value: f.Phone, Rules: []Rule{
			{Tag: "required", Message: "phone is required"},
			{Tag: "phone12", Message: "phone must be exactly 12 digits"},
		}},
		Field{Name: "email", Value: f.Email, Rules: []Rule{
			{Tag: "required", Message: "email is required"},
			{Tag: "email", Message: "invalid email address"},
		}},
		Field{Name: "position", Value: f.Position, Rules: []Rule{
			{Tag: "required", Message: "position is required"},
			{Tag: "oneof=main assistant", Message: "position must be main or assistant"},
		}},
	)
}

// GroupForm is the create/edit form for a group. Teacher ids are carried as
// form values (strings) until submission.
type GroupForm struct {
	Name               string
	Level              string
	MainTeacherID      string
	AssistantTeacherID string // "", AssistantNone, or a teacher id
}

// Validate returns field-level errors for the group form.
func (f GroupForm) Validate(v *validator.Validate) Errors {
	errs := Validate(v,
		Field{Name: "name", Value: strings.TrimSpace(f.Name), Rules: []Rule{
			{Tag: "required", Message: "name is required"},
		}},
		Field{Name: "level", Value: strings.TrimSpace(f.Level), Rules: []Rule{
			{Tag: "required", Message: "level is required"},
		}},
		Field{Name: "main_teacher_id", Value: f.MainTeacherID, Rules: []Rule{
			{Tag: "required", Message: "main teacher is required"},
		}},
	)
	if f.AssistantTeacherID != "" && f.AssistantTeacherID != AssistantNone && f.AssistantTeacherID == f.MainTeacherID {
		if errs == nil {
			errs = make(Errors)
		}
		errs["assistant_teacher_id"] = "assistant teacher must differ from the main teacher"
	}
	return errs
}

// Normalized returns the form reduced to its comparable shape: trimmed strings
// and the assistant normalised to empty-string-for-none. Dirty checks compare
// normalised forms, never raw identity.
func (f GroupForm) Normalized() GroupForm {
	assistant := strings.TrimSpace(f.AssistantTeacherID)
	if assistant == AssistantNone {
		assistant = ""
	}
	return GroupForm{
		Name:               strings.TrimSpace(f.Name),
		Level:              strings.TrimSpace(f.Level),
		MainTeacherID:      strings.TrimSpace(f.MainTeacherID),
		AssistantTeacherID: assistant,
	}
}

// LoginForm is the credential form for the auth collaborator.
type LoginForm struct {
	Email    string
	Password string
}

// Validate returns field-level errors for the login form.
func (f LoginForm) Validate(v *validator.Validate) Errors {
	return Validate(v,
		Field{Name: "email", Value: f.Email, Rules: []Rule{
			{Tag: "required", Message: "email is required"},
			{Tag: "email", Message: "invalid email address"},
		}},
		Field{Name: "password", Value: f.Password, Rules: []Rule{
			{Tag: "required", Message: "password is required"},
		}},
	)
}

// ActivationForm is the activation workflow form. Level is derived from the
// chosen group and must be populated before submission is possible.
type ActivationForm struct {
	StudentID int64
	GroupID   string
	Level     string
}

// Validate returns field-level errors for the activation form.
func (f ActivationForm) Validate(v *validator.Validate) Errors {
	errs := Validate(v,
		Field{Name: "group_id", Value: strings.TrimSpace(f.GroupID), Rules: []Rule{
			{Tag: "required", Message: "group is required"},
		}},
		Field{Name: "level", Value: strings.TrimSpace(f.Level), Rules: []Rule{
			{Tag: "required", Message: "level is required"},
		}},
	)
	if f.StudentID <= 0 {
		if errs == nil {
			errs = make(Errors)
		}
		errs["student_id"] = "student is required"
	}
	return errs
}

// GroupIDValue parses the selected group id form value.
func (f ActivationForm) GroupIDValue() (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(f.GroupID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
