package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

// MaxBatchAdd caps one add-to-group batch. Larger selections are rejected
// client-side without a network call.
const MaxBatchAdd = 100

// WorkflowState tracks an activation workflow. Terminal student statuses
// (EXPIRED, BLOCKED) are server-driven and never appear here.
type WorkflowState string

const (
	WorkflowStateNew        WorkflowState = "NEW"
	WorkflowStateActivating WorkflowState = "ACTIVATING"
	WorkflowStateActive     WorkflowState = "ACTIVE"
	WorkflowStateClosed     WorkflowState = "CLOSED"
)

type lifecycleGroupRepo interface {
	Detail(ctx context.Context, id int64) (*models.GroupDetail, error)
	Activate(ctx context.Context, req dto.ActivateStudentRequest) error
	AddStudents(ctx context.Context, groupID int64, studentIDs []int64) error
	RemoveStudent(ctx context.Context, groupID, studentID int64) error
}

type lifecycleStudentRepo interface {
	NewPool(ctx context.Context) (*models.NewPool, error)
}

type invalidator interface {
	OnSuccess(m cache.Mutation, target cache.Target)
}

// LifecycleService owns the student lifecycle workflows: activation of new
// students into groups, removal from groups, and batch membership changes.
// Ordering is always validate, then submit, then invalidate.
type LifecycleService struct {
	groups      lifecycleGroupRepo
	students    lifecycleStudentRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewLifecycleService constructs the LifecycleService.
func NewLifecycleService(groups lifecycleGroupRepo, students lifecycleStudentRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *LifecycleService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{groups: groups, students: students, coordinator: coordinator, validator: validate, logger: logger}
}

// NewPool returns the two-bucket listing of unassigned students.
func (s *LifecycleService) NewPool(ctx context.Context) (*models.NewPool, error) {
	return s.students.NewPool(ctx)
}

// ActivationWorkflow is one open activation dialog. It is safe for the
// concurrent submit/close calls a busy operator can produce.
type ActivationWorkflow struct {
	service *LifecycleService

	mu         sync.Mutex
	state      WorkflowState
	generation uint64
	form       forms.ActivationForm
	groupName  string
}

// OpenActivation starts an activation workflow for a student in the new pool.
func (s *LifecycleService) OpenActivation(student models.Student) (*ActivationWorkflow, error) {
	if student.Status != models.StudentStatusNew {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "student is not awaiting activation")
	}
	return &ActivationWorkflow{
		service: s,
		state:   WorkflowStateNew,
		form:    forms.ActivationForm{StudentID: student.ID},
	}, nil
}

// State returns the workflow state.
func (w *ActivationWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Form returns a copy of the current form values.
func (w *ActivationWorkflow) Form() forms.ActivationForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// GroupName returns the display name of the chosen group.
func (w *ActivationWorkflow) GroupName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.groupName
}

// SelectGroup resolves the chosen group and derives the level from its record.
// The level is never chosen independently. A failed lookup keeps the previous
// selection intact.
func (w *ActivationWorkflow) SelectGroup(ctx context.Context, groupID string) error {
	form := forms.ActivationForm{GroupID: groupID}
	id, ok := form.GroupIDValue()
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "group is required")
	}

	w.mu.Lock()
	if w.state != WorkflowStateNew {
		w.mu.Unlock()
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "workflow is not open")
	}
	gen := w.generation
	w.mu.Unlock()

	detail, err := w.service.groups.Detail(ctx, id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen || w.state != WorkflowStateNew {
		// The dialog closed while the lookup was in flight; drop the result.
		return nil
	}
	w.form.GroupID = groupID
	w.form.Level = detail.Level
	w.groupName = detail.Name
	return nil
}

// Submit validates and performs the activation call. Field errors block the
// call entirely; a submission while another is in flight is rejected. On
// success the selection is cleared, the workflow closes, and the activation
// invalidation set is applied. On failure the workflow stays open with the
// selection intact.
func (w *ActivationWorkflow) Submit(ctx context.Context) (forms.Errors, error) {
	w.mu.Lock()
	switch w.state {
	case WorkflowStateActivating:
		w.mu.Unlock()
		return nil, appErrors.ErrInFlight
	case WorkflowStateActive, WorkflowStateClosed:
		w.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "workflow is not open")
	}

	form := w.form
	if errs := form.Validate(w.service.validator); !errs.Valid() {
		w.mu.Unlock()
		return errs, nil
	}
	groupID, ok := form.GroupIDValue()
	if !ok {
		w.mu.Unlock()
		return forms.Errors{"group_id": "group is required"}, nil
	}

	w.state = WorkflowStateActivating
	gen := w.generation
	w.mu.Unlock()

	req := dto.ActivateStudentRequest{StudentID: form.StudentID, GroupID: groupID, Level: form.Level}
	err := w.service.groups.Activate(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen {
		// Closed while in flight: the response must not touch current state,
		// and a closed dialog must not invalidate anything.
		w.service.logger.Debug("dropping late activation response", zap.Int64("student_id", form.StudentID))
		return nil, nil
	}

	if err != nil {
		w.state = WorkflowStateNew
		return nil, appErrors.FromError(err)
	}

	w.form.GroupID = ""
	w.form.Level = ""
	w.groupName = ""
	w.state = WorkflowStateActive
	w.service.coordinator.OnSuccess(cache.MutationActivateStudent, cache.Target{GroupID: groupID})
	w.service.logger.Info("student activated",
		zap.Int64("student_id", req.StudentID),
		zap.Int64("group_id", req.GroupID),
		zap.String("level", req.Level),
	)
	return nil, nil
}

// Close abandons the workflow. In-flight responses arriving afterwards are
// discarded without touching state or caches.
func (w *ActivationWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == WorkflowStateActive || w.state == WorkflowStateClosed {
		w.state = WorkflowStateClosed
		return
	}
	w.state = WorkflowStateClosed
	w.generation++
}

// RemovalTicket gates the destructive remove-from-group call behind an
// explicit confirmation step.
type RemovalTicket struct {
	StudentID int64
	GroupID   int64

	mu        sync.Mutex
	confirmed bool
	used      bool
}

// BeginRemoval prepares a removal awaiting operator confirmation.
func (s *LifecycleService) BeginRemoval(studentID, groupID int64) *RemovalTicket {
	return &RemovalTicket{StudentID: studentID, GroupID: groupID}
}

// Confirm records the operator's explicit confirmation.
func (t *RemovalTicket) Confirm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirmed = true
}

// Remove performs the confirmed removal. Without confirmation no call is
// issued. On success only the group's detail is invalidated.
func (s *LifecycleService) Remove(ctx context.Context, ticket *RemovalTicket) error {
	ticket.mu.Lock()
	if !ticket.confirmed {
		ticket.mu.Unlock()
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "removal requires confirmation")
	}
	if ticket.used {
		ticket.mu.Unlock()
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "removal already performed")
	}
	ticket.used = true
	ticket.mu.Unlock()

	if err := s.groups.RemoveStudent(ctx, ticket.GroupID, ticket.StudentID); err != nil {
		ticket.mu.Lock()
		ticket.used = false
		ticket.mu.Unlock()
		return appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationRemoveStudent, cache.Target{GroupID: ticket.GroupID})
	s.logger.Info("student removed from group",
		zap.Int64("student_id", ticket.StudentID),
		zap.Int64("group_id", ticket.GroupID),
	)
	return nil
}

// AddToGroup assigns the selected students to the group. Empty and over-cap
// selections are rejected before any network call.
func (s *LifecycleService) AddToGroup(ctx context.Context, groupID int64, selection *BatchSelection) error {
	ids := selection.IDs()
	if len(ids) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no students selected")
	}
	if len(ids) > MaxBatchAdd {
		return appErrors.FromError(appErrors.ErrCapacity)
	}

	if err := s.groups.AddStudents(ctx, groupID, ids); err != nil {
		return appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationAddStudents, cache.Target{GroupID: groupID})
	return nil
}
