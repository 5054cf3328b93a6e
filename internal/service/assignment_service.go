package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type assignmentRepo interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByGroup(ctx context.Context, groupID int64) ([]models.Assignment, error)
	Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error)
	Submissions(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	Grade(ctx context.Context, submissionID int64, grade int) error
}

// CreateAssignmentInput describes the assignment creation payload.
type CreateAssignmentInput struct {
	GroupID     int64  `json:"group_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,ymd"`
}

// AssignmentService owns assignment publishing and grading workflows.
type AssignmentService struct {
	repo        assignmentRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs the AssignmentService.
func NewAssignmentService(repo assignmentRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// List returns every assignment visible to the caller.
func (s *AssignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	return s.repo.List(ctx)
}

// ListByGroup returns the group's assignments.
func (s *AssignmentService) ListByGroup(ctx context.Context, groupID int64) ([]models.Assignment, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

// Submissions returns an assignment's submissions.
func (s *AssignmentService) Submissions(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	return s.repo.Submissions(ctx, assignmentID)
}

// Create publishes an assignment to a group and invalidates its lists.
func (s *AssignmentService) Create(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	req := dto.CreateAssignmentRequest{
		GroupID:     input.GroupID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	assignment, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveAssignment, cache.Target{GroupID: input.GroupID, AssignmentID: assignment.ID})
	s.logger.Info("assignment created", zap.Int64("group_id", input.GroupID), zap.Int64("assignment_id", assignment.ID))
	return assignment, nil
}

// GradeDraft is a pending grade held locally until explicitly committed.
type GradeDraft struct {
	SubmissionID int64
	AssignmentID int64
	GroupID      int64

	grade *int
}

// NewGradeDraft starts a draft for one submission.
func NewGradeDraft(submissionID, assignmentID, groupID int64) *GradeDraft {
	return &GradeDraft{SubmissionID: submissionID, AssignmentID: assignmentID, GroupID: groupID}
}

// Set stages a grade value in the 0-100 range.
func (d *GradeDraft) Set(grade int) error {
	if grade < 0 || grade > 100 {
		return appErrors.Clone(appErrors.ErrValidation, "grade must be between 0 and 100")
	}
	d.grade = &grade
	return nil
}

// Pending reports whether an uncommitted grade is staged.
func (d *GradeDraft) Pending() bool {
	return d.grade != nil
}

// CommitGrade sends the staged grade. A draft with nothing staged issues no
// call; on success the submission list and assignment lists are invalidated
// and the draft cleared.
func (s *AssignmentService) CommitGrade(ctx context.Context, draft *GradeDraft) error {
	if !draft.Pending() {
		return appErrors.Clone(appErrors.ErrValidation, "no grade entered")
	}

	if err := s.repo.Grade(ctx, draft.SubmissionID, *draft.grade); err != nil {
		// The staged value survives a failed commit for retry.
		return appErrors.FromError(err)
	}

	draft.grade = nil
	s.coordinator.OnSuccess(cache.MutationSaveAssignment, cache.Target{GroupID: draft.GroupID, AssignmentID: draft.AssignmentID})
	s.logger.Info("submission graded", zap.Int64("submission_id", draft.SubmissionID))
	return nil
}
