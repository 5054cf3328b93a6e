package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type groupRepo interface {
	List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error)
	Detail(ctx context.Context, id int64) (*models.GroupDetail, error)
	Create(ctx context.Context, req dto.CreateGroupRequest) (*models.Group, error)
	Update(ctx context.Context, id int64, req dto.CreateGroupRequest) (*models.Group, error)
}

// GroupService owns group create and edit workflows.
type GroupService struct {
	repo        groupRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGroupService constructs the GroupService.
func NewGroupService(repo groupRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// List returns groups matching the filter.
func (s *GroupService) List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error) {
	return s.repo.List(ctx, filter)
}

// Detail returns a group with its roster.
func (s *GroupService) Detail(ctx context.Context, id int64) (*models.GroupDetail, error) {
	return s.repo.Detail(ctx, id)
}

// Create validates the form and creates the group. Field errors block the
// call; success invalidates the groups list.
func (s *GroupService) Create(ctx context.Context, form forms.GroupForm) (forms.Errors, *models.Group, error) {
	if errs := form.Validate(s.validator); !errs.Valid() {
		return errs, nil, nil
	}
	req, errs := groupRequest(form)
	if !errs.Valid() {
		return errs, nil, nil
	}

	group, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveGroup, cache.Target{})
	s.logger.Info("group created", zap.Int64("group_id", group.ID), zap.String("level", group.Level))
	return nil, group, nil
}

// GroupEditor is one open edit dialog. The form pre-fills asynchronously from
// the group's current detail; submission is gated on a normalised dirty check.
type GroupEditor struct {
	GroupID int64
	Form    forms.GroupForm

	initial forms.GroupForm
	loaded  bool
}

// OpenEditor loads the group's detail and pre-fills the editor.
func (s *GroupService) OpenEditor(ctx context.Context, groupID int64) (*GroupEditor, error) {
	detail, err := s.repo.Detail(ctx, groupID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	initial := forms.GroupForm{
		Name:          detail.Name,
		Level:         detail.Level,
		MainTeacherID: strconv.FormatInt(detail.MainTeacherID, 10),
	}
	if detail.AssistantTeacherID != nil {
		initial.AssistantTeacherID = strconv.FormatInt(*detail.AssistantTeacherID, 10)
	} else {
		// The group has explicitly no assistant, which is not the same as an
		// operator who has not chosen yet.
		initial.AssistantTeacherID = forms.AssistantNone
	}

	return &GroupEditor{GroupID: groupID, Form: initial, initial: initial, loaded: true}, nil
}

// Dirty reports whether the form differs from the loaded values, compared in
// normalised shape rather than raw identity.
func (e *GroupEditor) Dirty() bool {
	return e.loaded && e.Form.Normalized() != e.initial.Normalized()
}

// SaveEditor validates and submits the edit. Clean forms are rejected without
// a call; success invalidates the groups list and this group's detail.
func (s *GroupService) SaveEditor(ctx context.Context, editor *GroupEditor) (forms.Errors, error) {
	if !editor.loaded {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "group detail still loading")
	}
	if !editor.Dirty() {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no changes to save")
	}
	if errs := editor.Form.Validate(s.validator); !errs.Valid() {
		return errs, nil
	}
	req, errs := groupRequest(editor.Form)
	if !errs.Valid() {
		return errs, nil
	}

	if _, err := s.repo.Update(ctx, editor.GroupID, req); err != nil {
		return nil, appErrors.FromError(err)
	}

	editor.initial = editor.Form
	s.coordinator.OnSuccess(cache.MutationEditGroupDetail, cache.Target{GroupID: editor.GroupID})
	s.logger.Info("group updated", zap.Int64("group_id", editor.GroupID))
	return nil, nil
}

// groupRequest converts a validated form into the wire payload. The assistant
// none-marker and the unset state both map to a null assistant.
func groupRequest(form forms.GroupForm) (dto.CreateGroupRequest, forms.Errors) {
	normalized := form.Normalized()

	mainID, err := strconv.ParseInt(normalized.MainTeacherID, 10, 64)
	if err != nil || mainID <= 0 {
		return dto.CreateGroupRequest{}, forms.Errors{"main_teacher_id": "invalid teacher reference"}
	}

	req := dto.CreateGroupRequest{
		Name:          normalized.Name,
		Level:         normalized.Level,
		MainTeacherID: mainID,
	}
	if normalized.AssistantTeacherID != "" {
		assistantID, err := strconv.ParseInt(normalized.AssistantTeacherID, 10, 64)
		if err != nil || assistantID <= 0 {
			return dto.CreateGroupRequest{}, forms.Errors{"assistant_teacher_id": "invalid teacher reference"}
		}
		req.AssistantTeacherID = &assistantID
	}
	return req, nil
}
