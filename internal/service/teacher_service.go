package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type teacherRepo interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
	Find(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id int64, req dto.CreateTeacherRequest) (*models.Teacher, error)
}

// TeacherService owns teacher directory maintenance.
type TeacherService struct {
	repo        teacherRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherService constructs the TeacherService.
func NewTeacherService(repo teacherRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// List returns teachers matching the filter.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	return s.repo.List(ctx, filter)
}

// Find returns one teacher by id.
func (s *TeacherService) Find(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.repo.Find(ctx, id)
}

// Create registers a teacher from the form.
func (s *TeacherService) Create(ctx context.Context, form forms.TeacherForm) (*models.Teacher, forms.Errors, error) {
	if errs := form.Validate(s.validator); !errs.Valid() {
		return nil, errs, appErrors.Clone(appErrors.ErrValidation, "invalid teacher form")
	}

	teacher, err := s.repo.Create(ctx, teacherRequest(form))
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveTeacher, cache.Target{})
	s.logger.Info("teacher created", zap.Int64("teacher_id", teacher.ID))
	return teacher, nil, nil
}

// Update edits a teacher's profile fields.
func (s *TeacherService) Update(ctx context.Context, id int64, form forms.TeacherForm) (*models.Teacher, forms.Errors, error) {
	if errs := form.Validate(s.validator); !errs.Valid() {
		return nil, errs, appErrors.Clone(appErrors.ErrValidation, "invalid teacher form")
	}

	teacher, err := s.repo.Update(ctx, id, teacherRequest(form))
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveTeacher, cache.Target{})
	s.logger.Info("teacher updated", zap.Int64("teacher_id", id))
	return teacher, nil, nil
}

func teacherRequest(form forms.TeacherForm) dto.CreateTeacherRequest {
	return dto.CreateTeacherRequest{
		FullName: strings.TrimSpace(form.FullName),
		Phone:    form.Phone,
		Email:    strings.TrimSpace(form.Email),
		Position: form.Position,
	}
}
