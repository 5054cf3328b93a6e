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

type studentRepo interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Find(ctx context.Context, id int64) (*models.Student, error)
	NewPool(ctx context.Context) (*models.NewPool, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req dto.CreateStudentRequest) (*models.Student, error)
}

// StudentService owns student intake and profile edits. Status transitions
// go through the lifecycle workflows, not here.
type StudentService struct {
	repo        studentRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs the StudentService.
func NewStudentService(repo studentRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.repo.List(ctx, filter)
}

// Find returns one student by id.
func (s *StudentService) Find(ctx context.Context, id int64) (*models.Student, error) {
	return s.repo.Find(ctx, id)
}

// NewPool returns the activation candidates, bucketed server-side.
func (s *StudentService) NewPool(ctx context.Context) (*models.NewPool, error) {
	return s.repo.NewPool(ctx)
}

// Create registers a student from the intake form. Invalid forms never reach
// the network.
func (s *StudentService) Create(ctx context.Context, form forms.StudentForm) (*models.Student, forms.Errors, error) {
	if errs := form.Validate(s.validator); !errs.Valid() {
		return nil, errs, appErrors.Clone(appErrors.ErrValidation, "invalid student form")
	}

	student, err := s.repo.Create(ctx, studentRequest(form))
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveStudent, cache.Target{})
	s.logger.Info("student created", zap.Int64("student_id", student.ID))
	return student, nil, nil
}

// Update edits a student's profile fields.
func (s *StudentService) Update(ctx context.Context, id int64, form forms.StudentForm) (*models.Student, forms.Errors, error) {
	if errs := form.Validate(s.validator); !errs.Valid() {
		return nil, errs, appErrors.Clone(appErrors.ErrValidation, "invalid student form")
	}

	student, err := s.repo.Update(ctx, id, studentRequest(form))
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationSaveStudent, cache.Target{})
	s.logger.Info("student updated", zap.Int64("student_id", id))
	return student, nil, nil
}

func studentRequest(form forms.StudentForm) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		FullName:      strings.TrimSpace(form.FullName),
		Phone:         form.Phone,
		Email:         strings.TrimSpace(form.Email),
		PaymentExpiry: form.PaymentExpiry,
	}
}
