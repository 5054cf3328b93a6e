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

type attendanceRepo interface {
	Submit(ctx context.Context, req dto.SubmitAttendanceRequest) error
}

// AttendanceService manages session-local attendance sheets and their single
// submit call. Saved marks have no read-back endpoint, so the sheet is the
// only record of them within a session.
type AttendanceService struct {
	repo        attendanceRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs the AttendanceService.
func NewAttendanceService(repo attendanceRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// OpenSheet starts a draft sheet for one group and date.
func (s *AttendanceService) OpenSheet(groupID int64, date string) (*models.AttendanceSheet, error) {
	if groupID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group is required")
	}
	if err := s.validator.Var(date, "required,ymd"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return models.NewAttendanceSheet(groupID, date), nil
}

// Save submits the whole sheet in one call; partial submission is impossible.
// The sheet is kept afterwards as the session's record of the saved marks.
func (s *AttendanceService) Save(ctx context.Context, sheet *models.AttendanceSheet) error {
	if sheet.Len() == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no attendance marked")
	}

	req := dto.SubmitAttendanceRequest{
		GroupID: sheet.GroupID,
		Date:    sheet.Date,
		Entries: sheet.Entries(),
	}
	if err := s.repo.Submit(ctx, req); err != nil {
		return appErrors.FromError(err)
	}

	// Per the invalidation table this marks nothing stale: there is no
	// attendance read path to go stale.
	s.coordinator.OnSuccess(cache.MutationSubmitAttendance, cache.Target{GroupID: sheet.GroupID})
	s.logger.Info("attendance saved",
		zap.Int64("group_id", sheet.GroupID),
		zap.String("date", sheet.Date),
		zap.Int("entries", len(req.Entries)),
	)
	return nil
}
