package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type paymentRepo interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	Stats(ctx context.Context) (*models.PaymentStats, error)
	UpdatePeriod(ctx context.Context, id int64, req dto.PaymentPeriodRequest) (*models.Payment, error)
}

// PaymentService exposes payment listings and the period editor. Day counts
// and statuses come back computed; the client never derives them locally.
type PaymentService struct {
	repo        paymentRepo
	coordinator invalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewPaymentService constructs the PaymentService.
func NewPaymentService(repo paymentRepo, coordinator invalidator, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = forms.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, coordinator: coordinator, validator: validate, logger: logger}
}

// List returns payment records matching the filter.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	return s.repo.List(ctx, filter)
}

// Stats returns the aggregate payment counters.
func (s *PaymentService) Stats(ctx context.Context) (*models.PaymentStats, error) {
	return s.repo.Stats(ctx)
}

// UpdatePeriod edits a payment record's date range. Both dates must be
// well-formed and the start must not follow the end; nothing is sent until
// the input passes.
func (s *PaymentService) UpdatePeriod(ctx context.Context, paymentID int64, startDate, endDate string) (*models.Payment, forms.Errors, error) {
	errs := forms.Validate(s.validator,
		forms.Field{Name: "start_date", Value: startDate, Rules: []forms.Rule{
			{Tag: "required", Message: "start date is required"},
			{Tag: "ymd", Message: "start date must be YYYY-MM-DD"},
		}},
		forms.Field{Name: "end_date", Value: endDate, Rules: []forms.Rule{
			{Tag: "required", Message: "end date is required"},
			{Tag: "ymd", Message: "end date must be YYYY-MM-DD"},
		}},
	)
	if errs.Valid() {
		start, _ := time.Parse("2006-01-02", startDate)
		end, _ := time.Parse("2006-01-02", endDate)
		if end.Before(start) {
			errs = forms.Errors{"end_date": "end date must not precede the start date"}
		}
	}
	if !errs.Valid() {
		return nil, errs, appErrors.Clone(appErrors.ErrValidation, "invalid payment period")
	}

	payment, err := s.repo.UpdatePeriod(ctx, paymentID, dto.PaymentPeriodRequest{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}

	s.coordinator.OnSuccess(cache.MutationUpdatePayment, cache.Target{})
	s.logger.Info("payment period updated", zap.Int64("payment_id", paymentID))
	return payment, nil, nil
}
