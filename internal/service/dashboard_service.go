package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type statsRepo interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type paymentStatsRepo interface {
	Stats(ctx context.Context) (*models.PaymentStats, error)
}

// Overview is the dashboard landing view: entity counters plus the payment
// summary cards.
type Overview struct {
	Stats    models.DashboardStats
	Payments models.PaymentStats
}

// DashboardService assembles the landing-page overview.
type DashboardService struct {
	stats    statsRepo
	payments paymentStatsRepo
	logger   *zap.Logger
}

// NewDashboardService constructs the DashboardService.
func NewDashboardService(stats statsRepo, payments paymentStatsRepo, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{stats: stats, payments: payments, logger: logger}
}

// Stats returns the entity counters alone.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return s.stats.Dashboard(ctx)
}

// Overview returns the counters and payment summary together. Either half
// failing fails the whole view.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	payments, err := s.payments.Stats(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return &Overview{Stats: *stats, Payments: *payments}, nil
}
