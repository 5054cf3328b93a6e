package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type mockStatsRepo struct {
	stats *models.DashboardStats
	err   error
}

func (m *mockStatsRepo) Dashboard(context.Context) (*models.DashboardStats, error) {
	return m.stats, m.err
}

type mockPaymentStatsRepo struct {
	stats *models.PaymentStats
	err   error
}

func (m *mockPaymentStatsRepo) Stats(context.Context) (*models.PaymentStats, error) {
	return m.stats, m.err
}

func TestDashboardOverviewCombines(t *testing.T) {
	svc := NewDashboardService(
		&mockStatsRepo{stats: &models.DashboardStats{Students: 120, NewStudents: 8, Teachers: 12, Groups: 15}},
		&mockPaymentStatsRepo{stats: &models.PaymentStats{Total: 120, Active: 100, Expired: 20}},
		nil,
	)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, overview.Stats.Students)
	assert.Equal(t, 20, overview.Payments.Expired)
}

func TestDashboardOverviewFailsWhole(t *testing.T) {
	svc := NewDashboardService(
		&mockStatsRepo{stats: &models.DashboardStats{}},
		&mockPaymentStatsRepo{err: appErrors.Clone(appErrors.ErrTransport, "request failed")},
		nil,
	)

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
