package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

type mockPaymentSource struct {
	payments []models.Payment
}

func (m *mockPaymentSource) List(context.Context, models.PaymentFilter) ([]models.Payment, error) {
	return m.payments, nil
}

func exportFixture() *ExportService {
	groups := &mockGroupRepo{details: map[int64]*models.GroupDetail{
		7: {
			Group: models.Group{ID: 7, Name: "B1 Evening", Level: "B1"},
			Students: []models.Student{
				{ID: 1, FullName: "Aziza Karimova", Phone: "998901234567", Status: models.StudentStatusActive, PaymentExpiry: "2024-09-01"},
				{ID: 2, FullName: "Jasur Toshev", Phone: "998909876543", Status: models.StudentStatusExpired},
			},
		},
	}}
	payments := &mockPaymentSource{payments: []models.Payment{
		{ID: 5, StudentName: "Aziza Karimova", StartDate: "2024-06-01", EndDate: "2024-06-30", DaysRemaining: 12, Status: models.PaymentStatusActive},
	}}
	return NewExportService(groups, payments, nil)
}

func TestRosterCSV(t *testing.T) {
	svc := exportFixture()

	out, err := svc.Roster(context.Background(), 7, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Full Name,Phone,Status,Payment Expiry", lines[0])
	assert.Contains(t, lines[1], "Aziza Karimova")
	assert.Contains(t, lines[2], "EXPIRED")
}

func TestRosterPDF(t *testing.T) {
	svc := exportFixture()

	out, err := svc.Roster(context.Background(), 7, FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRosterUnknownGroup(t *testing.T) {
	svc := exportFixture()

	_, err := svc.Roster(context.Background(), 99, FormatCSV)
	require.Error(t, err)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := exportFixture()

	_, err := svc.Roster(context.Background(), 7, ExportFormat("xlsx"))
	require.Error(t, err)
}

func TestPaymentReportCSV(t *testing.T) {
	svc := exportFixture()

	out, err := svc.PaymentReport(context.Background(), models.PaymentFilter{}, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2024-06-30")
	assert.Contains(t, lines[1], "12")
}
