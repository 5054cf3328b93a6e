package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
	"github.com/SawaDev/remix-of-eduadmin-pro/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exporter interface {
	Render(data export.Dataset) ([]byte, error)
}

type rosterSource interface {
	Detail(ctx context.Context, id int64) (*models.GroupDetail, error)
}

type paymentSource interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

// ExportService renders group rosters and payment reports as CSV or PDF.
type ExportService struct {
	groups   rosterSource
	payments paymentSource
	logger   *zap.Logger
}

// NewExportService constructs the ExportService.
func NewExportService(groups rosterSource, payments paymentSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{groups: groups, payments: payments, logger: logger}
}

func exporterFor(format ExportFormat) (exporter, error) {
	switch format {
	case FormatCSV:
		return export.NewCSVExporter(), nil
	case FormatPDF:
		return export.NewPDFExporter(), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// Roster renders the group's member list.
func (s *ExportService) Roster(ctx context.Context, groupID int64, format ExportFormat) ([]byte, error) {
	renderer, err := exporterFor(format)
	if err != nil {
		return nil, err
	}

	detail, err := s.groups.Detail(ctx, groupID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	data := export.Dataset{
		Title:   fmt.Sprintf("Roster: %s (%s)", detail.Name, detail.Level),
		Headers: []string{"ID", "Full Name", "Phone", "Status", "Payment Expiry"},
	}
	for _, student := range detail.Students {
		data.Rows = append(data.Rows, map[string]string{
			"ID":             strconv.FormatInt(student.ID, 10),
			"Full Name":      student.FullName,
			"Phone":          student.Phone,
			"Status":         string(student.Status),
			"Payment Expiry": student.PaymentExpiry,
		})
	}

	out, err := renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render roster: %w", err)
	}
	s.logger.Info("roster exported", zap.Int64("group_id", groupID), zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return out, nil
}

// PaymentReport renders the payment records matching the filter.
func (s *ExportService) PaymentReport(ctx context.Context, filter models.PaymentFilter, format ExportFormat) ([]byte, error) {
	renderer, err := exporterFor(format)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	data := export.Dataset{
		Title:   "Payment Report",
		Headers: []string{"ID", "Student", "Start", "End", "Days Remaining", "Status"},
	}
	for _, p := range payments {
		data.Rows = append(data.Rows, map[string]string{
			"ID":             strconv.FormatInt(p.ID, 10),
			"Student":        p.StudentName,
			"Start":          p.StartDate,
			"End":            p.EndDate,
			"Days Remaining": strconv.Itoa(p.DaysRemaining),
			"Status":         string(p.Status),
		})
	}

	out, err := renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render payment report: %w", err)
	}
	s.logger.Info("payment report exported", zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return out, nil
}
