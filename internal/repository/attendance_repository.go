package repository

import (
	"context"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
)

// AttendanceRepository submits attendance sheets. The API exposes no read-back
// endpoint for saved marks, so this repository is write-only and caches nothing.
type AttendanceRepository struct {
	client apiClient
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(client apiClient) *AttendanceRepository {
	return &AttendanceRepository{client: client}
}

// Submit sends one date's marks for a group in a single call.
func (r *AttendanceRepository) Submit(ctx context.Context, req dto.SubmitAttendanceRequest) error {
	return r.client.Post(ctx, "/attendance", req, nil, "could not save attendance")
}
