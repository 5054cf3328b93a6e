package repository

import (
	"context"
	"fmt"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// AssignmentRepository reads and writes assignments and their submissions.
type AssignmentRepository struct {
	client apiClient
	store  *cache.Store
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(client apiClient, store *cache.Store) *AssignmentRepository {
	return &AssignmentRepository{client: client, store: store}
}

// List returns every assignment visible to the caller.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	key := cache.ListKey(cache.CollectionAssignments)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Assignment, error) {
		var assignments []models.Assignment
		if err := r.client.Get(ctx, "/assignments", &assignments, "could not load assignments"); err != nil {
			return nil, err
		}
		return assignments, nil
	})
}

// ListByGroup returns the group's assignments, served from cache when fresh.
func (r *AssignmentRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Assignment, error) {
	key := cache.DetailKey(cache.CollectionAssignments, groupID)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Assignment, error) {
		var assignments []models.Assignment
		if err := r.client.Get(ctx, fmt.Sprintf("/groups/%d/assignments", groupID), &assignments, "could not load assignments"); err != nil {
			return nil, err
		}
		return assignments, nil
	})
}

// Create publishes a new assignment to a group.
func (r *AssignmentRepository) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.client.Post(ctx, "/assignments", req, &assignment, "could not create assignment"); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Submissions returns an assignment's submissions, served from cache when fresh.
func (r *AssignmentRepository) Submissions(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	key := cache.DetailKey(cache.CollectionSubmissions, assignmentID)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Submission, error) {
		var submissions []models.Submission
		if err := r.client.Get(ctx, fmt.Sprintf("/assignments/%d/submissions", assignmentID), &submissions, "could not load submissions"); err != nil {
			return nil, err
		}
		return submissions, nil
	})
}

// Grade commits a grade for one submission.
func (r *AssignmentRepository) Grade(ctx context.Context, submissionID int64, grade int) error {
	req := dto.GradeSubmissionRequest{Grade: grade}
	return r.client.Patch(ctx, fmt.Sprintf("/submissions/%d/grade", submissionID), req, nil, "could not save grade")
}
