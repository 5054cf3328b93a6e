package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/forms"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type mockAssignmentRepo struct {
	created  []dto.CreateAssignmentRequest
	graded   map[int64]int
	gradeErr error
}

func (m *mockAssignmentRepo) List(context.Context) ([]models.Assignment, error) { return nil, nil }

func (m *mockAssignmentRepo) ListByGroup(context.Context, int64) ([]models.Assignment, error) {
	return nil, nil
}

func (m *mockAssignmentRepo) Create(_ context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	m.created = append(m.created, req)
	return &models.Assignment{ID: 3, GroupID: req.GroupID, Title: req.Title}, nil
}

func (m *mockAssignmentRepo) Submissions(context.Context, int64) ([]models.Submission, error) {
	return nil, nil
}

func (m *mockAssignmentRepo) Grade(_ context.Context, submissionID int64, grade int) error {
	if m.gradeErr != nil {
		return m.gradeErr
	}
	if m.graded == nil {
		m.graded = make(map[int64]int)
	}
	m.graded[submissionID] = grade
	return nil
}

func newAssignmentFixture(repo *mockAssignmentRepo) (*AssignmentService, *recordingCoordinator) {
	coordinator := &recordingCoordinator{}
	return NewAssignmentService(repo, coordinator, forms.New(), zap.NewNop()), coordinator
}

func TestAssignmentCreateValidates(t *testing.T) {
	repo := &mockAssignmentRepo{}
	svc, coordinator := newAssignmentFixture(repo)

	_, err := svc.Create(context.Background(), CreateAssignmentInput{GroupID: 7})
	require.Error(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, coordinator.calls)

	_, err = svc.Create(context.Background(), CreateAssignmentInput{GroupID: 7, Title: "Unit 4 essay", DueDate: "not-a-date"})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestAssignmentCreateInvalidatesGroupLists(t *testing.T) {
	repo := &mockAssignmentRepo{}
	svc, coordinator := newAssignmentFixture(repo)

	assignment, err := svc.Create(context.Background(), CreateAssignmentInput{GroupID: 7, Title: "Unit 4 essay", DueDate: "2024-06-01"})
	require.NoError(t, err)
	require.NotNil(t, assignment)

	require.Equal(t, []cache.Mutation{cache.MutationSaveAssignment}, coordinator.calls)
	assert.Equal(t, cache.Target{GroupID: 7, AssignmentID: 3}, coordinator.targets[0])
}

func TestGradeDraftLifecycle(t *testing.T) {
	repo := &mockAssignmentRepo{}
	svc, coordinator := newAssignmentFixture(repo)

	draft := NewGradeDraft(11, 3, 7)

	// Nothing staged: no call.
	require.Error(t, svc.CommitGrade(context.Background(), draft))
	assert.Empty(t, repo.graded)

	require.Error(t, draft.Set(101))
	require.NoError(t, draft.Set(85))
	require.True(t, draft.Pending())

	require.NoError(t, svc.CommitGrade(context.Background(), draft))
	assert.Equal(t, 85, repo.graded[11])
	assert.False(t, draft.Pending())
	require.Len(t, coordinator.calls, 1)
	assert.Equal(t, cache.Target{GroupID: 7, AssignmentID: 3}, coordinator.targets[0])
}

func TestGradeCommitFailureKeepsDraft(t *testing.T) {
	repo := &mockAssignmentRepo{gradeErr: appErrors.Clone(appErrors.ErrTransport, "network down")}
	svc, coordinator := newAssignmentFixture(repo)

	draft := NewGradeDraft(11, 3, 7)
	require.NoError(t, draft.Set(85))

	require.Error(t, svc.CommitGrade(context.Background(), draft))
	assert.True(t, draft.Pending())
	assert.Empty(t, coordinator.calls)

	repo.gradeErr = nil
	require.NoError(t, svc.CommitGrade(context.Background(), draft))
	assert.Equal(t, 85, repo.graded[11])
}
