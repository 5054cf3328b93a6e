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
)

type mockTeacherRepo struct {
	created []dto.CreateTeacherRequest
}

func (m *mockTeacherRepo) List(context.Context, models.TeacherFilter) ([]models.Teacher, error) {
	return nil, nil
}

func (m *mockTeacherRepo) Find(context.Context, int64) (*models.Teacher, error) { return nil, nil }

func (m *mockTeacherRepo) Create(_ context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	m.created = append(m.created, req)
	return &models.Teacher{ID: 4, FullName: req.FullName}, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, id int64, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	return &models.Teacher{ID: id, FullName: req.FullName}, nil
}

func TestTeacherCreateRequiresEmailAndPosition(t *testing.T) {
	repo := &mockTeacherRepo{}
	coordinator := &recordingCoordinator{}
	svc := NewTeacherService(repo, coordinator, forms.New(), zap.NewNop())

	_, errs, err := svc.Create(context.Background(), forms.TeacherForm{
		FullName: "Jasur Toshev",
		Phone:    "998909876543",
		Position: "principal",
	})
	require.Error(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "position")
	assert.Empty(t, repo.created)
	assert.Empty(t, coordinator.calls)
}

func TestTeacherCreateInvalidates(t *testing.T) {
	repo := &mockTeacherRepo{}
	coordinator := &recordingCoordinator{}
	svc := NewTeacherService(repo, coordinator, forms.New(), zap.NewNop())

	teacher, errs, err := svc.Create(context.Background(), forms.TeacherForm{
		FullName: "Jasur Toshev",
		Phone:    "998909876543",
		Email:    "jasur@example.com",
		Position: "main",
	})
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	require.NotNil(t, teacher)
	assert.Equal(t, []cache.Mutation{cache.MutationSaveTeacher}, coordinator.calls)
}

func TestTeacherUpdateInvalidates(t *testing.T) {
	coordinator := &recordingCoordinator{}
	svc := NewTeacherService(&mockTeacherRepo{}, coordinator, forms.New(), zap.NewNop())

	_, errs, err := svc.Update(context.Background(), 4, forms.TeacherForm{
		FullName: "Jasur Toshev",
		Phone:    "998909876543",
		Email:    "jasur@example.com",
		Position: "assistant",
	})
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, []cache.Mutation{cache.MutationSaveTeacher}, coordinator.calls)
}
