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

type mockProfileRepo struct {
	created []dto.CreateStudentRequest
	updated map[int64]dto.CreateStudentRequest
}

func (m *mockProfileRepo) List(context.Context, models.StudentFilter) ([]models.Student, error) {
	return nil, nil
}

func (m *mockProfileRepo) Find(context.Context, int64) (*models.Student, error) { return nil, nil }

func (m *mockProfileRepo) NewPool(context.Context) (*models.NewPool, error) { return nil, nil }

func (m *mockProfileRepo) Create(_ context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	m.created = append(m.created, req)
	return &models.Student{ID: 9, FullName: req.FullName, Status: models.StudentStatusNew}, nil
}

func (m *mockProfileRepo) Update(_ context.Context, id int64, req dto.CreateStudentRequest) (*models.Student, error) {
	if m.updated == nil {
		m.updated = make(map[int64]dto.CreateStudentRequest)
	}
	m.updated[id] = req
	return &models.Student{ID: id, FullName: req.FullName}, nil
}

func TestStudentCreateRejectsInvalidForm(t *testing.T) {
	repo := &mockProfileRepo{}
	coordinator := &recordingCoordinator{}
	svc := NewStudentService(repo, coordinator, forms.New(), zap.NewNop())

	_, errs, err := svc.Create(context.Background(), forms.StudentForm{FullName: "  ", Phone: "99890"})
	require.Error(t, err)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "phone")
	assert.Empty(t, repo.created)
	assert.Empty(t, coordinator.calls)
}

func TestStudentCreateTrimsAndInvalidates(t *testing.T) {
	repo := &mockProfileRepo{}
	coordinator := &recordingCoordinator{}
	svc := NewStudentService(repo, coordinator, forms.New(), zap.NewNop())

	student, errs, err := svc.Create(context.Background(), forms.StudentForm{
		FullName: "  Aziza Karimova ",
		Phone:    "998901234567",
	})
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	require.NotNil(t, student)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Aziza Karimova", repo.created[0].FullName)
	assert.Equal(t, []cache.Mutation{cache.MutationSaveStudent}, coordinator.calls)
}

func TestStudentUpdateInvalidates(t *testing.T) {
	repo := &mockProfileRepo{}
	coordinator := &recordingCoordinator{}
	svc := NewStudentService(repo, coordinator, forms.New(), zap.NewNop())

	_, errs, err := svc.Update(context.Background(), 9, forms.StudentForm{
		FullName:      "Aziza Karimova",
		Phone:         "998901234567",
		PaymentExpiry: "2024-09-01",
	})
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, "2024-09-01", repo.updated[9].PaymentExpiry)
	assert.Equal(t, []cache.Mutation{cache.MutationSaveStudent}, coordinator.calls)
}
