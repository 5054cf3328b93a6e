package repository

import (
	"context"
	"fmt"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// TeacherRepository reads and writes the teachers collection.
type TeacherRepository struct {
	client apiClient
	store  *cache.Store
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(client apiClient, store *cache.Store) *TeacherRepository {
	return &TeacherRepository{client: client, store: store}
}

// List returns teachers matching the filter, served from cache when fresh.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	q := newListQuery().
		set("search", filter.Search).
		set("position", string(filter.Position)).
		setInt("page", filter.Page).
		setInt("page_size", filter.PageSize)

	key := cache.FilterKey(cache.CollectionTeachers, q.encode())
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Teacher, error) {
		var teachers []models.Teacher
		if err := r.client.Get(ctx, q.path("/teachers"), &teachers, "could not load teachers"); err != nil {
			return nil, err
		}
		return teachers, nil
	})
}

// Find loads one teacher by id.
func (r *TeacherRepository) Find(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.client.Get(ctx, fmt.Sprintf("/teachers/%d", id), &teacher, "could not load teacher"); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create registers a new teacher.
func (r *TeacherRepository) Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.client.Post(ctx, "/teachers", req, &teacher, "could not create teacher"); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Update edits an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, id int64, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.client.Put(ctx, fmt.Sprintf("/teachers/%d", id), req, &teacher, "could not update teacher"); err != nil {
		return nil, err
	}
	return &teacher, nil
}
