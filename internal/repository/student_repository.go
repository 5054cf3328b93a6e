package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// StudentRepository reads and writes the students collection.
type StudentRepository struct {
	client apiClient
	store  *cache.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(client apiClient, store *cache.Store) *StudentRepository {
	return &StudentRepository{client: client, store: store}
}

// List returns students matching the filter, served from cache when fresh.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	q := newListQuery().
		set("search", filter.Search).
		set("status", string(filter.Status)).
		setInt("page", filter.Page).
		setInt("page_size", filter.PageSize)
	if filter.GroupID != nil {
		q.set("group_id", strconv.FormatInt(*filter.GroupID, 10))
	}

	key := cache.FilterKey(cache.CollectionStudents, q.encode())
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Student, error) {
		var students []models.Student
		if err := r.client.Get(ctx, q.path("/students"), &students, "could not load students"); err != nil {
			return nil, err
		}
		return students, nil
	})
}

// Find loads one student by id.
func (r *StudentRepository) Find(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := r.client.Get(ctx, fmt.Sprintf("/students/%d", id), &student, "could not load student"); err != nil {
		return nil, err
	}
	return &student, nil
}

// NewPool returns the two-bucket listing of unassigned students.
func (r *StudentRepository) NewPool(ctx context.Context) (*models.NewPool, error) {
	key := cache.ListKey(cache.CollectionNewPool)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) (*models.NewPool, error) {
		var pool models.NewPool
		if err := r.client.Get(ctx, "/students/new-pool", &pool, "could not load unassigned students"); err != nil {
			return nil, err
		}
		return &pool, nil
	})
}

// Create registers a new student.
func (r *StudentRepository) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	var student models.Student
	if err := r.client.Post(ctx, "/students", req, &student, "could not create student"); err != nil {
		return nil, err
	}
	return &student, nil
}

// Update edits an existing student.
func (r *StudentRepository) Update(ctx context.Context, id int64, req dto.CreateStudentRequest) (*models.Student, error) {
	var student models.Student
	if err := r.client.Put(ctx, fmt.Sprintf("/students/%d", id), req, &student, "could not update student"); err != nil {
		return nil, err
	}
	return &student, nil
}
