package repository

import (
	"context"
	"fmt"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// GroupRepository reads and writes the groups collection, including group
// membership and the activation endpoint.
type GroupRepository struct {
	client apiClient
	store  *cache.Store
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(client apiClient, store *cache.Store) *GroupRepository {
	return &GroupRepository{client: client, store: store}
}

// List returns groups matching the filter, served from cache when fresh.
func (r *GroupRepository) List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error) {
	q := newListQuery().
		set("search", filter.Search).
		set("level", filter.Level).
		setInt("page", filter.Page).
		setInt("page_size", filter.PageSize)

	key := cache.FilterKey(cache.CollectionGroups, q.encode())
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Group, error) {
		var groups []models.Group
		if err := r.client.Get(ctx, q.path("/groups"), &groups, "could not load groups"); err != nil {
			return nil, err
		}
		return groups, nil
	})
}

// Detail loads a group with its roster, served from cache when fresh.
func (r *GroupRepository) Detail(ctx context.Context, id int64) (*models.GroupDetail, error) {
	key := cache.DetailKey(cache.CollectionGroupDetail, id)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) (*models.GroupDetail, error) {
		var detail models.GroupDetail
		if err := r.client.Get(ctx, fmt.Sprintf("/groups/%d", id), &detail, "could not load group"); err != nil {
			return nil, err
		}
		return &detail, nil
	})
}

// Create registers a new group.
func (r *GroupRepository) Create(ctx context.Context, req dto.CreateGroupRequest) (*models.Group, error) {
	var group models.Group
	if err := r.client.Post(ctx, "/groups", req, &group, "could not create group"); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update edits an existing group.
func (r *GroupRepository) Update(ctx context.Context, id int64, req dto.CreateGroupRequest) (*models.Group, error) {
	var group models.Group
	if err := r.client.Put(ctx, fmt.Sprintf("/groups/%d", id), req, &group, "could not update group"); err != nil {
		return nil, err
	}
	return &group, nil
}

// AddStudents assigns a batch of students to the group.
func (r *GroupRepository) AddStudents(ctx context.Context, groupID int64, studentIDs []int64) error {
	req := dto.AddStudentsRequest{StudentIDs: studentIDs}
	return r.client.Post(ctx, fmt.Sprintf("/groups/%d/students", groupID), req, nil, "could not add students to group")
}

// RemoveStudent removes one student from the group.
func (r *GroupRepository) RemoveStudent(ctx context.Context, groupID, studentID int64) error {
	req := dto.RemoveStudentRequest{StudentID: studentID}
	return r.client.Post(ctx, fmt.Sprintf("/groups/%d/students/remove", groupID), req, nil, "could not remove student from group")
}

// Activate performs the activation call transitioning a new student into the
// group with the derived level.
func (r *GroupRepository) Activate(ctx context.Context, req dto.ActivateStudentRequest) error {
	return r.client.Post(ctx, "/students/activate", req, nil, "could not activate student")
}
