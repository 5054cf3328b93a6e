package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func primed(t *testing.T, store *Store, keys ...Key) {
	t.Helper()
	for _, key := range keys {
		k := key
		_, err := store.GetOrFetch(context.Background(), k, func(context.Context) (interface{}, error) {
			return "cached", nil
		})
		require.NoError(t, err)
	}
}

func TestInvalidationTable(t *testing.T) {
	cases := []struct {
		name     string
		mutation Mutation
		target   Target
		want     []Key
	}{
		{
			"save student", MutationSaveStudent, Target{},
			[]Key{ListKey(CollectionStudents), ListKey(CollectionNewPool)},
		},
		{
			"save teacher", MutationSaveTeacher, Target{},
			[]Key{ListKey(CollectionTeachers)},
		},
		{
			"save group", MutationSaveGroup, Target{},
			[]Key{ListKey(CollectionGroups)},
		},
		{
			"edit group detail", MutationEditGroupDetail, Target{GroupID: 7},
			[]Key{ListKey(CollectionGroups), DetailKey(CollectionGroupDetail, 7)},
		},
		{
			"add students", MutationAddStudents, Target{GroupID: 7},
			[]Key{DetailKey(CollectionGroupDetail, 7), ListKey(CollectionNewPool)},
		},
		{
			"remove student", MutationRemoveStudent, Target{GroupID: 7},
			[]Key{DetailKey(CollectionGroupDetail, 7)},
		},
		{
			"activate", MutationActivateStudent, Target{},
			[]Key{ListKey(CollectionNewPool), ListKey(CollectionStudents), ListKey(CollectionGroups)},
		},
		{
			"payment period", MutationUpdatePayment, Target{},
			[]Key{ListKey(CollectionPayments), ListKey(CollectionPaymentStats)},
		},
		{
			"assignment", MutationSaveAssignment, Target{GroupID: 7, AssignmentID: 3},
			[]Key{DetailKey(CollectionAssignments, 7), DetailKey(CollectionSubmissions, 3), ListKey(CollectionAssignments)},
		},
		{
			"attendance", MutationSubmitAttendance, Target{GroupID: 7},
			[]Key{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, Keys(tc.mutation, tc.target))
		})
	}
}

func TestCoordinatorMarksOnlyDeclaredKeysStale(t *testing.T) {
	store := NewStore(zap.NewNop())
	coordinator := NewCoordinator(store, zap.NewNop())

	groupsList := ListKey(CollectionGroups)
	groupDetail := DetailKey(CollectionGroupDetail, 7)
	otherDetail := DetailKey(CollectionGroupDetail, 8)
	primed(t, store, groupsList, groupDetail, otherDetail)

	coordinator.OnSuccess(MutationRemoveStudent, Target{GroupID: 7})

	assert.False(t, store.Fresh(groupDetail))
	assert.True(t, store.Fresh(groupsList))
	assert.True(t, store.Fresh(otherDetail))
}

func TestCoordinatorActivateInvalidatesThreeCollections(t *testing.T) {
	store := NewStore(zap.NewNop())
	coordinator := NewCoordinator(store, zap.NewNop())

	pool := ListKey(CollectionNewPool)
	students := ListKey(CollectionStudents)
	groups := ListKey(CollectionGroups)
	payments := ListKey(CollectionPayments)
	primed(t, store, pool, students, groups, payments)

	coordinator.OnSuccess(MutationActivateStudent, Target{GroupID: 7})

	assert.False(t, store.Fresh(pool))
	assert.False(t, store.Fresh(students))
	assert.False(t, store.Fresh(groups))
	assert.True(t, store.Fresh(payments))
}

func TestCoordinatorAttendanceInvalidatesNothing(t *testing.T) {
	store := NewStore(zap.NewNop())
	coordinator := NewCoordinator(store, zap.NewNop())

	students := ListKey(CollectionStudents)
	primed(t, store, students)

	coordinator.OnSuccess(MutationSubmitAttendance, Target{GroupID: 7})

	assert.True(t, store.Fresh(students))
}
