package cache

import "go.uber.org/zap"

// Mutation names a write operation against the admin API.
type Mutation string

const (
	MutationSaveStudent      Mutation = "save_student"
	MutationSaveTeacher      Mutation = "save_teacher"
	MutationSaveGroup        Mutation = "save_group"
	MutationEditGroupDetail  Mutation = "edit_group_detail"
	MutationAddStudents      Mutation = "add_students_to_group"
	MutationRemoveStudent    Mutation = "remove_student_from_group"
	MutationActivateStudent  Mutation = "activate_student"
	MutationUpdatePayment    Mutation = "update_payment_period"
	MutationSaveAssignment   Mutation = "save_assignment"
	MutationSubmitAttendance Mutation = "submit_attendance"
)

// Target carries the entity ids a parameterised invalidation needs.
type Target struct {
	GroupID      int64
	AssignmentID int64
}

// scope selects how a rule expands into a concrete key.
type scope int

const (
	scopeList scope = iota
	scopeGroup
	scopeAssignment
)

type rule struct {
	collection Collection
	scope      scope
}

// invalidationTable is the single authority on which cached collections each
// mutation staleness-marks. No other component may invalidate ad hoc.
var invalidationTable = map[Mutation][]rule{
	MutationSaveStudent: {
		{collection: CollectionStudents},
		{collection: CollectionNewPool},
	},
	MutationSaveTeacher: {
		{collection: CollectionTeachers},
	},
	MutationSaveGroup: {
		{collection: CollectionGroups},
	},
	MutationEditGroupDetail: {
		{collection: CollectionGroups},
		{collection: CollectionGroupDetail, scope: scopeGroup},
	},
	MutationAddStudents: {
		{collection: CollectionGroupDetail, scope: scopeGroup},
		{collection: CollectionNewPool},
	},
	MutationRemoveStudent: {
		{collection: CollectionGroupDetail, scope: scopeGroup},
	},
	MutationActivateStudent: {
		{collection: CollectionNewPool},
		{collection: CollectionStudents},
		{collection: CollectionGroups},
	},
	MutationUpdatePayment: {
		{collection: CollectionPayments},
		{collection: CollectionPaymentStats},
	},
	MutationSaveAssignment: {
		{collection: CollectionAssignments, scope: scopeGroup},
		{collection: CollectionSubmissions, scope: scopeAssignment},
		{collection: CollectionAssignments},
	},
	// Attendance has no read-back endpoint; nothing cached can go stale.
	MutationSubmitAttendance: {},
}

// Coordinator applies the invalidation table to a Store after successful
// mutations. It is the only component allowed to invalidate.
type Coordinator struct {
	store  *Store
	logger *zap.Logger
}

// NewCoordinator constructs a Coordinator over the store.
func NewCoordinator(store *Store, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{store: store, logger: logger}
}

// Keys expands the mutation's rules into concrete cache keys.
func Keys(m Mutation, target Target) []Key {
	rules, ok := invalidationTable[m]
	if !ok {
		return nil
	}
	keys := make([]Key, 0, len(rules))
	for _, r := range rules {
		switch r.scope {
		case scopeGroup:
			if target.GroupID == 0 {
				continue
			}
			keys = append(keys, DetailKey(r.collection, target.GroupID))
		case scopeAssignment:
			if target.AssignmentID == 0 {
				continue
			}
			keys = append(keys, DetailKey(r.collection, target.AssignmentID))
		default:
			keys = append(keys, ListKey(r.collection))
		}
	}
	return keys
}

// OnSuccess marks every collection the mutation could have changed as stale.
// Must be called only after the mutation succeeded, never before. List rules
// invalidate the whole collection (every filter variant); scoped rules
// invalidate exactly the one entity's entry.
func (c *Coordinator) OnSuccess(m Mutation, target Target) {
	rules := invalidationTable[m]
	for _, r := range rules {
		switch r.scope {
		case scopeGroup:
			if target.GroupID != 0 {
				c.store.Invalidate(DetailKey(r.collection, target.GroupID))
			}
		case scopeAssignment:
			if target.AssignmentID != 0 {
				c.store.Invalidate(DetailKey(r.collection, target.AssignmentID))
			}
		default:
			c.store.InvalidateCollection(r.collection)
		}
	}
	c.logger.Debug("invalidated after mutation",
		zap.String("mutation", string(m)),
		zap.Int("rules", len(rules)),
	)
}
