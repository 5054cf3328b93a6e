package cache

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Collection names a cached query family.
type Collection string

const (
	CollectionStudents     Collection = "students"
	CollectionNewPool      Collection = "new_pool"
	CollectionTeachers     Collection = "teachers"
	CollectionGroups       Collection = "groups"
	CollectionGroupDetail  Collection = "group_detail"
	CollectionPayments     Collection = "payments"
	CollectionPaymentStats Collection = "payment_stats"
	CollectionAssignments  Collection = "assignments"
	CollectionSubmissions  Collection = "submissions"
	CollectionDashboard    Collection = "dashboard"
)

// Key identifies one cached query. List queries carry an empty ID.
type Key struct {
	Collection Collection
	ID         string
}

// ListKey builds the key for a collection-wide query.
func ListKey(c Collection) Key {
	return Key{Collection: c}
}

// FilterKey builds the key for a filtered list query. The fingerprint must be
// a stable rendering of the filter so equal queries share one entry.
func FilterKey(c Collection, fingerprint string) Key {
	return Key{Collection: c, ID: fingerprint}
}

// DetailKey builds the key for an entity-scoped query.
func DetailKey(c Collection, id int64) Key {
	return Key{Collection: c, ID: strconv.FormatInt(id, 10)}
}

type entry struct {
	value      interface{}
	fresh      bool
	generation uint64
}

// Store is a short-lived in-process query cache. Entries live until invalidated
// or until the owning scope is closed; nothing is persisted. Reads of a stale
// entry re-fetch; a fetch that raced an invalidation is never stored as fresh.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	logger  *zap.Logger

	hits   uint64
	misses uint64
}

// NewStore constructs an empty Store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{entries: make(map[Key]*entry), logger: logger}
}

// GetOrFetch returns the cached value when fresh, otherwise runs fetch and
// stores the result. The fetched value is returned to the caller even when a
// concurrent invalidation prevented it from being cached.
func (s *Store) GetOrFetch(ctx context.Context, key Key, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && e.fresh {
		s.hits++
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	s.misses++
	gen := e.generation
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[key]; ok && current.generation == gen {
		current.value = value
		current.fresh = true
	} else {
		// An invalidation overtook this fetch; the result may be stale, so it
		// is handed to the caller but not cached.
		s.logger.Debug("discarding overtaken fetch",
			zap.String("collection", string(key.Collection)),
			zap.String("id", key.ID),
		)
	}
	return value, nil
}

// Invalidate marks the key stale so the next read re-fetches. Invalidating an
// already-stale key is a no-op beyond bumping the generation.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.fresh = false
	e.generation++
}

// InvalidateCollection marks every cached query of the collection stale,
// whatever filter it was keyed under. Counterpart of pattern deletion in a
// keyspace cache.
func (s *Store) InvalidateCollection(c Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if key.Collection == c {
			e.fresh = false
			e.generation++
		}
	}
}

// Fresh reports whether a fresh value is cached for the key.
func (s *Store) Fresh(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return ok && e.fresh
}

// Stats returns hit and miss counts.
func (s *Store) Stats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

// Close discards every entry. Called when the owning view scope unmounts.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]*entry)
}

// Fetch is a typed wrapper over Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return typed, nil
}
