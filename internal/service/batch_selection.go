package service

import appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"

// BatchSelection is a de-duplicated, capped set of student ids picked for a
// batch add. Selections keep insertion order for predictable payloads.
type BatchSelection struct {
	ids []int64
	set map[int64]struct{}
}

// NewBatchSelection starts an empty selection.
func NewBatchSelection() *BatchSelection {
	return &BatchSelection{set: make(map[int64]struct{})}
}

// Add includes one student; duplicates are ignored. Returns an error when the
// selection is already at capacity.
func (b *BatchSelection) Add(id int64) error {
	if _, ok := b.set[id]; ok {
		return nil
	}
	if len(b.ids) >= MaxBatchAdd {
		return appErrors.FromError(appErrors.ErrCapacity)
	}
	b.set[id] = struct{}{}
	b.ids = append(b.ids, id)
	return nil
}

// AddAll includes every id whose union with the current selection fits the
// cap. When the union would exceed it, the selection is left unchanged and a
// capacity error is returned.
func (b *BatchSelection) AddAll(ids []int64) error {
	fresh := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := b.set[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}

	if len(b.ids)+len(fresh) > MaxBatchAdd {
		return appErrors.FromError(appErrors.ErrCapacity)
	}
	for _, id := range fresh {
		b.set[id] = struct{}{}
		b.ids = append(b.ids, id)
	}
	return nil
}

// Remove drops one student from the selection.
func (b *BatchSelection) Remove(id int64) {
	if _, ok := b.set[id]; !ok {
		return
	}
	delete(b.set, id)
	for i, existing := range b.ids {
		if existing == id {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			break
		}
	}
}

// Len returns the selection size.
func (b *BatchSelection) Len() int {
	return len(b.ids)
}

// IDs returns the selected ids in insertion order.
func (b *BatchSelection) IDs() []int64 {
	out := make([]int64, len(b.ids))
	copy(out, b.ids)
	return out
}
