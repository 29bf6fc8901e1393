package usecase

import (
	"channel-insights/domain/apperror"
	"channel-insights/domain/model"
)

// SelectionTracker is a bounded, insertion-ordered set of video ids.
// It is not safe for concurrent use; ChannelSession guards it.
type SelectionTracker struct {
	capacity int
	order    []string
	members  map[string]struct{}
}

// NewSelectionTracker creates a tracker holding at most capacity ids;
// a non-positive capacity means model.MaxSelection.
func NewSelectionTracker(capacity int) *SelectionTracker {
	if capacity <= 0 {
		capacity = model.MaxSelection
	}
	return &SelectionTracker{
		capacity: capacity,
		members:  make(map[string]struct{}),
	}
}

// Add inserts id. Adding a present id is a no-op; adding a new id to a full
// set fails with ErrCapacityExceeded and leaves the set unchanged.
func (s *SelectionTracker) Add(id string) error {
	if s.Has(id) {
		return nil
	}
	if len(s.order) >= s.capacity {
		return apperror.ErrCapacityExceeded
	}
	s.order = append(s.order, id)
	s.members[id] = struct{}{}
	return nil
}

// Remove deletes id if present
func (s *SelectionTracker) Remove(id string) {
	if !s.Has(id) {
		return
	}
	delete(s.members, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SelectionTracker) Has(id string) bool {
	_, ok := s.members[id]
	return ok
}

func (s *SelectionTracker) Size() int {
	return len(s.order)
}

func (s *SelectionTracker) Capacity() int {
	return s.capacity
}

// IDs returns a copy of the selected ids in insertion order
func (s *SelectionTracker) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// SelectAll replaces the selection with the first candidates, up to capacity
func (s *SelectionTracker) SelectAll(candidates []string) {
	s.Clear()
	for _, id := range candidates {
		if len(s.order) >= s.capacity {
			break
		}
		_ = s.Add(id)
	}
}

func (s *SelectionTracker) Clear() {
	s.order = nil
	s.members = make(map[string]struct{})
}

// Status reports the "select all" control state for totalLoaded videos
func (s *SelectionTracker) Status(totalLoaded int) model.SelectionStatus {
	selectable := totalLoaded
	if selectable > s.capacity {
		selectable = s.capacity
	}
	if selectable < 0 {
		selectable = 0
	}

	status := model.SelectionStatus{
		Selected:   len(s.order),
		Selectable: selectable,
		Disabled:   selectable == 0,
	}
	switch {
	case selectable == 0 || status.Selected == 0:
		status.State = model.SelectionNone
	case status.Selected >= selectable:
		status.State = model.SelectionAll
	default:
		status.State = model.SelectionPartial
	}
	return status
}
