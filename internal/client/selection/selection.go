// Package selection tracks which linked accounts are in scope for
// analytics requests. A Set is owned by the session: created at login and
// dropped at logout.
package selection

import (
	"slices"
	"sync"

	"github.com/wbdash/wbdash/internal/client/models"
)

// Set is a concurrency-safe set of linked account ids. The zero value is
// an empty set ready to use. An empty set means "no data", never "all".
type Set struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func New() *Set {
	return &Set{ids: make(map[int64]struct{})}
}

// Add inserts id; adding an id already present is a no-op.
func (s *Set) Add(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove deletes id; removing an absent id is a no-op.
func (s *Set) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{})
}

// SelectAll replaces the set with the ids of accounts.
func (s *Set) SelectAll(accounts []models.LinkedAccount) {
	ids := make(map[int64]struct{}, len(accounts))
	for _, a := range accounts {
		ids[a.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ids
}

// Retain drops every id not present in keep.
func (s *Set) Retain(keep []int64) {
	allowed := make(map[int64]struct{}, len(keep))
	for _, id := range keep {
		allowed[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ids {
		if _, ok := allowed[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Set) Has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the members in ascending order.
func (s *Set) IDs() []int64 {
	s.mu.RLock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}
