package memory

import (
	"context"
	"fmt"
	"sync"

	"studytrack/internal/core"
)

// Store is an in-memory sheet used by tests and the memory backend.
type Store struct {
	mu    sync.Mutex
	items map[int64]core.StudyRecord
	order []int64
}

func New() *Store {
	return &Store{items: make(map[int64]core.StudyRecord)}
}

// AppendRecord stores the record and returns a synthetic row reference.
func (s *Store) AppendRecord(_ context.Context, r core.StudyRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.items[r.ID] = r
	return fmt.Sprintf("mem:%d", r.ID), nil
}

// DeleteRecord removes the record with the given ID. Missing IDs are a no-op.
func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Records returns the stored records in append order.
func (s *Store) Records() []core.StudyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.StudyRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}
