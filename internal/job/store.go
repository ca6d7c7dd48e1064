package job

import (
	"errors"
	"sync"
)

// ErrNotFound is returned for lookups of unknown job ids.
var ErrNotFound = errors.New("job not found")

// Store keeps job records keyed by id. The in-memory implementation is the
// default; a durable keyed store can be swapped in without touching the
// pipeline.
type Store interface {
	Set(j Job)
	Get(id string) (Job, error)
	Update(id string, fn func(*Job)) error
	Delete(id string)
}

type memoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemoryStore creates the default in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{
		jobs: make(map[string]Job),
	}
}

func (s *memoryStore) Set(j Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
}

// Get returns a snapshot of the job. Reading never mutates the record.
func (s *memoryStore) Get(id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

// Update applies fn to the stored record under the store's lock.
func (s *memoryStore) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(&j)
	s.jobs[id] = j
	return nil
}

func (s *memoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}
