package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/lda-connector/internal/jobs"
)

// Store is an in-memory implementation of CheckpointStore.
// It is safe for concurrent use. Data is lost on process exit, so it only
// serves tests and dry runs; durable runs use the object-store backed store.
type Store struct {
	mu     sync.RWMutex
	states map[string]jobs.State
	saves  map[string]int
}

// NewStore creates a new in-memory checkpoint store.
func NewStore() *Store {
	return &Store{
		states: make(map[string]jobs.State),
		saves:  make(map[string]int),
	}
}

// Load implements the CheckpointStore interface.
func (s *Store) Load(ctx context.Context, job string) (jobs.State, error) {
	if job == "" {
		return jobs.State{}, fmt.Errorf("job name is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyState(s.states[job]), nil
}

// Save implements the CheckpointStore interface.
func (s *Store) Save(ctx context.Context, job string, state jobs.State) error {
	if job == "" {
		return fmt.Errorf("job name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid external modifications
	s.states[job] = copyState(state)
	s.saves[job]++

	return nil
}

// Saves returns how many times state for job has been written.
func (s *Store) Saves(job string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[job]
}

func copyState(state jobs.State) jobs.State {
	years := make([]int, len(state.CompletedYears))
	copy(years, state.CompletedYears)
	return jobs.State{CompletedYears: years}
}

// Ensure Store implements CheckpointStore interface.
var _ jobs.CheckpointStore = (*Store)(nil)
