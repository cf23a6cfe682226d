package objstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/storage"
)

// StatePrefix is the object-store directory holding checkpoint files.
const StatePrefix = "state"

// Store is the durable CheckpointStore. Each job's state lives in one JSON
// object, state/{job}.json, rewritten whole on every Save.
type Store struct {
	objects storage.ObjectStore
}

// NewStore creates a checkpoint store writing through objects.
func NewStore(objects storage.ObjectStore) *Store {
	return &Store{objects: objects}
}

// ObjectName returns the object name holding the state for job.
func ObjectName(job string) string {
	return path.Join(StatePrefix, job+".json")
}

// Load implements the CheckpointStore interface.
func (s *Store) Load(ctx context.Context, job string) (jobs.State, error) {
	if job == "" {
		return jobs.State{}, fmt.Errorf("Load: job name is required")
	}

	data, err := s.objects.Get(ctx, ObjectName(job))
	if errors.Is(err, storage.ErrNotExist) {
		return jobs.State{}, nil
	}
	if err != nil {
		return jobs.State{}, fmt.Errorf("Load: read state for %q: %w", job, err)
	}

	var state jobs.State
	if err := json.Unmarshal(data, &state); err != nil {
		return jobs.State{}, fmt.Errorf("Load: decode state for %q: %w", job, err)
	}
	return state, nil
}

// Save implements the CheckpointStore interface.
func (s *Store) Save(ctx context.Context, job string, state jobs.State) error {
	if job == "" {
		return fmt.Errorf("Save: job name is required")
	}
	if state.CompletedYears == nil {
		state.CompletedYears = []int{}
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("Save: encode state for %q: %w", job, err)
	}
	if err := s.objects.Put(ctx, ObjectName(job), data); err != nil {
		return fmt.Errorf("Save: write state for %q: %w", job, err)
	}
	return nil
}

var _ jobs.CheckpointStore = (*Store)(nil)
