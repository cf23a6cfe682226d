package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Phase names one independently invokable half of a connector run.
type Phase string

const (
	// PhaseIngest fetches partitions from the API and archives them.
	PhaseIngest Phase = "ingest"
	// PhaseTransform flattens archives into validated datasets and publishes them.
	PhaseTransform Phase = "transform"
)

// Descriptor is the explicit configuration of one ingestion job. A job is one
// dataset family of the upstream API (e.g. "filings" or "contributions").
type Descriptor struct {
	// Name keys the checkpoint state and prefixes archive names.
	Name string `json:"name"`

	// Endpoint is the list endpoint path under the API base, without slashes.
	Endpoint string `json:"endpoint"`

	// Partitions is the ordered list of years to ingest.
	Partitions []int `json:"partitions"`

	// RateLimitDelay is slept between successive page requests.
	RateLimitDelay time.Duration `json:"rate_limit_delay"`

	// MaxPages caps the pages read per partition. Zero means no cap.
	MaxPages int `json:"max_pages"`
}

// Years returns the descending list of years from last down to first.
func Years(first, last int) []int {
	if last < first {
		return nil
	}
	years := make([]int, 0, last-first+1)
	for y := last; y >= first; y-- {
		years = append(years, y)
	}
	return years
}

// Pending returns the partitions of d not yet recorded in state, keeping
// descriptor order.
func (d Descriptor) Pending(state State) []int {
	done := state.Set()
	var pending []int
	for _, p := range d.Partitions {
		if _, ok := done[p]; !ok {
			pending = append(pending, p)
		}
	}
	return pending
}

// Validate reports descriptor misconfiguration.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if d.Endpoint == "" {
		return fmt.Errorf("job %q: endpoint is required", d.Name)
	}
	if len(d.Partitions) == 0 {
		return fmt.Errorf("job %q: no partitions configured", d.Name)
	}
	if d.RateLimitDelay < 0 {
		return fmt.Errorf("job %q: rate limit delay must not be negative", d.Name)
	}
	if d.MaxPages < 0 {
		return fmt.Errorf("job %q: max pages must not be negative", d.Name)
	}
	return nil
}

// State is the persisted checkpoint of one job: the partitions proven archived.
type State struct {
	CompletedYears []int `json:"completed_years"`
}

// Set returns the completed partitions as a set.
func (s State) Set() map[int]struct{} {
	set := make(map[int]struct{}, len(s.CompletedYears))
	for _, y := range s.CompletedYears {
		set[y] = struct{}{}
	}
	return set
}

// With returns a copy of s with year added, deduplicated and sorted descending.
func (s State) With(year int) State {
	return State{CompletedYears: append(s.CompletedYears[:len(s.CompletedYears):len(s.CompletedYears)], year)}.Sorted()
}

// Sorted returns a copy of s deduplicated and sorted descending.
func (s State) Sorted() State {
	set := s.Set()
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return State{CompletedYears: years}
}

// CheckpointStore persists per-job partition completion state.
// Implementations assume a single writer per job name.
type CheckpointStore interface {
	// Load returns the state for job. A job never saved loads as empty state.
	Load(ctx context.Context, job string) (State, error)

	// Save overwrites the entire state for job.
	Save(ctx context.Context, job string, state State) error
}
