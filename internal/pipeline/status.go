package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/lda-connector/internal/jobs"
)

// JobStatus reports ingestion progress of one job.
type JobStatus struct {
	Job       string
	Completed []int
	Pending   []int
}

// Status reads the checkpoint of each job.
func Status(ctx context.Context, store jobs.CheckpointStore, descriptors []jobs.Descriptor) ([]JobStatus, error) {
	out := make([]JobStatus, 0, len(descriptors))
	for _, d := range descriptors {
		state, err := store.Load(ctx, d.Name)
		if err != nil {
			return nil, fmt.Errorf("Status: %s: %w", d.Name, err)
		}
		out = append(out, JobStatus{
			Job:       d.Name,
			Completed: state.Sorted().CompletedYears,
			Pending:   d.Pending(state),
		})
	}
	return out, nil
}
