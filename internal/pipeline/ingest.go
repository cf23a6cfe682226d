package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvloznov/lda-connector/internal/archive"
	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/logger"
)

// PartitionState holds the shared state across the steps ingesting one partition.
type PartitionState struct {
	Job        jobs.Descriptor
	Year       int
	Records    []json.RawMessage
	ArchiveURI string
	Checkpoint jobs.State
}

// FetchStep reads every page of the partition.
type FetchStep struct {
	fetcher Fetcher
}

func (s *FetchStep) Execute(ctx context.Context, state *PartitionState) error {
	records, err := s.fetcher.FetchPartition(ctx, state.Job, state.Year)
	if err != nil {
		return err
	}
	state.Records = records
	return nil
}

// ArchiveStep writes the fetched records. An empty partition writes nothing.
type ArchiveStep struct {
	archive ArchiveWriter
}

func (s *ArchiveStep) Execute(ctx context.Context, state *PartitionState) error {
	if len(state.Records) == 0 {
		return nil
	}
	name := archive.Name(state.Job.Name, state.Year)
	if err := s.archive.Write(ctx, state.Records, name); err != nil {
		return err
	}
	state.ArchiveURI = s.archive.URI(name)
	return nil
}

// CheckpointStep records the partition as complete and persists the state at once.
type CheckpointStep struct {
	store jobs.CheckpointStore
}

func (s *CheckpointStep) Execute(ctx context.Context, state *PartitionState) error {
	next := state.Checkpoint.With(state.Year)
	if err := s.store.Save(ctx, state.Job.Name, next); err != nil {
		return err
	}
	state.Checkpoint = next
	return nil
}

// Ingester runs the ingest phase of one or more jobs.
type Ingester struct {
	checkpoints jobs.CheckpointStore
	partition   *Pipeline[PartitionState]
}

// NewIngester wires the per-partition pipeline: fetch, archive, checkpoint.
func NewIngester(fetcher Fetcher, archives ArchiveWriter, checkpoints jobs.CheckpointStore) *Ingester {
	return &Ingester{
		checkpoints: checkpoints,
		partition: NewPipeline[PartitionState](
			&FetchStep{fetcher: fetcher},
			&ArchiveStep{archive: archives},
			&CheckpointStep{store: checkpoints},
		),
	}
}

// Run ingests every partition of job not yet recorded as complete. It stops
// at the first failing partition; partitions completed before it stay
// checkpointed and are skipped by the next run.
func (in *Ingester) Run(ctx context.Context, job jobs.Descriptor) error {
	log := logger.FromContext(ctx).With().Str("job", job.Name).Logger()
	ctx = logger.WithContext(ctx, log)

	checkpoint, err := in.checkpoints.Load(ctx, job.Name)
	if err != nil {
		return fmt.Errorf("Ingester.Run: %s: load checkpoint: %w", job.Name, err)
	}

	pending := job.Pending(checkpoint)
	log.Info().
		Int("completed", len(job.Partitions)-len(pending)).
		Int("pending", len(pending)).
		Msg("Starting ingestion")

	if len(pending) == 0 {
		log.Info().Msg("All partitions already fetched")
		return nil
	}

	for _, year := range pending {
		started := time.Now()
		state := &PartitionState{Job: job, Year: year, Checkpoint: checkpoint}

		if err := in.partition.Execute(ctx, state); err != nil {
			return fmt.Errorf("Ingester.Run: %s year %d: %w", job.Name, year, err)
		}
		checkpoint = state.Checkpoint

		event := log.Info().
			Int("year", year).
			Int("records", len(state.Records)).
			Dur("elapsed", time.Since(started))
		if state.ArchiveURI != "" {
			event.Str("uri", state.ArchiveURI).Msg("Partition archived")
		} else {
			event.Msg("Partition empty, marked complete")
		}
	}
	return nil
}
