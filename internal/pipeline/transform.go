package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"

	"github.com/dvloznov/lda-connector/internal/archive"
	"github.com/dvloznov/lda-connector/internal/datasets"
	"github.com/dvloznov/lda-connector/internal/flatten"
	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/logger"
	"github.com/dvloznov/lda-connector/internal/publish"
	"github.com/dvloznov/lda-connector/internal/record"
	"github.com/dvloznov/lda-connector/internal/storage"
)

// Output pairs a dataset definition with the function materializing it from
// raw filings.
type Output struct {
	Def   datasets.Definition
	Build func(filings []record.Value) arrow.Record
}

var builders = map[string]func([]record.Value) arrow.Record{
	datasets.FilingsID: func(filings []record.Value) arrow.Record {
		return datasets.BuildFilings(flatten.Filings(filings))
	},
	datasets.ActivitiesID: func(filings []record.Value) arrow.Record {
		return datasets.BuildActivities(flatten.Activities(filings))
	},
}

// Outputs returns the datasets produced from the filings archives, in
// publication order.
func Outputs() []Output {
	defs := datasets.All()
	out := make([]Output, 0, len(defs))
	for _, def := range defs {
		out = append(out, Output{Def: def, Build: builders[def.ID]})
	}
	return out
}

// DatasetState holds the shared state across the steps producing one dataset.
type DatasetState struct {
	Output    Output
	Filings   []record.Value
	Record    arrow.Record
	Published *publish.Metadata
}

// BuildTableStep flattens the filings into the dataset's table.
type BuildTableStep struct{}

func (s *BuildTableStep) Execute(ctx context.Context, state *DatasetState) error {
	state.Record = state.Output.Build(state.Filings)
	log := logger.FromContext(ctx)
	log.Info().
		Str("dataset", state.Output.Def.ID).
		Int64("rows", state.Record.NumRows()).
		Msg("Built table")
	return nil
}

// ValidateStep rejects a table that breaks any rule of its dataset.
type ValidateStep struct{}

func (s *ValidateStep) Execute(ctx context.Context, state *DatasetState) error {
	if err := state.Output.Def.Validate(state.Record); err != nil {
		return fmt.Errorf("%s: %w", state.Output.Def.ID, err)
	}
	return nil
}

// PublishStep hands a validated table to the publisher.
type PublishStep struct {
	publisher Publisher
}

func (s *PublishStep) Execute(ctx context.Context, state *DatasetState) error {
	md, err := s.publisher.Publish(ctx, state.Output.Def, state.Record)
	if err != nil {
		return err
	}
	state.Published = md
	return nil
}

// Transformer runs the transform phase: it reads the filings archives once
// and rebuilds every output dataset from scratch.
type Transformer struct {
	archives ArchiveReader
	source   jobs.Descriptor
	outputs  []Output
	prepare  *Pipeline[DatasetState]
	publish  *Pipeline[DatasetState]
}

// NewTransformer creates a transformer reading the archives of source.
func NewTransformer(archives ArchiveReader, publisher Publisher, source jobs.Descriptor, outputs ...Output) *Transformer {
	if len(outputs) == 0 {
		outputs = Outputs()
	}
	return &Transformer{
		archives: archives,
		source:   source,
		outputs:  outputs,
		prepare: NewPipeline[DatasetState](
			&BuildTableStep{},
			&ValidateStep{},
		),
		publish: NewPipeline[DatasetState](
			&PublishStep{publisher: publisher},
		),
	}
}

// Run builds and validates every output dataset, then publishes them in
// order. Nothing is published unless all datasets pass validation.
func (t *Transformer) Run(ctx context.Context) ([]*publish.Metadata, error) {
	filings, err := t.LoadFilings(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]*DatasetState, 0, len(t.outputs))
	defer func() {
		for _, state := range states {
			if state.Record != nil {
				state.Record.Release()
			}
		}
	}()

	for _, out := range t.outputs {
		state := &DatasetState{Output: out, Filings: filings}
		states = append(states, state)
		if err := t.prepare.Execute(ctx, state); err != nil {
			return nil, fmt.Errorf("Transformer.Run: %w", err)
		}
	}
	log := logger.FromContext(ctx)
	log.Info().Int("datasets", len(states)).Msg("All datasets validated")

	var published []*publish.Metadata
	for _, state := range states {
		if err := t.publish.Execute(ctx, state); err != nil {
			return published, fmt.Errorf("Transformer.Run: %w", err)
		}
		published = append(published, state.Published)
	}
	return published, nil
}

// LoadFilings reads the archive of every source partition in descriptor
// order. A partition without an archive is skipped: empty years are
// checkpointed without one.
func (t *Transformer) LoadFilings(ctx context.Context) ([]record.Value, error) {
	log := logger.FromContext(ctx)

	var all []record.Value
	for _, year := range t.source.Partitions {
		name := archive.Name(t.source.Name, year)

		raws, err := t.archives.Read(ctx, name)
		if errors.Is(err, storage.ErrNotExist) {
			log.Warn().Str("archive", name).Msg("No archive for partition, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("Transformer.LoadFilings: %w", err)
		}

		values, err := record.ParseAll(raws)
		if err != nil {
			return nil, fmt.Errorf("Transformer.LoadFilings: %s: %w", name, err)
		}
		all = append(all, values...)

		log.Info().
			Str("archive", name).
			Str("uri", t.archives.URI(name)).
			Int("filings", len(values)).
			Msg("Loaded archive")
	}

	log.Info().Int("filings", len(all)).Msg("Loaded all archives")
	return all, nil
}
