package pipeline

import (
	"context"
	"encoding/json"

	"github.com/apache/arrow/go/v17/arrow"

	"github.com/dvloznov/lda-connector/internal/datasets"
	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/publish"
)

// Fetcher retrieves every raw record of one partition from the upstream API.
type Fetcher interface {
	FetchPartition(ctx context.Context, job jobs.Descriptor, year int) ([]json.RawMessage, error)
}

// ArchiveWriter persists the raw records of a partition under a name.
type ArchiveWriter interface {
	Write(ctx context.Context, records []json.RawMessage, name string) error
	URI(name string) string
}

// ArchiveReader loads the raw records written under a name.
type ArchiveReader interface {
	Read(ctx context.Context, name string) ([]json.RawMessage, error)
	URI(name string) string
}

// Publisher exports a validated dataset.
type Publisher interface {
	Publish(ctx context.Context, def datasets.Definition, rec arrow.Record) (*publish.Metadata, error)
}
