// Package publish exports validated datasets to the object store and
// registers them in the warehouse catalog.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"

	bq "github.com/dvloznov/lda-connector/internal/bigquery"
	"github.com/dvloznov/lda-connector/internal/datasets"
	"github.com/dvloznov/lda-connector/internal/logger"
	"github.com/dvloznov/lda-connector/internal/storage"
)

// Prefix is the object-store folder holding published datasets.
const Prefix = "datasets"

// ParquetName returns the object name of a dataset's Parquet file.
func ParquetName(id string) string {
	return fmt.Sprintf("%s/%s.parquet", Prefix, id)
}

// MetadataName returns the object name of a dataset's metadata document.
func MetadataName(id string) string {
	return fmt.Sprintf("%s/%s.metadata.json", Prefix, id)
}

// Metadata is the document written next to each Parquet file.
type Metadata struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	ColumnDescriptions map[string]string `json:"column_descriptions"`
	RunID              string            `json:"run_id"`
	Rows               int64             `json:"rows"`
	PublishedAt        time.Time         `json:"published_at"`
	ParquetURI         string            `json:"parquet_uri"`
}

// Publisher writes datasets to an object store and, when a catalog is set,
// loads them into it.
type Publisher struct {
	store   storage.ObjectStore
	catalog bq.Catalog
	runID   string
	now     func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithCatalog enables catalog registration.
func WithCatalog(c bq.Catalog) Option {
	return func(p *Publisher) { p.catalog = c }
}

// WithClock overrides the publication timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// New creates a Publisher stamping every dataset with runID.
func New(store storage.ObjectStore, runID string, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		runID: runID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish exports rec as dataset def. rec must already be validated.
func (p *Publisher) Publish(ctx context.Context, def datasets.Definition, rec arrow.Record) (*Metadata, error) {
	log := logger.FromContext(ctx)

	data, err := EncodeParquet(rec)
	if err != nil {
		return nil, fmt.Errorf("Publish: %s: %w", def.ID, err)
	}

	parquetName := ParquetName(def.ID)
	if err := p.store.Put(ctx, parquetName, data); err != nil {
		return nil, fmt.Errorf("Publish: writing %s: %w", parquetName, err)
	}

	md := &Metadata{
		ID:                 def.ID,
		Title:              def.Title,
		Description:        def.Description,
		ColumnDescriptions: def.Schema.Descriptions(),
		RunID:              p.runID,
		Rows:               rec.NumRows(),
		PublishedAt:        p.now().UTC(),
		ParquetURI:         p.store.URI(parquetName),
	}
	mdJSON, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Publish: marshal metadata: %w", err)
	}
	if err := p.store.Put(ctx, MetadataName(def.ID), mdJSON); err != nil {
		return nil, fmt.Errorf("Publish: writing %s: %w", MetadataName(def.ID), err)
	}

	log.Info().
		Str("dataset", def.ID).
		Int64("rows", md.Rows).
		Int("bytes", len(data)).
		Str("uri", md.ParquetURI).
		Msg("Published dataset")

	if p.catalog == nil {
		return md, nil
	}

	if err := p.catalog.LoadParquet(ctx, def.ID, data); err != nil {
		return nil, fmt.Errorf("Publish: %w", err)
	}
	err = p.catalog.UpdateMetadata(ctx, def.ID, bq.TableMetadata{
		Title:              md.Title,
		Description:        md.Description,
		ColumnDescriptions: md.ColumnDescriptions,
		Labels:             map[string]string{"run_id": p.runID},
	})
	if err != nil {
		return nil, fmt.Errorf("Publish: %w", err)
	}
	log.Info().Str("dataset", def.ID).Msg("Registered dataset in catalog")

	return md, nil
}
