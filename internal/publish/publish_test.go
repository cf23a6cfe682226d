package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bq "github.com/dvloznov/lda-connector/internal/bigquery"
	"github.com/dvloznov/lda-connector/internal/datasets"
	"github.com/dvloznov/lda-connector/internal/flatten"
	"github.com/dvloznov/lda-connector/internal/storage"
)

// fakeCatalog records catalog calls.
type fakeCatalog struct {
	loaded   map[string][]byte
	metadata map[string]bq.TableMetadata
	loadErr  error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		loaded:   make(map[string][]byte),
		metadata: make(map[string]bq.TableMetadata),
	}
}

func (f *fakeCatalog) LoadParquet(ctx context.Context, table string, data []byte) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded[table] = data
	return nil
}

func (f *fakeCatalog) UpdateMetadata(ctx context.Context, table string, md bq.TableMetadata) error {
	f.metadata[table] = md
	return nil
}

func (f *fakeCatalog) Close() error { return nil }

func str(v string) *string { return &v }
func i64(v int64) *int64   { return &v }

func filings(n int) []flatten.FilingRow {
	rows := make([]flatten.FilingRow, n)
	for i := range rows {
		rows[i] = flatten.FilingRow{
			FilingUUID: str(fmt.Sprintf("uuid-%d", i)),
			FilingYear: i64(2024),
			FilingType: str("Q1"),
		}
	}
	return rows
}

func TestEncodeParquet_RoundTrip(t *testing.T) {
	rec := datasets.BuildFilings(filings(3))
	defer rec.Release()

	data, err := EncodeParquet(rec)
	require.NoError(t, err)

	pf, err := file.NewParquetReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	require.NoError(t, err)

	table, err := reader.ReadTable(context.Background())
	require.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(3), table.NumRows())
	assert.Equal(t, len(datasets.Filings.Schema.Columns), int(table.NumCols()))

	idx := table.Schema().FieldIndices("filing_uuid")
	require.Len(t, idx, 1)
	col := table.Column(idx[0]).Data().Chunk(0).(*array.String)
	assert.Equal(t, "uuid-2", col.Value(2))
}

func TestPublish_WritesObjects(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := New(store, "run-1", WithClock(func() time.Time { return published }))

	rec := datasets.BuildFilings(filings(5))
	defer rec.Release()

	md, err := p.Publish(ctx, datasets.Filings, rec)
	require.NoError(t, err)
	assert.Equal(t, int64(5), md.Rows)

	data, err := store.Get(ctx, "datasets/lda_filings.parquet")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))

	raw, err := store.Get(ctx, "datasets/lda_filings.metadata.json")
	require.NoError(t, err)

	var got Metadata
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "lda_filings", got.ID)
	assert.Equal(t, "LDA Lobbying Filings", got.Title)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, published, got.PublishedAt)
	assert.Equal(t, "Year of the filing", got.ColumnDescriptions["filing_year"])
}

func TestPublish_RegistersInCatalog(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	catalog := newFakeCatalog()

	rec := datasets.BuildFilings(filings(2))
	defer rec.Release()

	_, err = New(store, "run-2", WithCatalog(catalog)).Publish(ctx, datasets.Filings, rec)
	require.NoError(t, err)

	require.Contains(t, catalog.loaded, "lda_filings")
	md := catalog.metadata["lda_filings"]
	assert.Equal(t, "LDA Lobbying Filings", md.Title)
	assert.Equal(t, map[string]string{"run_id": "run-2"}, md.Labels)
	assert.Equal(t, "Unique identifier for the filing", md.ColumnDescriptions["filing_uuid"])
}

func TestPublish_CatalogError(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	catalog := newFakeCatalog()
	catalog.loadErr = errors.New("quota exceeded")

	rec := datasets.BuildFilings(filings(1))
	defer rec.Release()

	_, err = New(store, "run-3", WithCatalog(catalog)).Publish(context.Background(), datasets.Filings, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, catalog.metadata)
}
