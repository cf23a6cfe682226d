// Package bigquery holds the contract for registering published datasets in
// the BigQuery catalog. The implementation lives in internal/infra/bigquery.
package bigquery

import (
	"context"
)

// TableMetadata is the descriptive metadata attached to a published table.
type TableMetadata struct {
	Title              string
	Description        string
	ColumnDescriptions map[string]string
	Labels             map[string]string
}

// Catalog provides an interface for loading datasets into the warehouse.
type Catalog interface {
	// LoadParquet replaces the contents of table with the Parquet file data.
	LoadParquet(ctx context.Context, table string, data []byte) error

	// UpdateMetadata sets title, description, labels and column
	// descriptions of an existing table.
	UpdateMetadata(ctx context.Context, table string, md TableMetadata) error

	// Close releases the underlying client.
	Close() error
}
