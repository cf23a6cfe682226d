package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	bq "github.com/dvloznov/lda-connector/internal/bigquery"
)

// Re-export the contract from the shared package
type Catalog = bq.Catalog
type TableMetadata = bq.TableMetadata

// BigQueryCatalog is the concrete implementation of Catalog. It holds a
// shared BigQuery client to avoid creating a new connection for each table.
type BigQueryCatalog struct {
	client    *bigquery.Client
	datasetID string
	location  string
}

// NewBigQueryCatalog creates a catalog writing tables into projectID.datasetID.
func NewBigQueryCatalog(ctx context.Context, projectID, datasetID, location string, opts ...option.ClientOption) (*BigQueryCatalog, error) {
	if projectID == "" || datasetID == "" {
		return nil, fmt.Errorf("NewBigQueryCatalog: project and dataset are required")
	}
	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryCatalog: creating client: %w", err)
	}
	if location != "" {
		client.Location = location
	}
	return &BigQueryCatalog{
		client:    client,
		datasetID: datasetID,
		location:  location,
	}, nil
}

// Close closes the BigQuery client connection.
func (c *BigQueryCatalog) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// EnsureDataset creates the target dataset when it does not exist yet.
func (c *BigQueryCatalog) EnsureDataset(ctx context.Context) error {
	return EnsureDatasetWithClient(ctx, c.client, c.datasetID, c.location)
}

// LoadParquet delegates to LoadParquetWithClient with the shared client.
func (c *BigQueryCatalog) LoadParquet(ctx context.Context, table string, data []byte) error {
	return LoadParquetWithClient(ctx, c.client, c.datasetID, table, data)
}

// UpdateMetadata delegates to UpdateTableMetadataWithClient with the shared client.
func (c *BigQueryCatalog) UpdateMetadata(ctx context.Context, table string, md TableMetadata) error {
	return UpdateTableMetadataWithClient(ctx, c.client, c.datasetID, table, md)
}

var _ Catalog = (*BigQueryCatalog)(nil)
