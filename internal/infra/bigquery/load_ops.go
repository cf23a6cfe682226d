package bigquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"

	"github.com/dvloznov/lda-connector/internal/logger"
)

// EnsureDatasetWithClient creates datasetID if it is missing.
func EnsureDatasetWithClient(ctx context.Context, client *bigquery.Client, datasetID, location string) error {
	ds := client.Dataset(datasetID)
	if _, err := ds.Metadata(ctx); err == nil {
		return nil
	} else if !isNotFound(err) {
		return fmt.Errorf("EnsureDataset: reading %s: %w", datasetID, err)
	}

	if err := ds.Create(ctx, &bigquery.DatasetMetadata{Location: location}); err != nil {
		return fmt.Errorf("EnsureDataset: creating %s: %w", datasetID, err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("dataset", datasetID).Msg("Created BigQuery dataset")
	return nil
}

// LoadParquetWithClient replaces datasetID.table with the Parquet file in data
// and waits for the load job to finish.
func LoadParquetWithClient(ctx context.Context, client *bigquery.Client, datasetID, table string, data []byte) error {
	source := bigquery.NewReaderSource(bytes.NewReader(data))
	source.SourceFormat = bigquery.Parquet
	source.ParquetOptions = &bigquery.ParquetOptions{EnableListInference: true}

	loader := client.Dataset(datasetID).Table(table).LoaderFrom(source)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = bigquery.WriteTruncate

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("LoadParquet: starting load of %s.%s: %w", datasetID, table, err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("LoadParquet: waiting for job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("LoadParquet: job %s failed: %w", job.ID(), err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("table", datasetID+"."+table).
		Str("job_id", job.ID()).
		Msg("Loaded table")
	return nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
