package commands

import (
	"context"
	"fmt"

	"github.com/dvloznov/lda-connector/internal/archive"
	"github.com/dvloznov/lda-connector/internal/config"
	infra "github.com/dvloznov/lda-connector/internal/infra/bigquery"
	"github.com/dvloznov/lda-connector/internal/jobs/objstore"
	"github.com/dvloznov/lda-connector/internal/ldaapi"
	"github.com/dvloznov/lda-connector/internal/logger"
	"github.com/dvloznov/lda-connector/internal/pipeline"
	"github.com/dvloznov/lda-connector/internal/publish"
	"github.com/dvloznov/lda-connector/internal/storage"
)

// deps is the wired object graph of one run.
type deps struct {
	Runner  *pipeline.Runner
	objects storage.ObjectStore
	catalog *infra.BigQueryCatalog
}

func (d *deps) Close() {
	if d.catalog != nil {
		d.catalog.Close()
	}
	if d.objects != nil {
		d.objects.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	var opts []storage.GCSOption
	if cfg.Storage.CredentialsFile != "" {
		opts = append(opts, storage.WithCredentialsFile(cfg.Storage.CredentialsFile))
	}
	objects, err := storage.Open(ctx, cfg.Storage.Root, opts...)
	if err != nil {
		return nil, fmt.Errorf("open storage %q: %w", cfg.Storage.Root, err)
	}
	return objects, nil
}

func wire(ctx context.Context, cfg *config.Config, runID string) (*deps, error) {
	log := logger.FromContext(ctx)

	objects, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d := &deps{objects: objects}

	var pubOpts []publish.Option
	if cfg.BigQuery.ProjectID != "" {
		var bqOpts []storage.GCSOption
		if cfg.Storage.CredentialsFile != "" {
			bqOpts = append(bqOpts, storage.WithCredentialsFile(cfg.Storage.CredentialsFile))
		}
		catalog, err := infra.NewBigQueryCatalog(ctx, cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Location, bqOpts...)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.catalog = catalog
		if err := catalog.EnsureDataset(ctx); err != nil {
			d.Close()
			return nil, err
		}
		pubOpts = append(pubOpts, publish.WithCatalog(catalog))
		log.Info().
			Str("project", cfg.BigQuery.ProjectID).
			Str("dataset", cfg.BigQuery.Dataset).
			Msg("BigQuery registration enabled")
	}

	client := ldaapi.NewClient(ldaapi.Options{
		BaseURL:   cfg.API.BaseURL,
		APIKey:    cfg.API.APIKey,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	})
	archives := archive.NewStore(objects)

	d.Runner = &pipeline.Runner{
		Ingester:    pipeline.NewIngester(client, archives, objstore.NewStore(objects)),
		Transformer: pipeline.NewTransformer(archives, publish.New(objects, runID, pubOpts...), cfg.Filings.Descriptor()),
		Jobs:        cfg.Jobs(),
	}

	log.Info().
		Str("storage", objects.URI("")).
		Bool("authenticated", cfg.API.APIKey != "").
		Msg("Connector initialized")
	return d, nil
}
