package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/dvloznov/lda-connector/internal/jobs"
)

// Config is the connector configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	BigQuery BigQueryConfig `yaml:"bigquery"`
	Log      LogConfig      `yaml:"log"`
	Filings  JobConfig      `yaml:"filings"`
	// Contributions are ingested (LD-203 reports) but not transformed.
	Contributions JobConfig `yaml:"contributions"`
}

// APIConfig holds upstream API settings.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// StorageConfig selects the object store. Root is either a local directory
// or a gs://bucket/prefix URI.
type StorageConfig struct {
	Root            string `yaml:"root"`
	CredentialsFile string `yaml:"credentials_file"`
}

// BigQueryConfig configures catalog registration. An empty ProjectID disables it.
type BigQueryConfig struct {
	ProjectID string `yaml:"project_id"`
	Dataset   string `yaml:"dataset"`
	Location  string `yaml:"location"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// JobConfig describes one ingestion job.
type JobConfig struct {
	Name           string        `yaml:"name"`
	Endpoint       string        `yaml:"endpoint"`
	FirstYear      int           `yaml:"first_year"`
	LastYear       int           `yaml:"last_year"`
	RateLimitDelay time.Duration `yaml:"rate_limit_delay"`
	MaxPages       int           `yaml:"max_pages"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "https://lda.senate.gov/api/v1",
			UserAgent: "lda-connector/1.0",
			Timeout:   60 * time.Second,
		},
		Storage: StorageConfig{
			Root: "data",
		},
		BigQuery: BigQueryConfig{
			Dataset: "lda",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Filings: JobConfig{
			Name:      "filings",
			Endpoint:  "filings",
			FirstYear: 1999,
			LastYear:  2024,
			// 15 requests/minute unauthenticated
			RateLimitDelay: 4500 * time.Millisecond,
		},
		Contributions: JobConfig{
			Name:           "contributions",
			Endpoint:       "contributions",
			FirstYear:      2008,
			LastYear:       2024,
			RateLimitDelay: 4500 * time.Millisecond,
			MaxPages:       100,
		},
	}
}

// Load decodes the YAML file at path over Default, so keys absent from the
// file keep their defaults and explicit zero values are kept as written. An
// empty path yields the defaults; a missing file at an explicit path is an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, envOverrides(os.LookupEnv), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return &cfg, nil
}

// envOverrides collects the settings given in the environment. Unset or empty
// variables leave their fields zero, and zero fields never override.
func envOverrides(lookup func(string) (string, bool)) Config {
	var c Config
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("LDA_API_KEY", &c.API.APIKey)
	set("LDA_STORAGE_ROOT", &c.Storage.Root)
	set("GOOGLE_APPLICATION_CREDENTIALS", &c.Storage.CredentialsFile)
	set("LDA_BQ_PROJECT", &c.BigQuery.ProjectID)
	set("LDA_BQ_DATASET", &c.BigQuery.Dataset)
	set("LDA_LOG_LEVEL", &c.Log.Level)
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Storage.Root == "" {
		return fmt.Errorf("storage.root is required")
	}
	if c.BigQuery.ProjectID != "" && c.BigQuery.Dataset == "" {
		return fmt.Errorf("bigquery.dataset is required when bigquery.project_id is set")
	}
	for _, d := range c.Jobs() {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if c.Filings.Name == c.Contributions.Name {
		return fmt.Errorf("job names must differ, both are %q", c.Filings.Name)
	}
	return nil
}

// Descriptor converts a job config into the descriptor handed to the ingester.
func (j JobConfig) Descriptor() jobs.Descriptor {
	return jobs.Descriptor{
		Name:           j.Name,
		Endpoint:       j.Endpoint,
		Partitions:     jobs.Years(j.FirstYear, j.LastYear),
		RateLimitDelay: j.RateLimitDelay,
		MaxPages:       j.MaxPages,
	}
}

// Jobs returns the ingestion jobs in run order.
func (c *Config) Jobs() []jobs.Descriptor {
	return []jobs.Descriptor{
		c.Filings.Descriptor(),
		c.Contributions.Descriptor(),
	}
}
