package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dvloznov/lda-connector/internal/config"
	"github.com/dvloznov/lda-connector/internal/logger"
	"github.com/dvloznov/lda-connector/internal/pipeline"
)

var (
	configPath    string
	ingestOnly    bool
	transformOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "lda-connector [--ingest-only | --transform-only]",
	Short: "Fetches Senate LDA lobbying disclosures and publishes them as datasets.",
	Long: "lda-connector pages the Senate Lobbying Disclosure Act API year by year, archives the raw\n" +
		"filings, then rebuilds and publishes the lda_filings and lda_lobbying_activities datasets.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		phases, err := pipeline.Phases(ingestOnly, transformOnly)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runID := os.Getenv("RUN_ID")
		if runID == "" {
			runID = uuid.NewString()
		}
		log := newLogger(cfg).With().Str("run_id", runID).Logger()
		ctx := logger.WithContext(cmd.Context(), log)

		conn, err := wire(ctx, cfg, runID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize connector")
		}
		defer conn.Close()

		if err := conn.Runner.Run(ctx, phases...); err != nil {
			log.Fatal().Err(err).Msg("Connector run failed")
		}

		log.Info().Msg("Connector run completed")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (defaults apply when empty)")
	rootCmd.Flags().BoolVar(&ingestOnly, "ingest-only", false, "Only fetch data from the LDA API")
	rootCmd.Flags().BoolVar(&transformOnly, "transform-only", false, "Only transform existing raw data")
	rootCmd.MarkFlagsMutuallyExclusive("ingest-only", "transform-only")
}

// ExecuteContext runs the command tree, exiting non-zero on error.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.NewWithOptions(os.Stdout, logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}
