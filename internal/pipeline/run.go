// Package pipeline orchestrates a connector run: the ingest phase fetches and
// archives each pending partition, the transform phase rebuilds and publishes
// the output datasets from the archives.
package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/logger"
)

// Runner executes the requested phases in order: ingest before transform.
type Runner struct {
	Ingester    *Ingester
	Transformer *Transformer
	Jobs        []jobs.Descriptor
}

// Phases maps the two CLI switches to the phases to run. Setting both is an error.
func Phases(ingestOnly, transformOnly bool) ([]jobs.Phase, error) {
	switch {
	case ingestOnly && transformOnly:
		return nil, fmt.Errorf("ingest-only and transform-only are mutually exclusive")
	case ingestOnly:
		return []jobs.Phase{jobs.PhaseIngest}, nil
	case transformOnly:
		return []jobs.Phase{jobs.PhaseTransform}, nil
	}
	return []jobs.Phase{jobs.PhaseIngest, jobs.PhaseTransform}, nil
}

// Run executes phases. Within ingest, jobs run in configured order.
func (r *Runner) Run(ctx context.Context, phases ...jobs.Phase) error {
	log := logger.FromContext(ctx)

	for _, phase := range phases {
		log.Info().Str("phase", string(phase)).Msg("Starting phase")

		switch phase {
		case jobs.PhaseIngest:
			for _, job := range r.Jobs {
				if err := r.Ingester.Run(ctx, job); err != nil {
					return err
				}
			}
		case jobs.PhaseTransform:
			published, err := r.Transformer.Run(ctx)
			if err != nil {
				return err
			}
			for _, md := range published {
				log.Info().Str("dataset", md.ID).Int64("rows", md.Rows).Msg("Dataset ready")
			}
		default:
			return fmt.Errorf("Runner.Run: unknown phase %q", phase)
		}
	}
	return nil
}
