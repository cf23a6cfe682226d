package pipeline

import (
	"context"
	"fmt"
)

// PipelineStep represents a single step of a pipeline over shared state S.
type PipelineStep[S any] interface {
	Execute(ctx context.Context, state *S) error
}

// Pipeline executes a sequence of steps in order, stopping at the first error.
type Pipeline[S any] struct {
	steps []PipelineStep[S]
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline[S any](steps ...PipelineStep[S]) *Pipeline[S] {
	return &Pipeline[S]{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline[S]) Execute(ctx context.Context, state *S) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}
