// Package pipeline provides the stage infrastructure and the input and
// output types flowing between the collate, assemble and extract stages.
package pipeline

import (
	"context"
)

// Stage is a single processing step. Stages are composed by the
// orchestrator, which feeds each one's result into the next.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}
