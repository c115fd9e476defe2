// Package besteffort reports side effects whose failure is logged but never propagated.
package besteffort

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Result struct {
	Operation string
	Target    string
	Attempted bool
	Err       error
}

// Skipped records that no side effect was needed.
func Skipped(operation, target string) Result {
	return Result{Operation: operation, Target: target}
}

// Run attempts fn once and logs a failure instead of returning it.
func Run(ctx context.Context, operation, target string, fn func(ctx context.Context) error) Result {
	result := Result{Operation: operation, Target: target, Attempted: true}

	if err := fn(ctx); err != nil {
		result.Err = err

		log.Warn().Err(err).Str("operation", operation).Str("target", target).Msg("best-effort side effect failed")
	}

	return result
}

// Failed reports an attempted side effect that did not succeed.
func (r Result) Failed() bool {
	return r.Attempted && r.Err != nil
}

// Succeeded reports an attempted side effect that completed.
func (r Result) Succeeded() bool {
	return r.Attempted && r.Err == nil
}
