package ai

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Status tells how a Result's value was produced.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusFallback  Status = "fallback"
	StatusFailed    Status = "failed"
)

// Result is the outcome of an AI-backed step. Fallback results carry the
// cause that forced the deterministic value.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Generated wraps a value produced by the model.
func Generated[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusGenerated}
}

// Fallback wraps a locally computed replacement.
func Fallback[T any](v T, cause error) Result[T] {
	return Result[T]{Value: v, Status: StatusFallback, Err: cause}
}

// Failed carries only the cause.
func Failed[T any](cause error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: cause}
}

// Merge reports the weakest of several statuses: any failure wins over
// fallback, and fallback over generated.
func Merge(statuses ...Status) Status {
	merged := StatusGenerated
	for _, s := range statuses {
		switch s {
		case StatusFailed:
			return StatusFailed
		case StatusFallback:
			merged = StatusFallback
		}
	}
	return merged
}

// Recover turns a (value, err) pair into a Result. On error the fallback
// supplies the value; without one the result is Failed.
func Recover[T any](ctx context.Context, op string, v T, err error, fallback func() T) Result[T] {
	if err == nil {
		return Generated(v)
	}

	logger := log.Ctx(ctx)
	if fallback == nil {
		logger.Warn().Str("operation", op).Err(err).Msg("generation failed without fallback")
		return Failed[T](err)
	}

	aiFallbacks.WithLabelValues(operationLabel(op)).Inc()
	logger.Warn().Str("operation", op).Err(err).Msg("using fallback content")
	return Fallback(fallback(), err)
}
