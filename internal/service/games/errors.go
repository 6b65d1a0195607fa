package games

import (
	"errors"
	"fmt"

	"github.com/zhouzirui/gamehub/backend/internal/service/session"
)

var (
	// ErrSessionNotFound is returned for unknown, finished or expired tokens.
	ErrSessionNotFound = session.ErrNotFound

	ErrForecastNotReady        = errors.New("submit your scenario answers before guessing")
	ErrAnswersAlreadySubmitted = errors.New("scenario answers were already submitted")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
