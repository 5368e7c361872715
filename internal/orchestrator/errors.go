package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/safety"
)

// ConfigError reports an invalid or unresolvable run configuration.
// Raised before any generator runs, so record counts stay zero.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// SafetyError reports that the pre-flight safety gate blocked the run.
// No generation or mutation happens after this error.
type SafetyError struct {
	Violations []safety.Violation
}

func (e *SafetyError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("safety gate blocked run: %s", strings.Join(msgs, "; "))
}

// GenerationError reports a failure inside an entity generation stage.
// Stage failures, panics included, abort the run and discard the
// stage's partial output, so Recovered is always false.
type GenerationError struct {
	Entity    string
	Message   string
	At        time.Time
	Recovered bool
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %s", e.Entity, e.Message)
}

// WriteError reports a failed persistence step.
type WriteError struct {
	Table string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Table, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// RunError pairs a pipeline error with the stage and instant it hit.
type RunError struct {
	Stage string
	Err   error
	At    time.Time
}

func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

func IsSafetyError(err error) bool {
	var e *SafetyError
	return errors.As(err, &e)
}

func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

func IsWriteError(err error) bool {
	var e *WriteError
	return errors.As(err, &e)
}
