package genericlist

import "fmt"

// RunStatusType represents the outcome of one extraction run.
type RunStatusType string

const (
	// RunCompleted indicates every patient row was produced and uploaded
	// (when upload was requested) without failures.
	RunCompleted RunStatusType = "completed"

	// RunPartial indicates the run produced rows but recorded unresolved
	// recode inputs or failed upload subjects.
	RunPartial RunStatusType = "partial"

	// RunFailed indicates the run produced no usable result.
	RunFailed RunStatusType = "failed"
)

// Validate checks that the status is one of the declared values.
func (s RunStatusType) Validate() error {
	switch s {
	case RunCompleted, RunPartial, RunFailed:
		return nil
	default:
		return fmt.Errorf("invalid run status: %q (valid: completed, partial, failed)", string(s))
	}
}
