package engine

import (
	"errors"
	"fmt"
)

// Fatal error classes. None of them are retried: they describe the
// environment or a broken device, not a transient condition.
var (
	// ErrCapability indicates the device cannot host the simulation at all.
	ErrCapability = errors.New("engine: device capability missing")

	// ErrResourceBinding indicates a kernel failed to build or a buffer could
	// not be allocated as a write target.
	ErrResourceBinding = errors.New("engine: resource binding failed")

	// ErrExecution indicates a kernel invocation failed mid-run.
	ErrExecution = errors.New("engine: kernel execution failed")

	// ErrNotPrepared is returned by Start before Prepare has completed.
	ErrNotPrepared = errors.New("engine: start called before prepare")

	// ErrAlreadyPrepared is returned by a second Prepare call.
	ErrAlreadyPrepared = errors.New("engine: already prepared")
)

// StepError wraps a kernel failure with the frame and substep it occurred in.
type StepError struct {
	Frame   uint64
	Substep int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d substep %d: %v", e.Frame, e.Substep, e.Wrapped)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrExecution, e.Wrapped}
}
