package sim

import (
	"errors"
	"fmt"
)

// Domain errors for run-level failures. The cloth core itself never
// errors; divergence shows up as non-finite state caught here.
var (
	// ErrInvalidState indicates a NaN or Inf particle position.
	ErrInvalidState = errors.New("sim: invalid cloth state (NaN or Inf detected)")

	// ErrNoDriver indicates a runner was built without an anchor driver.
	ErrNoDriver = errors.New("sim: no anchor driver configured")
)

// StepError wraps an error with the step it occurred on.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
