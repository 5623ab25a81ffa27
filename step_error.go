package ammo

import (
	"errors"
	"fmt"
)

// StepError is returned by [Sequence.Err] and [Sequence.Wait] when a step
// rejects in a sequence built with [WithStopOnReject]. errors.Is and
// errors.As see through it to the rejection.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d rejected: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepOf returns the index of the step that stopped a sequence, if err
// carries a [*StepError].
func StepOf(err error) (int, bool) {
	var se *StepError
	if !errors.As(err, &se) {
		return 0, false
	}
	return se.Step, true
}
