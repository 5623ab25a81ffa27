package ammo

import (
	"errors"
	"fmt"
	"testing"
)

func TestStepError_Error(t *testing.T) {
	se := &StepError{Step: 2, Err: errors.New("not found")}

	expected := "step 2 rejected: not found"
	if got := se.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestStepOf(t *testing.T) {
	cause := errors.New("cause")
	se := &StepError{Step: 3, Err: cause}

	tests := []struct {
		name     string
		err      error
		wantStep int
		wantOK   bool
	}{
		{name: "nil error", err: nil},
		{name: "plain error", err: errors.New("plain")},
		{name: "StepError", err: se, wantStep: 3, wantOK: true},
		{name: "wrapped StepError", err: fmt.Errorf("sequence: %w", se), wantStep: 3, wantOK: true},
		{name: "joined with StepError", err: errors.Join(errors.New("other"), se), wantStep: 3, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok := StepOf(tt.err)
			if step != tt.wantStep || ok != tt.wantOK {
				t.Errorf("StepOf() = %d, %v, want %d, %v", step, ok, tt.wantStep, tt.wantOK)
			}
		})
	}

	if !errors.Is(fmt.Errorf("sequence: %w", se), cause) {
		t.Error("errors.Is should reach the rejection through StepError")
	}
}
