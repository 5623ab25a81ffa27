package ammo

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// PanicError is what a step, poll handler or debounced callback panicked
// with, handed to the function installed by [WithPanicHandler]. Without
// that option panics are not recovered and no PanicError is built.
type PanicError struct {
	Value any    // argument to panic
	Stack string // stack of the panicking callback
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	stack := make([]byte, 4<<10)
	stack = stack[:runtime.Stack(stack, false)]
	return &PanicError{Value: v, Stack: string(stack)}
}

// call runs fn, routing a panic to the configured handler when there is one.
// It reports whether fn returned normally.
func (c config) call(what string, fn func()) (ok bool) {
	if fn == nil {
		return true
	}
	if c.onPanic == nil {
		fn()
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			c.log().Warn("recovered panic", zap.String("callback", what), zap.Any("value", r))
			c.onPanic(pe)
			ok = false
		}
	}()
	fn()
	return true
}
