package ammo

// RecurHandler is called once per iteration of [RecurIter]. It must call
// resolve exactly once: true continues with index+1, false stops.
type RecurHandler func(resolve func(more bool), index int)

// RecurIter calls handler with index start, start+1, ... for as long as the
// handler resolves with true. When it resolves with false, complete is
// called (if non-nil) and iteration ends.
//
// Iterations that resolve synchronously are run by a loop on the calling
// goroutine, so the iteration count is not bounded by stack depth. If a
// handler resolves later from another goroutine, iteration resumes there.
// A handler that never resolves ends iteration without calling complete.
//
// RecurIter panics if handler is nil or start is negative.
func RecurIter(handler RecurHandler, complete func(), start int) {
	if handler == nil {
		panic("ammo: RecurIter requires a handler")
	}
	if start < 0 {
		panic("ammo: RecurIter requires start >= 0")
	}
	t := &trampoline{
		step: func(i int, next func(bool)) {
			handler(next, i)
		},
		stop: complete,
	}
	t.run(start)
}
