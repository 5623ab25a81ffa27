// Package ammo provides small control-flow helpers built on continuations
// and timers.
//
// # Sequences
//
// [Sequence] chains asynchronous steps and runs them strictly in order.
// Each [Step] receives a [Continuation] carrying the previous step's
// [Response] and must call [Continuation.Resolve] or
// [Continuation.Reject] to advance:
//
//	seq := ammo.NewSequence()
//	seq.Chain(func(c ammo.Continuation) { c.Resolve(1) }).
//	    Chain(func(c ammo.Continuation) { c.Resolve(c.Response.Value.(int) + 1) })
//	seq.Execute(0)
//
// A reject does not stop the sequence unless it was built with
// [WithStopOnReject], in which case [Sequence.Err] returns a [*StepError].
//
// # Iteration and Polling
//
//   - [RecurIter]: run a handler with increasing indexes until it resolves
//     with false. Synchronous chains are driven by a loop, not recursion.
//   - [Poll] and [Poller]: wait an interval, call a handler, repeat until
//     the handler resolves with false. Cancellation via [context.Context].
//
// # Debouncing
//
// [Buffer] keeps at most one pending callback per id. [Buffer.Bind] and
// [Debounce] return a function that restarts the wait on every call:
//
//	save := ammo.Debounce(ammo.BufferOptions{ID: "save", Timeout: 50 * time.Millisecond})
//	save(func() { fmt.Println("saved") })
//
// # Observability
//
// Every type accepts [WithLogger] for a [go.uber.org/zap] logger and
// [WithName] to tag records. Callbacks that run on timer goroutines can be
// guarded with [WithPanicHandler].
//
// # Subpackages
//
// [github.com/baxromumarov/ammo/dom] provides a chainable selection API over
// parsed HTML documents, and [github.com/baxromumarov/ammo/value] provides
// dynamic value predicates, ordered objects and strong-typed records.
package ammo
