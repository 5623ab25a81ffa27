package ammo

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Response carries the outcome of the previous step of a [Sequence].
// After a resolve Err is nil; after a reject Value is nil.
type Response struct {
	Value any
	Err   error
}

// Continuation is handed to every [Step]. Exactly one of Resolve or Reject
// must be called to let the sequence advance; later calls are ignored.
type Continuation struct {
	// Response is the outcome of the previous step. It is the zero value
	// for the first step executed.
	Response Response

	settle func(v any, err error, rejected bool)
}

// Resolve records v as the step's value and advances the sequence.
func (c Continuation) Resolve(v any) {
	c.settle(v, nil, false)
}

// Reject records err as the step's error and advances the sequence.
// Unless the sequence was built with [WithStopOnReject], the remaining
// steps still run.
func (c Continuation) Reject(err error) {
	c.settle(nil, err, true)
}

// Step is one stage of a [Sequence].
type Step func(c Continuation)

type seqState int

const (
	seqIdle seqState = iota
	seqRunning
	seqDone
)

// Sequence runs asynchronous steps strictly one after another. Step k+1
// starts only after step k resolves or rejects. Steps are appended with
// [Sequence.Chain] before [Sequence.Execute] is called.
//
// A step that never settles stalls the sequence forever; there is no
// timeout.
//
//	seq := ammo.NewSequence()
//	seq.Chain(func(c ammo.Continuation) {
//	    go func() { c.Resolve(fetch()) }()
//	}).Chain(func(c ammo.Continuation) {
//	    fmt.Println(c.Response.Value)
//	    c.Resolve(nil)
//	})
//	seq.Execute(0)
//	<-seq.Done()
type Sequence struct {
	cfg config

	mu    sync.Mutex
	steps []Step
	state seqState
	resp  Response
	err   error

	done chan struct{}
}

// NewSequence returns an empty, unstarted sequence.
func NewSequence(opts ...Option) *Sequence {
	return &Sequence{
		cfg:  newConfig(opts),
		done: make(chan struct{}),
	}
}

// Chain appends step and returns s. A nil step is ignored.
//
// Chain panics if called after [Sequence.Execute].
func (s *Sequence) Chain(step Step) *Sequence {
	if step == nil {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != seqIdle {
		panic("ammo: Sequence.Chain called after Execute")
	}
	s.steps = append(s.steps, step)
	return s
}

// Len returns the number of chained steps.
func (s *Sequence) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Execute starts the sequence at step start. Steps that settle synchronously
// run on the calling goroutine before Execute returns; a step that settles
// later resumes the sequence on the goroutine that settles it. If start is
// past the last step the sequence completes immediately.
//
// Execute panics if start is negative or if it is called twice.
func (s *Sequence) Execute(start int) {
	if start < 0 {
		panic("ammo: Sequence.Execute requires start >= 0")
	}
	s.mu.Lock()
	if s.state != seqIdle {
		s.mu.Unlock()
		panic("ammo: Sequence.Execute called twice")
	}
	s.state = seqRunning
	s.mu.Unlock()

	t := &trampoline{step: s.runStep, stop: s.finish}
	t.run(start)
}

func (s *Sequence) runStep(i int, next func(bool)) {
	s.mu.Lock()
	if i >= len(s.steps) {
		s.mu.Unlock()
		next(false)
		return
	}
	step := s.steps[i]
	resp := s.resp
	s.mu.Unlock()

	var settled atomic.Bool
	s.cfg.log().Debug("sequence step", zap.Int("step", i))
	step(Continuation{
		Response: resp,
		settle: func(v any, err error, rejected bool) {
			if !settled.CompareAndSwap(false, true) {
				s.cfg.log().Warn("sequence step settled more than once", zap.Int("step", i))
				return
			}
			s.mu.Lock()
			s.resp = Response{Value: v, Err: err}
			stop := rejected && s.cfg.stopOnReject
			if stop {
				s.err = &StepError{Step: i, Err: err}
			}
			s.mu.Unlock()
			if stop {
				s.cfg.log().Debug("sequence stopped by reject", zap.Int("step", i), zap.Error(err))
			}
			next(!stop)
		},
	})
}

func (s *Sequence) finish() {
	s.mu.Lock()
	if s.state == seqDone {
		s.mu.Unlock()
		return
	}
	s.state = seqDone
	s.mu.Unlock()
	s.cfg.log().Debug("sequence complete")
	close(s.done)
}

// Done returns a channel that is closed when the sequence completes.
func (s *Sequence) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the sequence completes or ctx is done. It returns
// ctx.Err() in the latter case and [Sequence.Err] otherwise.
func (s *Sequence) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Response returns the outcome of the most recently settled step.
func (s *Sequence) Response() Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resp
}

// Err returns a [*StepError] if the sequence was stopped by a reject
// under [WithStopOnReject], and nil otherwise.
func (s *Sequence) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
