package ammo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PollHandler is called once per poll cycle. It must call resolve once:
// true schedules another cycle, false stops polling.
type PollHandler func(resolve func(more bool))

// Poller repeatedly waits [PollOptions.Interval] and then calls a handler,
// until the handler resolves with false.
//
// Each wait is a single-shot timer started when the previous handler
// resolves, so cycles drift by the time handlers take. There is no
// iteration cap.
type Poller struct {
	opts PollOptions
	cfg  config
}

// NewPoller returns a Poller with the given settings.
func NewPoller(opts PollOptions, options ...Option) *Poller {
	if opts.Interval < 0 {
		opts.Interval = 0
	}
	return &Poller{opts: opts, cfg: newConfig(options)}
}

// Poll returns a function bound to opts that starts polling with the
// handler it is given.
//
//	done := ammo.Poll(ammo.PollOptions{Interval: time.Second})(ctx, func(resolve func(bool)) {
//	    resolve(!ready())
//	})
//	<-done
func Poll(opts PollOptions, options ...Option) func(ctx context.Context, handler PollHandler) <-chan struct{} {
	return NewPoller(opts, options...).Run
}

// Run starts polling and returns immediately. The returned channel is closed
// when polling ends: after Complete returns when the handler resolves with
// false, or as soon as ctx is done. Cancellation does not call Complete.
//
// Handlers run on timer goroutines. Run panics if handler is nil.
func (p *Poller) Run(ctx context.Context, handler PollHandler) <-chan struct{} {
	if handler == nil {
		panic("ammo: Poller.Run requires a handler")
	}
	r := &pollRun{
		p:       p,
		handler: handler,
		done:    make(chan struct{}),
	}
	r.mu.Lock()
	r.stopWatch = context.AfterFunc(ctx, r.cancel)
	if ctx.Err() == nil {
		r.schedule()
	}
	r.mu.Unlock()
	return r.done
}

type pollRun struct {
	p       *Poller
	handler PollHandler

	mu        sync.Mutex
	timer     *time.Timer
	cycle     int
	finished  bool
	stopWatch func() bool

	done chan struct{}
}

// schedule must be called with r.mu held.
func (r *pollRun) schedule() {
	r.timer = time.AfterFunc(r.p.opts.Interval, r.fire)
}

func (r *pollRun) fire() {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.cycle++
	cycle := r.cycle
	r.mu.Unlock()

	r.p.cfg.log().Debug("poll cycle", zap.Int("cycle", cycle))

	var once sync.Once
	resolve := func(more bool) {
		called := false
		once.Do(func() { called = true })
		if !called {
			r.p.cfg.log().Warn("poll cycle resolved more than once", zap.Int("cycle", cycle))
			return
		}
		if more {
			r.mu.Lock()
			if !r.finished {
				r.schedule()
			}
			r.mu.Unlock()
			return
		}
		r.complete()
	}

	if !r.p.cfg.call("poll handler", func() { r.handler(resolve) }) {
		// A recovered handler panic ends polling without Complete.
		r.cancel()
	}
}

func (r *pollRun) complete() {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.finished = true
	stopWatch := r.stopWatch
	r.mu.Unlock()

	stopWatch()
	defer close(r.done)
	r.p.cfg.call("poll complete", r.p.opts.Complete)
	r.p.cfg.log().Debug("poll complete")
}

func (r *pollRun) cancel() {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.finished = true
	if r.timer != nil {
		r.timer.Stop()
	}
	stopWatch := r.stopWatch
	r.mu.Unlock()

	stopWatch()
	r.p.cfg.log().Debug("poll cancelled")
	close(r.done)
}
