package ammo

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Buffer debounces callbacks by id. At most one callback is pending per id;
// triggering an id again cancels the pending callback and restarts the wait.
// Different ids do not affect each other.
//
// Callbacks run on timer goroutines. A Buffer is safe for concurrent use.
type Buffer struct {
	cfg config

	mu     sync.Mutex
	timers map[string]*pending
}

type pending struct {
	timer *time.Timer
}

// NewBuffer returns an empty Buffer.
func NewBuffer(opts ...Option) *Buffer {
	return &Buffer{
		cfg:    newConfig(opts),
		timers: make(map[string]*pending),
	}
}

// Debounce returns a debouncer backed by its own [Buffer].
//
//	save := ammo.Debounce(ammo.BufferOptions{ID: "save", Timeout: 200 * time.Millisecond})
//	for range edits {
//	    save(flush)
//	}
func Debounce(opts BufferOptions, options ...Option) func(callback func()) {
	return NewBuffer(options...).Bind(opts)
}

// Bind returns a debouncer keyed to opts. Every call of the returned
// function triggers opts.ID with opts.Timeout.
//
// An empty ID is replaced by a fresh ULID, so debouncers bound without an
// id never share a timer. A non-positive Timeout means
// [DefaultBufferTimeout].
func (b *Buffer) Bind(opts BufferOptions) func(callback func()) {
	if opts.ID == "" {
		opts.ID = ulid.Make().String()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBufferTimeout
	}
	return func(callback func()) {
		b.Trigger(opts.ID, opts.Timeout, callback)
	}
}

// Trigger schedules callback to run after timeout under id, cancelling the
// callback already pending under id. A nil callback only cancels.
func (b *Buffer) Trigger(id string, timeout time.Duration, callback func()) {
	if timeout <= 0 {
		timeout = DefaultBufferTimeout
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.timers[id]; ok {
		prev.timer.Stop()
		delete(b.timers, id)
		b.cfg.log().Debug("buffer pre-empted", zap.String("id", id))
	}
	if callback == nil {
		return
	}

	p := &pending{}
	p.timer = time.AfterFunc(timeout, func() {
		b.mu.Lock()
		if b.timers[id] != p {
			// Replaced or cancelled after the timer fired.
			b.mu.Unlock()
			return
		}
		delete(b.timers, id)
		b.mu.Unlock()

		b.cfg.log().Debug("buffer fired", zap.String("id", id))
		b.cfg.call("buffer callback", callback)
	})
	b.timers[id] = p
}

// Cancel drops the callback pending under id. It reports whether one was
// pending.
func (b *Buffer) Cancel(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.timers[id]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(b.timers, id)
	return true
}

// Pending returns the number of ids with a callback waiting to run.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers)
}

// Stop cancels every pending callback.
func (b *Buffer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, p := range b.timers {
		p.timer.Stop()
		delete(b.timers, id)
	}
}
