package ammo

import (
	"time"

	"go.uber.org/zap"
)

type config struct {
	logger       *zap.Logger
	name         string
	stopOnReject bool
	onPanic      func(*PanicError)
}

// Option configures a [Sequence], [Poller] or [Buffer].
// Options that do not apply to the configured type are ignored.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger: zap.NewNop(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger used for step, cycle and timer records.
// A nil logger is replaced by a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithName attaches a name to every log record, useful when several
// sequences or pollers share a logger.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithStopOnReject makes a [Sequence] complete as soon as a step rejects.
// By default a rejection is informational and the remaining steps still run.
func WithStopOnReject() Option {
	return func(c *config) {
		c.stopOnReject = true
	}
}

// WithPanicHandler recovers panics raised by callbacks that run on timer
// goroutines ([Poller] handlers and completions, [Buffer] callbacks) and
// passes them to fn as [*PanicError]. Without a handler such panics are
// re-raised and crash the program.
func WithPanicHandler(fn func(*PanicError)) Option {
	return func(c *config) {
		c.onPanic = fn
	}
}

// PollOptions configures a [Poller].
type PollOptions struct {
	// Interval is the wait before every handler call. Negative values
	// are treated as zero.
	Interval time.Duration

	// Complete is called once when the handler stops the poll.
	Complete func()
}

// DefaultBufferTimeout is used when [BufferOptions.Timeout] is not positive.
const DefaultBufferTimeout = 500 * time.Millisecond

// BufferOptions configures one debouncer bound with [Buffer.Bind].
type BufferOptions struct {
	// ID keys the pending timer. Empty means a fresh unique id.
	ID string

	// Timeout is the quiet period before the callback runs.
	Timeout time.Duration
}

func (c config) log() *zap.Logger {
	if c.name == "" {
		return c.logger
	}
	return c.logger.With(zap.String("name", c.name))
}
