// pkg/timer/scoped.go
package timer

// Stopper is the part of a timer a Scoped measurement drives.
type Stopper interface {
	Start()
	Stop() float64
}

// Callback receives the measured duration in milliseconds.
type Callback func(ms float64)

// Logger is the side channel for callback panics. *service.Logger from
// benthos satisfies it.
type Logger interface {
	Warnf(format string, v ...any)
}

type scopedOptions struct {
	logger  Logger
	onPanic func(recovered any)
}

// ScopedOption configures a Scoped measurement.
type ScopedOption func(*scopedOptions)

// WithLogger logs callback panics recovered by End.
func WithLogger(l Logger) ScopedOption {
	return func(o *scopedOptions) {
		o.logger = l
	}
}

// WithPanicHandler hands callback panics recovered by End to fn.
func WithPanicHandler(fn func(recovered any)) ScopedOption {
	return func(o *scopedOptions) {
		o.onPanic = fn
	}
}

// Scoped starts a timer when created and, when End is called, stops it and
// passes the result to its callback. Pair Begin with a deferred End so the
// callback runs on every exit path, including panics:
//
//	defer timer.Begin(func(ms float64) { log.Printf("took %.3fms", ms) }).End()
//
// A Scoped must not be copied.
type Scoped[T Stopper] struct {
	_ noCopy

	timer T
	cb    Callback
	opts  scopedOptions
	ended bool
}

// Begin starts a measurement on a new Timer using the default clock.
func Begin(cb Callback, opts ...ScopedOption) *Scoped[*Timer] {
	return BeginWith(New(), cb, opts...)
}

// BeginWith starts a measurement on t. The Scoped takes ownership of t.
func BeginWith[T Stopper](t T, cb Callback, opts ...ScopedOption) *Scoped[T] {
	s := &Scoped[T]{timer: t, cb: cb}
	for _, opt := range opts {
		opt(&s.opts)
	}
	s.timer.Start()
	return s
}

// End stops the timer and invokes the callback with the elapsed
// milliseconds. Only the first call has any effect. A panic raised by the
// callback is recovered and reported to the configured logger and panic
// handler, never propagated.
func (s *Scoped[T]) End() {
	if s.ended {
		return
	}
	s.ended = true

	ms := s.timer.Stop()
	if s.cb == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.reportPanic(r)
		}
	}()
	s.cb(ms)
}

// Ended reports whether End has run.
func (s *Scoped[T]) Ended() bool {
	return s.ended
}

func (s *Scoped[T]) reportPanic(r any) {
	if s.opts.logger != nil {
		s.opts.logger.Warnf("Elapsed time callback panicked, ignoring: %v", r)
	}
	if s.opts.onPanic != nil {
		s.opts.onPanic(r)
	}
}

// Measure runs fn inside a Scoped measurement and returns its error. The
// callback is invoked even if fn panics; the panic then keeps unwinding.
func Measure(cb Callback, fn func() error, opts ...ScopedOption) error {
	defer Begin(cb, opts...).End()
	return fn()
}
