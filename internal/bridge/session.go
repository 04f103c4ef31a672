package bridge

import (
	"context"
	"log/slog"
	"time"
)

// Run outcomes reported to an Observer.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Observer receives session events. Implementations must be cheap; they run
// on the caller's goroutine.
type Observer interface {
	ObserveSet(name string)
	ObserveRun(status string, elapsed time.Duration)
}

// Session owns one engine handle and enforces the invocation protocol.
type Session struct {
	engine   Engine
	handle   Handle
	state    State
	observer Observer
	now      func() time.Time
	runs     int
}

// Option configures a Session.
type Option func(*Session)

// WithObserver attaches an observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithClock replaces time.Now for run durations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a handle on e and returns a session in state CREATED.
func NewSession(e Engine, opts ...Option) *Session {
	s := &Session{
		engine: e,
		handle: e.Create(),
		state:  Created,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current protocol state.
func (s *Session) State() State {
	return s.state
}

// EngineVersion returns the version of the engine behind this session.
func (s *Session) EngineVersion() string {
	return s.engine.Version()
}

// Runs returns the number of successfully published runs.
func (s *Session) Runs() int {
	return s.runs
}

// Set writes one exchange value. After a published run, Set returns the
// session to INPUTS_SET for the next run.
func (s *Session) Set(name string, v float64) error {
	if s.state == Closed {
		return closedError("set")
	}
	s.handle.SetValue(name, v)
	s.state = InputsSet
	if s.observer != nil {
		s.observer.ObserveSet(name)
	}
	return nil
}

// Get reads one exchange value. Unknown names return the engine sentinel.
func (s *Session) Get(name string) (float64, error) {
	if s.state == Closed {
		return 0, closedError("get")
	}
	return s.handle.GetValue(name), nil
}

// Run executes commit, conditional defaults, compute and publish in that
// order. ctx is only checked before the pipeline starts; compute itself is
// not interruptible.
//
// On compute failure the session is left in INPUTS_SET with the previous
// published outputs unchanged.
func (s *Session) Run(ctx context.Context) error {
	if s.state == Closed {
		return closedError("run")
	}
	if err := ctx.Err(); err != nil {
		s.observe(StatusCanceled, 0)
		return &ProtocolError{Code: CodeCanceled, Op: "run", State: s.state, err: ErrCanceled, cause: err}
	}

	start := s.now()
	slog.Debug("run starting", "run", s.runs+1, "state", s.state.String())

	s.handle.CommitInputs()
	s.state = InputsSet

	s.handle.ApplyConditionalDefaults()
	s.state = Defaulted

	if err := s.handle.Compute(); err != nil {
		s.state = InputsSet
		elapsed := s.now().Sub(start)
		slog.Warn("compute failed", "run", s.runs+1, "error", err)
		s.observe(StatusFailed, elapsed)
		return &ProtocolError{Code: CodeComputeFailed, Op: "compute", State: Defaulted, err: ErrComputeFailed, cause: err}
	}
	s.state = Computed

	s.handle.PublishOutputs()
	s.state = Published
	s.runs++

	elapsed := s.now().Sub(start)
	slog.Debug("run published", "run", s.runs, "elapsed", elapsed)
	s.observe(StatusOK, elapsed)
	return nil
}

func (s *Session) observe(status string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveRun(status, elapsed)
	}
}

// Close destroys the handle. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.state == Closed {
		return nil
	}
	s.handle.Destroy()
	s.handle = nil
	s.state = Closed
	return nil
}
