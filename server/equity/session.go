package equity

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"rangeview/server/heatmap"
	"rangeview/server/logging"
)

type Status string

const (
	Pending Status = "pending"
	Ready   Status = "ready"
	Failed  Status = "failed"
)

const (
	eventSucceed = "succeed"
	eventFail    = "fail"
)

// Snapshot is a copy of a session's state. Grid is only set when Ready,
// Reason only when Failed.
type Snapshot struct {
	Status Status         `json:"status"`
	Grid   []heatmap.Cell `json:"grid,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

type Options struct {
	Logger *zerolog.Logger
	// OnSettle runs once, on the session goroutine, after the terminal transition.
	// It is not called for results discarded by Close.
	OnSettle func(id uuid.UUID, source string, snap Snapshot)
}

// Session owns one request to the equity service and its single outcome.
// It starts Pending and moves exactly once to Ready or Failed. After Close a
// late result is dropped and the state no longer changes.
type Session struct {
	ID     uuid.UUID
	source string
	logger zerolog.Logger

	mu     sync.Mutex
	sm     *fsm.FSM
	grid   []heatmap.Cell
	reason string
	closed bool

	cancel   context.CancelFunc
	done     chan struct{} // closed once the request returns, result kept or not
	onSettle func(uuid.UUID, string, Snapshot)
}

// Start creates a Pending session and issues its request.
func Start(ctx context.Context, src Source, opts Options) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       uuid.New(),
		source:   src.Name(),
		cancel:   cancel,
		done:     make(chan struct{}),
		onSettle: opts.OnSettle,
	}
	base := zerolog.New(io.Discard)
	if opts.Logger != nil {
		base = *opts.Logger
	}
	s.logger = base.With().
		Str(logging.SessionIDKey, s.ID.String()).
		Str(logging.SourceKey, s.source).
		Logger()

	s.sm = fsm.NewFSM(
		string(Pending),
		fsm.Events{
			{Name: eventSucceed, Src: []string{string(Pending)}, Dst: string(Ready)},
			{Name: eventFail, Src: []string{string(Pending)}, Dst: string(Failed)},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { s.logger.Info().Msgf("[%s] ===> [%s]", e.Src, e.Dst) },
		},
	)

	Metrics.SessionStarted()
	go s.run(ctx, src)
	return s
}

func (s *Session) run(ctx context.Context, src Source) {
	defer close(s.done)
	started := time.Now()

	resp, err := src.Fetch(ctx)
	var grid []heatmap.Cell
	if err == nil {
		grid, err = heatmap.Build(resp.Hands, resp.Equities)
		if err != nil {
			err = errors.Wrap(err, "malformed equity data")
		}
	}
	s.settle(grid, err, time.Since(started))
}

func (s *Session) settle(grid []heatmap.Cell, err error, elapsed time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug().Msg("session closed while pending, result discarded")
		Metrics.SessionSettled("discarded", elapsed.Seconds())
		return
	}
	if s.sm.Current() != string(Pending) {
		s.mu.Unlock()
		return
	}
	event := eventSucceed
	if err != nil {
		event = eventFail
		s.reason = err.Error()
	} else {
		s.grid = grid
	}
	if ferr := s.sm.Event(event); ferr != nil {
		s.logger.Error().Err(ferr).Msg("unexpected state machine error")
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if snap.Status == Failed {
		s.logger.Warn().Str(logging.OutcomeKey, string(Failed)).Msg(snap.Reason)
	}
	Metrics.SessionSettled(string(snap.Status), elapsed.Seconds())
	if s.onSettle != nil {
		s.onSettle(s.ID, s.source, snap)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Status: Status(s.sm.Current())}
	switch snap.Status {
	case Ready:
		snap.Grid = append([]heatmap.Cell(nil), s.grid...)
	case Failed:
		snap.Reason = s.reason
	}
	return snap
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Source() string { return s.source }

// Wait blocks until the session settles or ctx ends, then returns the current state.
func (s *Session) Wait(ctx context.Context) Snapshot {
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return s.Snapshot()
}

// Close tears the session down. A Pending session stays Pending forever and
// its outstanding request is cancelled.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
