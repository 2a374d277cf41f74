package drill

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuidrill/internal/generator"
	"github.com/verte-zerg/tuidrill/internal/model"
)

const defaultBackoff = time.Second

// State is a step of the session loop.
type State int32

const (
	StateIdle State = iota
	StateBuildingPool
	StateQuestioning
	StateVerifying
	StateSplicing
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuildingPool:
		return "building-pool"
	case StateQuestioning:
		return "questioning"
	case StateVerifying:
		return "verifying"
	case StateSplicing:
		return "splicing"
	case StateTimedOut:
		return "timed-out"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Observer is notified from the session goroutine as the drill progresses.
type Observer interface {
	PassStarted(words int)
	QuestionDone(q Question, res Result, inserted int)
}

type nopObserver struct{}

func (nopObserver) PassStarted(int)                    {}
func (nopObserver) QuestionDone(Question, Result, int) {}

var errPassPanicked = errors.New("drill pass panicked")

// Session drives passes over the corpus until the user goes idle.
type Session struct {
	cfg      model.Config
	lines    []string
	verifier *Verifier
	gen      *generator.Generator
	logger   *zap.Logger
	observer Observer
	backoff  time.Duration

	state atomic.Int32
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithGenerator sets the randomness source.
func WithGenerator(gen *generator.Generator) Option {
	return func(s *Session) { s.gen = gen }
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithBackoff sets the pause after an empty pool or a failed pass.
func WithBackoff(d time.Duration) Option {
	return func(s *Session) { s.backoff = d }
}

// NewSession wires a session to its keystroke mailbox and display.
func NewSession(cfg model.Config, lines []string, mailbox *Mailbox, display Display, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		lines:    lines,
		verifier: NewVerifier(mailbox, display, cfg.IdleTimeout, WithHesitation(cfg.Hesitation)),
		logger:   zap.NewNop(),
		observer: nopObserver{},
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = generator.New()
	}
	return s
}

// State returns the current step of the loop.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Run loops over passes until the idle timeout fires or ctx is cancelled.
// It returns ErrSessionTimedOut or the context error; failed passes are
// logged and followed by a fresh one.
func (s *Session) Run(ctx context.Context) error {
	for {
		err := s.safePass(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrSessionTimedOut):
			s.setState(StateTimedOut)
			s.logger.Info("no keystroke within idle timeout", zap.Duration("idle_timeout", s.cfg.IdleTimeout))
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		}
		s.logger.Error("drill pass failed, starting over", zap.Error(err))
		if err := s.wait(ctx); err != nil {
			return err
		}
	}
}

func (s *Session) safePass(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered panic in drill pass", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", errPassPanicked, r)
		}
	}()
	return s.pass(ctx)
}

func (s *Session) pass(ctx context.Context) error {
	s.setState(StateBuildingPool)
	pool := BuildPool(s.lines, s.gen)
	if len(pool) == 0 {
		s.logger.Warn("corpus produced an empty pool", zap.Duration("backoff", s.backoff))
		return s.wait(ctx)
	}
	s.observer.PassStarted(len(pool))

	spliced := 0
	for idx := 0; idx < len(pool); {
		s.setState(StateQuestioning)
		q := NextQuestion(pool, idx, s.cfg.Threshold)
		s.logger.Debug("question", zap.String("text", q.Text), zap.Int("start", q.Start), zap.Int("end", q.End), zap.Int("pool", len(pool)))

		s.setState(StateVerifying)
		res, err := s.verifier.Verify(ctx, q)
		if err != nil {
			return err
		}

		s.setState(StateSplicing)
		inserted := 0
		if s.cfg.Punish && len(res.Mismatches) > 0 {
			pool, inserted = SpliceAtMost(pool, q.End, res.Mismatches, s.spliceRoom(spliced), s.gen)
			spliced += inserted
			s.logger.Debug("punishment spliced",
				zap.Int("mismatches", len(res.Mismatches)),
				zap.Int("inserted", inserted),
				zap.Int("at", q.End),
			)
		}
		s.observer.QuestionDone(q, res, inserted)
		idx = q.End
	}
	return nil
}

// spliceRoom is how many more punishment tokens this pass may take.
func (s *Session) spliceRoom(spliced int) int {
	if s.cfg.PunishCap <= 0 {
		return math.MaxInt
	}
	return max(s.cfg.PunishCap-spliced, 0)
}

func (s *Session) wait(ctx context.Context) error {
	timer := time.NewTimer(s.backoff)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) setState(st State) {
	prev := State(s.state.Swap(int32(st)))
	if prev != st {
		s.logger.Debug("state", zap.Stringer("from", prev), zap.Stringer("to", st))
	}
}
