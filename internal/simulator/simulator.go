// Package simulator plays many auto-bet rounds to estimate the expected
// value of basic strategy under the configured house rules.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rules      game.Rules
	Iterations int // rounds per session
	Sessions   int // independent sessions, each with its own shoe
	Seed       int64
	RunID      int64
	Logger     *log.Logger
	Clock      quartz.Clock

	// Progress is called after every round with the number of rounds
	// completed across all sessions. It may be called concurrently.
	Progress func(done, total int)
}

// Result holds every session's statistics and the combined round samples
type Result struct {
	Sessions []*statistics.Session
	Combined statistics.Statistics
	Runtime  time.Duration
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Sessions < 1 {
		config.Sessions = 1
	}
	return &Simulator{config: config}
}

// Run plays every session to completion. Sessions run concurrently; rounds
// within a session never do. A session that runs out of money ends early.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", s.config.Iterations)
	}
	if err := s.config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	start := s.config.Clock.Now()
	total := s.config.Iterations * s.config.Sessions
	var done atomic.Int64

	sessions := make([]*statistics.Session, s.config.Sessions)
	g, ctx := errgroup.WithContext(ctx)
	for i := range sessions {
		g.Go(func() error {
			session, err := s.runSession(ctx, i, &done, total)
			sessions[i] = session
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Sessions: sessions,
		Runtime:  s.config.Clock.Since(start),
	}
	for _, session := range sessions {
		result.Combined.Merge(&session.Rounds)
	}
	if err := result.Combined.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"sessions", len(sessions),
		"rounds", result.Combined.Rounds,
		"mean", result.Combined.Mean(),
		"runtime", result.Runtime)
	return result, nil
}

func (s *Simulator) runSession(ctx context.Context, index int, done *atomic.Int64, total int) (*statistics.Session, error) {
	rules := s.config.Rules
	logger := s.config.Logger.With("session", index)

	session := statistics.NewSession(s.config.RunID+int64(index), "Simulation", rules.StartingBalance, rules.DefaultBet)
	session.Iterations = s.config.Iterations

	bus := game.NewEventBus()
	bus.Subscribe(session)

	table, err := game.NewTable(rules, randutil.Derive(s.config.Seed, index),
		game.WithAutoPlay(),
		game.WithEventBus(bus),
		game.WithLogger(logger),
		game.WithClock(s.config.Clock),
	)
	if err != nil {
		return nil, err
	}

	start := s.config.Clock.Now()
	for round := 0; round < s.config.Iterations; round++ {
		if err := ctx.Err(); err != nil {
			return session, err
		}

		_, err := table.PlayRound()
		switch {
		case err == nil:
		case errors.Is(err, game.ErrInsufficientFunds):
			logger.Info("Balance exhausted, ending session early", "round", round, "balance", table.Balance())
			session.Finish(s.config.Clock.Since(start))
			return session, session.Validate()
		case errors.Is(err, game.ErrRoundAborted):
			logger.Warn("Round aborted", "round", round, "error", err)
		default:
			return session, fmt.Errorf("session %d round %d: %w", index, round, err)
		}

		n := done.Add(1)
		if s.config.Progress != nil {
			s.config.Progress(int(n), total)
		}
	}

	session.Finish(s.config.Clock.Since(start))
	return session, session.Validate()
}
