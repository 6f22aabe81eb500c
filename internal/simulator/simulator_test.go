package simulator

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func testConfig() Config {
	return Config{
		Rules:      game.DefaultRules(),
		Iterations: 200,
		Sessions:   1,
		Seed:       12345,
		Logger:     log.New(io.Discard),
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Iterations: 10})
	require.NotNil(t, sim)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
	assert.Equal(t, 1, sim.config.Sessions)
}

func TestRunSingleSession(t *testing.T) {
	result, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Sessions, 1)
	session := result.Sessions[0]
	assert.Equal(t, "Simulation", session.Mode)
	assert.Equal(t, 200, session.Iterations)
	assert.LessOrEqual(t, session.HandsPlayed, 200)
	assert.Positive(t, session.HandsPlayed)
	assert.Equal(t, session.HandsPlayed, result.Combined.Rounds)
	require.NoError(t, session.Validate())
}

func TestRunIsReproducible(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions = 3

	first, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for i := range first.Sessions {
		assert.Equal(t, first.Sessions[i].BalanceHistory, second.Sessions[i].BalanceHistory)
	}
	assert.NotEqual(t, first.Sessions[0].BalanceHistory, first.Sessions[1].BalanceHistory,
		"sessions draw from independent streams")
}

func TestRunEndsEarlyWhenBroke(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.StartingBalance = 50
	cfg.Rules.DefaultBet = 50
	cfg.Iterations = 10000

	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	session := result.Sessions[0]
	assert.Less(t, session.HandsPlayed, 10000)
	assert.Less(t, session.FinalBalance, 50.0)
}

func TestRunReportsProgressAndRuntime(t *testing.T) {
	clock := quartz.NewMock(t)
	cfg := testConfig()
	cfg.Iterations = 50
	cfg.Clock = clock

	var mu sync.Mutex
	var calls []int
	cfg.Progress = func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 50, total)
		calls = append(calls, done)
		clock.Advance(time.Millisecond)
	}

	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	session := result.Sessions[0]
	require.Len(t, calls, session.HandsPlayed)
	assert.Equal(t, session.HandsPlayed, calls[len(calls)-1])
	assert.Equal(t, time.Duration(session.HandsPlayed)*time.Millisecond, session.Runtime)
	assert.Equal(t, session.Runtime, result.Runtime)
	assert.Equal(t, time.Millisecond, session.AvgTimePerHand())
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Iterations = 0
	_, err := New(cfg).Run(context.Background())
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Rules.Decks = 0
	_, err = New(cfg).Run(context.Background())
	assert.Error(t, err)
}
