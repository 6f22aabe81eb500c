package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func TestDefaultConfigMatchesDefaultRules(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
	assert.Equal(t, 1000, cfg.Simulation.Iterations)
	assert.Equal(t, "logs/results.log", cfg.Log.File)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigBackFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	src := `
table {
  decks    = 2
  ai_seats = 0
}

bankroll {
  default_bet = 10
}

payout {
  blackjack_numerator   = 3
  blackjack_denominator = 2
}

simulation {
  iterations = 5000
  sessions   = 4
  seed       = 99
}

log {
  level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	rules := cfg.Rules()
	assert.Equal(t, 2, rules.Decks)
	assert.Equal(t, 0, rules.AISeats, "explicit zero seats is kept")
	assert.InDelta(t, 0.25, rules.ReshuffleThreshold, 1e-9)
	assert.InDelta(t, 1000.0, rules.StartingBalance, 1e-9)
	assert.InDelta(t, 10.0, rules.DefaultBet, 1e-9)
	assert.InDelta(t, 1.0, rules.MinBet, 1e-9)
	assert.InDelta(t, 15.0, rules.BlackjackPayout(10), 1e-9)

	assert.Equal(t, 5000, cfg.Simulation.Iterations)
	assert.Equal(t, 4, cfg.Simulation.Sessions)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/results.log", cfg.Log.File)
}

func TestParseConfigRejectsBadHCL(t *testing.T) {
	_, err := ParseConfig([]byte(`table { decks = }`), "bad.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL")

	_, err = ParseConfig([]byte(`table { shoes = 6 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero decks", func(c *Config) { c.Table.Decks = 0 }, "decks"},
		{"too many seats", func(c *Config) { c.SetAISeats(7) }, "ai_seats"},
		{"negative seats", func(c *Config) { c.SetAISeats(-1) }, "computer seats"},
		{"threshold of one", func(c *Config) { c.Table.ReshuffleThreshold = 1 }, "reshuffle threshold"},
		{"default below min", func(c *Config) { c.Bankroll.MinBet = 50 }, "default bet"},
		{"zero iterations", func(c *Config) { c.Simulation.Iterations = 0 }, "iterations"},
		{"zero sessions", func(c *Config) { c.Simulation.Sessions = 0 }, "sessions"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log level"},
		{"zero payout", func(c *Config) { c.Payout.BlackjackDenominator = 0 }, "payout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
