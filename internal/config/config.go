// Package config loads session settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// MaxAISeats is the most computer seats a table accepts
const MaxAISeats = 6

var logLevels = []string{"debug", "info", "warn", "error"}

// Config represents the complete session configuration
type Config struct {
	Table      TableSettings      `hcl:"table,block"`
	Bankroll   BankrollSettings   `hcl:"bankroll,block"`
	Payout     PayoutSettings     `hcl:"payout,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
	Log        LogSettings        `hcl:"log,block"`
}

// TableSettings describes the shoe and the seats
type TableSettings struct {
	Decks              int     `hcl:"decks,optional"`
	AISeats            *int    `hcl:"ai_seats,optional"`
	ReshuffleThreshold float64 `hcl:"reshuffle_threshold,optional"`
}

// BankrollSettings holds the human seat's money settings
type BankrollSettings struct {
	StartingBalance float64 `hcl:"starting_balance,optional"`
	DefaultBet      float64 `hcl:"default_bet,optional"`
	MinBet          float64 `hcl:"min_bet,optional"`
}

// PayoutSettings is the blackjack payout ratio
type PayoutSettings struct {
	BlackjackNumerator   float64 `hcl:"blackjack_numerator,optional"`
	BlackjackDenominator float64 `hcl:"blackjack_denominator,optional"`
}

// SimulationSettings controls batch runs. A zero seed picks one at random.
type SimulationSettings struct {
	Iterations int   `hcl:"iterations,optional"`
	Sessions   int   `hcl:"sessions,optional"`
	Seed       int64 `hcl:"seed,optional"`
}

// LogSettings controls the results log
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// fileConfig mirrors Config with every block optional
type fileConfig struct {
	Table      *TableSettings      `hcl:"table,block"`
	Bankroll   *BankrollSettings   `hcl:"bankroll,block"`
	Payout     *PayoutSettings     `hcl:"payout,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// DefaultConfig returns six decks, two computer seats, a $1000 bankroll
// betting $25 and a 6:5 payout
func DefaultConfig() *Config {
	rules := game.DefaultRules()
	aiSeats := rules.AISeats
	return &Config{
		Table: TableSettings{
			Decks:              rules.Decks,
			AISeats:            &aiSeats,
			ReshuffleThreshold: rules.ReshuffleThreshold,
		},
		Bankroll: BankrollSettings{
			StartingBalance: rules.StartingBalance,
			DefaultBet:      rules.DefaultBet,
			MinBet:          rules.MinBet,
		},
		Payout: PayoutSettings{
			BlackjackNumerator:   rules.BlackjackPayoutNumerator,
			BlackjackDenominator: rules.BlackjackPayoutDenominator,
		},
		Simulation: SimulationSettings{
			Iterations: 1000,
			Sessions:   1,
		},
		Log: LogSettings{
			Level: "info",
			File:  "logs/results.log",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and back-fills anything it leaves unset
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := DefaultConfig()
	def := DefaultConfig()

	if t := fc.Table; t != nil {
		cfg.Table.Decks = orInt(t.Decks, def.Table.Decks)
		if t.AISeats != nil {
			cfg.Table.AISeats = t.AISeats
		}
		cfg.Table.ReshuffleThreshold = orFloat(t.ReshuffleThreshold, def.Table.ReshuffleThreshold)
	}
	if b := fc.Bankroll; b != nil {
		cfg.Bankroll.StartingBalance = orFloat(b.StartingBalance, def.Bankroll.StartingBalance)
		cfg.Bankroll.DefaultBet = orFloat(b.DefaultBet, def.Bankroll.DefaultBet)
		cfg.Bankroll.MinBet = orFloat(b.MinBet, def.Bankroll.MinBet)
	}
	if p := fc.Payout; p != nil {
		cfg.Payout.BlackjackNumerator = orFloat(p.BlackjackNumerator, def.Payout.BlackjackNumerator)
		cfg.Payout.BlackjackDenominator = orFloat(p.BlackjackDenominator, def.Payout.BlackjackDenominator)
	}
	if s := fc.Simulation; s != nil {
		cfg.Simulation.Iterations = orInt(s.Iterations, def.Simulation.Iterations)
		cfg.Simulation.Sessions = orInt(s.Sessions, def.Simulation.Sessions)
		cfg.Simulation.Seed = s.Seed
	}
	if l := fc.Log; l != nil {
		if l.Level != "" {
			cfg.Log.Level = l.Level
		}
		if l.File != "" {
			cfg.Log.File = l.File
		}
	}

	return cfg, nil
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Validate rejects configurations that cannot start a session
func (c *Config) Validate() error {
	var errs []error

	aiSeats := 0
	if c.Table.AISeats != nil {
		aiSeats = *c.Table.AISeats
	}
	if aiSeats > MaxAISeats {
		errs = append(errs, fmt.Errorf("ai_seats must be at most %d, got %d", MaxAISeats, aiSeats))
	}
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Simulation.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Simulation.Iterations))
	}
	if c.Simulation.Sessions < 1 {
		errs = append(errs, fmt.Errorf("sessions must be at least 1, got %d", c.Simulation.Sessions))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}

// Rules projects the configuration onto the table rules
func (c *Config) Rules() game.Rules {
	aiSeats := 0
	if c.Table.AISeats != nil {
		aiSeats = *c.Table.AISeats
	}
	return game.Rules{
		Decks:                      c.Table.Decks,
		AISeats:                    aiSeats,
		ReshuffleThreshold:         c.Table.ReshuffleThreshold,
		StartingBalance:            c.Bankroll.StartingBalance,
		DefaultBet:                 c.Bankroll.DefaultBet,
		MinBet:                     c.Bankroll.MinBet,
		BlackjackPayoutNumerator:   c.Payout.BlackjackNumerator,
		BlackjackPayoutDenominator: c.Payout.BlackjackDenominator,
	}
}

// SetAISeats overrides the number of computer seats
func (c *Config) SetAISeats(n int) {
	c.Table.AISeats = &n
}
