package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many rounds by the book and reports the results
type SimulateCmd struct {
	Iterations *int     `short:"n" help:"Rounds per session"`
	Sessions   *int     `help:"Independent sessions to run in parallel"`
	Decks      *int     `help:"Number of decks in the shoe"`
	AISeats    *int     `name:"ai-seats" help:"Number of computer seats"`
	Balance    *float64 `help:"Starting balance"`
	Bet        *float64 `help:"Bet placed every round"`
	NoProgress bool     `help:"Hide the progress bar"`
}

func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Iterations != nil {
		cfg.Simulation.Iterations = *c.Iterations
	}
	if c.Sessions != nil {
		cfg.Simulation.Sessions = *c.Sessions
	}
	if c.Decks != nil {
		cfg.Table.Decks = *c.Decks
	}
	if c.AISeats != nil {
		cfg.SetAISeats(*c.AISeats)
	}
	if c.Balance != nil {
		cfg.Bankroll.StartingBalance = *c.Balance
	}
	if c.Bet != nil {
		cfg.Bankroll.DefaultBet = *c.Bet
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := setup(g, c.apply)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := shared.SetupSignalHandler(e.logger)
	defer stop()

	cfg := e.cfg
	fmt.Println(e.styles.Header.Render("♠ ♥ Blackjack Simulation ♦ ♣"))
	fmt.Printf("%d sessions x %d rounds, seed %d\n", cfg.Simulation.Sessions, cfg.Simulation.Iterations, e.seed)

	simCfg := simulator.Config{
		Rules:      cfg.Rules(),
		Iterations: cfg.Simulation.Iterations,
		Sessions:   cfg.Simulation.Sessions,
		Seed:       e.seed,
		RunID:      time.Now().Unix(),
		Logger:     e.logger,
	}
	var bar *progressBar
	if !c.NoProgress {
		bar = newProgressBar(os.Stdout, g.NoColor)
		simCfg.Progress = bar.Update
	}

	e.logger.Info("Starting simulation",
		"sessions", simCfg.Sessions,
		"iterations", simCfg.Iterations,
		"decks", simCfg.Rules.Decks,
		"ai_seats", simCfg.Rules.AISeats)

	result, err := simulator.New(simCfg).Run(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if len(result.Sessions) > 1 {
		combined := &result.Combined
		low, high := combined.ConfidenceInterval95()
		summary := fmt.Sprintf("All sessions: %d rounds, mean $%+.3f per round (sd %.2f, 95%% CI [%+.3f, %+.3f]) in %s",
			combined.Rounds, combined.Mean(), combined.StdDev(), low, high, result.Runtime.Round(time.Millisecond))
		fmt.Println(e.styles.HandInfo.Render(summary))
		e.logger.Info(summary)
	}

	return e.report(result.Sessions...)
}
