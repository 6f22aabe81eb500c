package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// PlayCmd plays interactive rounds until the player quits or runs out of money
type PlayCmd struct {
	Decks   *int     `help:"Number of decks in the shoe"`
	AISeats *int     `name:"ai-seats" help:"Number of computer seats"`
	Balance *float64 `help:"Starting balance"`
	Bet     *float64 `help:"Default bet"`
}

func (c *PlayCmd) apply(cfg *config.Config) {
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

func (c *PlayCmd) Run(g *Globals) error {
	e, err := setup(g, c.apply)
	if err != nil {
		return err
	}
	defer e.Close()

	rules := e.cfg.Rules()
	clock := quartz.NewReal()
	session := statistics.NewSession(time.Now().Unix(), "Interactive", rules.StartingBalance, rules.DefaultBet)

	bus := game.NewEventBus()
	bus.Subscribe(console.NewRenderer(os.Stdout, e.styles))
	bus.Subscribe(session)

	input := console.NewLineInput(os.Stdin, os.Stdout, e.styles)
	table, err := game.NewTable(rules, randutil.New(e.seed),
		game.WithInput(input),
		game.WithEventBus(bus),
		game.WithLogger(e.logger),
		game.WithClock(clock),
	)
	if err != nil {
		return err
	}

	fmt.Println(e.styles.Header.Render("♠ ♥ Blackjack ♦ ♣"))
	fmt.Printf("%d decks, %d computer seats, blackjack pays %v:%v\n",
		rules.Decks, rules.AISeats, rules.BlackjackPayoutNumerator, rules.BlackjackPayoutDenominator)
	e.logger.Info("Starting interactive session", "decks", rules.Decks, "ai_seats", rules.AISeats, "balance", rules.StartingBalance)

	start := clock.Now()
	if err := playLoop(table, input, e); err != nil {
		return err
	}
	session.Finish(clock.Since(start))

	return e.report(session)
}

func playLoop(table *game.Table, input *console.LineInput, e *env) error {
	for {
		_, err := table.PlayRound()
		switch {
		case err == nil:
		case errors.Is(err, game.ErrQuit):
			return nil
		case errors.Is(err, game.ErrInsufficientFunds):
			fmt.Println(e.styles.Error.Render(fmt.Sprintf("You cannot cover the minimum bet with $%.2f. Game over.", table.Balance())))
			return nil
		case errors.Is(err, game.ErrInvalidBet), errors.Is(err, game.ErrRoundAborted):
			fmt.Println(e.styles.Warning.Render(err.Error()))
		default:
			return err
		}

		again, err := input.PlayAgain()
		if errors.Is(err, game.ErrQuit) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
