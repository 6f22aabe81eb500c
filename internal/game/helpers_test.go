package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/randutil"
)

// scriptedInput answers bets with a fixed stake and actions from a script.
// Once the script runs out every prompt is answered with stand.
type scriptedInput struct {
	bet     float64
	betErr  error
	moves   []Move
	prompts []Prompt
	allowed [][]Move
}

func (s *scriptedInput) Bet(balance, defaultBet, minBet float64) (float64, error) {
	if s.betErr != nil {
		return 0, s.betErr
	}
	return s.bet, nil
}

func (s *scriptedInput) Action(prompt Prompt, allowed []Move) (Move, error) {
	s.prompts = append(s.prompts, prompt)
	s.allowed = append(s.allowed, allowed)
	if len(s.prompts) > len(s.moves) {
		return MoveStand, nil
	}
	return s.moves[len(s.prompts)-1], nil
}

// inputFunc lets a test decide each move from the allowed set
type inputFunc func(prompt Prompt, allowed []Move) Move

func (f inputFunc) Bet(balance, defaultBet, minBet float64) (float64, error) {
	return defaultBet, nil
}

func (f inputFunc) Action(prompt Prompt, allowed []Move) (Move, error) {
	return f(prompt, allowed), nil
}

// stackedShoe deals order first, then filler from a shuffled six-deck shoe
// until the shoe holds size cards
func stackedShoe(t *testing.T, order string, size int) *cards.Shoe {
	t.Helper()
	drawOrder := cards.MustParseCards(order)

	filler, err := cards.NewShoe(6, randutil.New(7))
	require.NoError(t, err)
	for len(drawOrder) < size {
		c, err := filler.Deal()
		require.NoError(t, err)
		drawOrder = append(drawOrder, c)
	}
	return cards.NewStackedShoe(drawOrder...)
}

// headsUpRules is the default rule set with no computer seats
func headsUpRules() Rules {
	rules := DefaultRules()
	rules.AISeats = 0
	return rules
}

func newTestTable(t *testing.T, rules Rules, opts ...TableOption) *Table {
	t.Helper()
	opts = append([]TableOption{WithLogger(log.New(io.Discard))}, opts...)
	table, err := NewTable(rules, randutil.New(42), opts...)
	require.NoError(t, err)
	return table
}

// eventRecorder captures every published event
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}
