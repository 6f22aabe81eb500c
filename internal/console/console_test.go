package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/strategy"
)

func newTestInput(input string) (*LineInput, *bytes.Buffer) {
	var out bytes.Buffer
	return NewLineInput(strings.NewReader(input), &out, NewStyles(&out, true)), &out
}

func TestBetPrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		balance float64
		want    float64
		wantErr error
		output  string
	}{
		{"default on empty line", "\n", 1000, 25, nil, "Enter bet"},
		{"explicit amount", "40\n", 1000, 40, nil, ""},
		{"dollar sign", "$12.50\n", 1000, 12.5, nil, ""},
		{"reprompt on garbage", "abc\n30\n", 1000, 30, nil, "Please enter a number"},
		{"reprompt above balance", "5000\n100\n", 1000, 100, nil, "between $1.00 and $1000.00"},
		{"reprompt below minimum", "0.5\n1\n", 1000, 1, nil, "between"},
		{"default above balance", "\n10\n", 20, 10, nil, "below the default bet"},
		{"quit", "q\n", 1000, 0, game.ErrQuit, ""},
		{"end of input", "", 1000, 0, game.ErrQuit, ""},
		{"last line without newline", "15", 1000, 15, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := newTestInput(tt.input)
			bet, err := in.Bet(tt.balance, 25, 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, bet, 1e-9)
			assert.Contains(t, out.String(), tt.output)
		})
	}
}

func TestActionPrompt(t *testing.T) {
	prompt := game.Prompt{
		HandIndex:    1,
		HandsCount:   2,
		Cards:        cards.MustParseCards("AhTc"),
		Value:        21,
		Soft:         true,
		Bet:          25,
		DealerUpcard: cards.NewCard(cards.Nine, cards.Spades),
	}
	allowed := []game.Move{game.MoveHit, game.MoveStand, game.MoveBook}

	in, out := newTestInput("x\nd\nS\n")
	move, err := in.Action(prompt, allowed)
	require.NoError(t, err)
	assert.Equal(t, game.MoveStand, move)

	text := out.String()
	assert.Contains(t, text, "Your hand 2 of 2: A♥, 10♣ (soft 21) vs dealer 9♠")
	assert.Contains(t, text, "(H)it, (S)tand, (B)ook")
	assert.NotContains(t, text, "(D)ouble,")
	assert.Contains(t, text, "Unrecognised choice")
	assert.Contains(t, text, "You cannot double this hand")

	in, _ = newTestInput("")
	_, err = in.Action(prompt, allowed)
	assert.ErrorIs(t, err, game.ErrQuit)
}

func TestPlayAgain(t *testing.T) {
	for input, want := range map[string]bool{"\n": true, "y\n": true, "n\n": false, "NO\n": false} {
		in, _ := newTestInput(input)
		again, err := in.PlayAgain()
		require.NoError(t, err)
		assert.Equal(t, want, again, "input %q", input)
	}
}

func TestParseMove(t *testing.T) {
	for s, want := range map[string]game.Move{
		"h": game.MoveHit, "HIT": game.MoveHit, "s": game.MoveStand,
		"d": game.MoveDouble, "p": game.MoveSplit, "split": game.MoveSplit, "b": game.MoveBook,
	} {
		got, ok := parseMove(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, got, s)
	}
	_, ok := parseMove("x")
	assert.False(t, ok)
}

func TestNoColorStylesRenderPlainText(t *testing.T) {
	var out bytes.Buffer
	styles := NewStyles(&out, true)
	assert.Equal(t, "A♥", styles.Card(cards.NewCard(cards.Ace, cards.Hearts)))
	assert.Equal(t, "10♣, 2♦", styles.Cards(cards.MustParseCards("Tc2d")))
	assert.Equal(t, "busts", styles.Success.Render("busts"))
}

// Rendering a real scripted round exercises every event the table emits
// for a plain stand-and-win.
func TestRendererPrintsRound(t *testing.T) {
	var out bytes.Buffer
	renderer := NewRenderer(&out, NewStyles(&out, true))

	bus := game.NewEventBus()
	bus.Subscribe(renderer)

	rules := game.DefaultRules()
	rules.AISeats = 0
	shoe := cards.NewStackedShoe(cards.MustParseCards("Th6c9cTd6s2h3h4h")...)
	in, _ := newTestInput("\ns\n")
	table, err := game.NewTable(rules, randutil.New(1), game.WithShoe(shoe), game.WithInput(in),
		game.WithEventBus(bus), game.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)

	_, err = table.PlayRound()
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Round 1")
	assert.Contains(t, text, "Bet $25.00  Balance $1000.00")
	assert.Contains(t, text, "Dealer shows 6♣")
	assert.Contains(t, text, "You: 10♥, 9♣")
	assert.Contains(t, text, "You stand (19)")
	assert.Contains(t, text, "Dealer: 6♣, 10♦, 6♠ (22) busts")
	assert.Contains(t, text, "Hand 1: win $25.00")
	assert.Contains(t, text, "Balance after round: $1025.00")
}

func TestRendererEventLines(t *testing.T) {
	var out bytes.Buffer
	renderer := NewRenderer(&out, NewStyles(&out, true))
	drawn := cards.NewCard(cards.King, cards.Spades)

	renderer.OnEvent(game.ShoeReplacedEvent{Remaining: 70, Size: 312})
	renderer.OnEvent(game.NaturalEvent{Name: "Player 2"})
	renderer.OnEvent(game.ActionEvent{Name: "Player 2", Action: strategy.Hit, Drawn: &drawn, Value: 24, Status: game.Busted})
	renderer.OnEvent(game.ActionEvent{Human: true, HandIndex: 1, Action: strategy.Double, Drawn: &drawn, Value: 20, Status: game.Doubled, Bet: 50, Book: true})
	renderer.OnEvent(game.SplitEvent{Human: true, Aces: true, Cards: [2][]cards.Card{cards.MustParseCards("Ah5c"), cards.MustParseCards("AsKd")}})
	renderer.OnEvent(game.HandSettledEvent{HandOutcome: game.HandOutcome{Outcome: game.Push, Value: 20}})
	renderer.OnEvent(game.HandSettledEvent{HandOutcome: game.HandOutcome{Outcome: game.Loss, Status: game.Busted, NetDelta: -25}})
	renderer.OnEvent(game.HandSettledEvent{HandOutcome: game.HandOutcome{Outcome: game.BlackjackWin, NetDelta: 30}})
	renderer.OnEvent(game.RoundEndEvent{Balance: 1005, Depleted: true})
	renderer.OnEvent(game.RoundAbortedEvent{Reason: "shoe depleted"})

	text := out.String()
	assert.Contains(t, text, "Shuffling a fresh shoe (70 cards left, 312 in the new shoe)")
	assert.Contains(t, text, "Player 2 has blackjack")
	assert.Contains(t, text, "Player 2 hit and draw K♠ (24) bust")
	assert.Contains(t, text, "You (hand 2) double and draw K♠ (20) bet now $50.00 [book]")
	assert.Contains(t, text, "You split hand 1: A♥, 5♣ | A♠, K♦")
	assert.Contains(t, text, "Split aces take one card each")
	assert.Contains(t, text, "push (20)")
	assert.Contains(t, text, "bust, lose $25.00")
	assert.Contains(t, text, "blackjack pays $30.00")
	assert.Contains(t, text, "The shoe ran out this round")
	assert.Contains(t, text, "Round aborted: shoe depleted")
}
