package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/cards"
)

func handOf(s string) *Hand {
	h := NewHand(25)
	for _, c := range cards.MustParseCards(s) {
		h.AddCard(c)
	}
	return h
}

func TestHandClassification(t *testing.T) {
	t.Parallel()

	h := handOf("AsKd")
	assert.Equal(t, 21, h.Value())
	assert.True(t, h.IsNatural())
	assert.True(t, h.IsSoft())
	assert.True(t, h.IsDoublable())

	h.AddCard(cards.NewCard(cards.Two, cards.Clubs))
	assert.Equal(t, 13, h.Value())
	assert.False(t, h.IsNatural())
	assert.False(t, h.IsDoublable())
	assert.Equal(t, "A♠, K♦, 2♣", h.String())
}

func TestHandSplittable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		hand       *Hand
		handsCount int
		want       bool
	}{
		{"tens of different rank", handOf("TcKd"), 1, true},
		{"ace and king", handOf("AsKd"), 1, false},
		{"eights at three hands", handOf("8c8d"), 3, true},
		{"eights at four hands", handOf("8c8d"), 4, false},
		{"three cards", handOf("4c4d2s"), 1, false},
		{"split ace", func() *Hand { h := handOf("AcAd"); h.SplitAce = true; return h }(), 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hand.IsSplittable(tt.handsCount))
		})
	}
}

func TestInsertHandPlacesAfterIndex(t *testing.T) {
	t.Parallel()

	p := NewHumanPlayer(0, "You")
	p.resetForRound(10)
	p.Hands = append(p.Hands, NewHand(20))

	inserted := NewHand(30)
	p.insertHand(0, inserted)

	require.Len(t, p.Hands, 3)
	assert.Same(t, inserted, p.Hands[1])
	assert.InDelta(t, 20.0, p.Hands[2].Bet, 1e-9)
	assert.InDelta(t, 60.0, p.committed(), 1e-9)
}

func TestResetForRound(t *testing.T) {
	t.Parallel()

	ai := NewAIPlayer(2)
	ai.SplitThisRound = true
	ai.resetForRound(25)
	assert.Equal(t, "Player 3", ai.Name)
	require.Len(t, ai.Hands, 1)
	assert.Zero(t, ai.Hands[0].Bet)
	assert.False(t, ai.SplitThisRound)
}

func TestDealerEffectiveValue(t *testing.T) {
	t.Parallel()

	d := NewDealer()
	assert.Equal(t, cards.Card{}, d.Upcard())

	d.Hand = handOf("Tc6d9h")
	d.Hand.Status = Busted
	assert.Equal(t, 0, d.effectiveValue())
	assert.Equal(t, cards.Ten, d.Upcard().Rank)
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultRules().Validate())
	assert.InDelta(t, 30.0, DefaultRules().BlackjackPayout(25), 1e-9)

	rules := DefaultRules()
	rules.Decks = 0
	rules.ReshuffleThreshold = 1
	rules.DefaultBet = 0.5
	err := rules.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decks")
	assert.Contains(t, err.Error(), "reshuffle threshold")
	assert.Contains(t, err.Error(), "default bet")
}

func TestMoveStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "book", MoveBook.String())
	action, ok := MoveDouble.action()
	assert.True(t, ok)
	assert.Equal(t, "double", action.String())
	_, ok = MoveBook.action()
	assert.False(t, ok)
	assert.Equal(t, "blackjack", BlackjackWin.String())
	assert.Equal(t, "Doubled", Doubled.String())
}
