package game

import (
	"strings"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/strategy"
)

// HandStatus is the lifecycle state of a hand within a round
type HandStatus int

const (
	Active HandStatus = iota
	Stood
	Busted
	Doubled
	Blackjack
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case Active:
		return "Active"
	case Stood:
		return "Stood"
	case Busted:
		return "Busted"
	case Doubled:
		return "Doubled"
	case Blackjack:
		return "Blackjack"
	default:
		return "Unknown"
	}
}

// Hand is one set of cards played against the dealer. Only the human seat's
// bets are tracked; computer seats carry a zero bet.
type Hand struct {
	Cards    []cards.Card
	Bet      float64
	Status   HandStatus
	SplitAce bool // created by splitting a pair of aces
	Split    bool // produced by (or reduced by) a split this round
	Doubled  bool // the bet was doubled, even if the hand later busted
}

// NewHand creates an empty active hand with the given bet
func NewHand(bet float64) *Hand {
	return &Hand{Bet: bet, Cards: make([]cards.Card, 0, 4)}
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(c cards.Card) {
	h.Cards = append(h.Cards, c)
}

// Value returns the hand total. It is recomputed on every call.
func (h *Hand) Value() int {
	return cards.Value(h.Cards)
}

// IsSoft reports whether an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	return cards.IsSoft(h.Cards)
}

// IsNatural reports whether the hand is a two-card 21
func (h *Hand) IsNatural() bool {
	return cards.IsNatural(h.Cards)
}

// IsSplittable reports whether the hand may be split given how many hands
// its owner already holds. Bankroll checks are made by the caller.
func (h *Hand) IsSplittable(handsCount int) bool {
	return cards.IsPair(h.Cards) && handsCount < strategy.MaxHands && !h.SplitAce
}

// IsDoublable reports whether the hand is still a two-card hand
func (h *Hand) IsDoublable() bool {
	return len(h.Cards) == 2
}

// String formats the cards as "10♥, 9♣"
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
