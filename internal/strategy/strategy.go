// Package strategy encodes basic strategy for a six-deck shoe where the
// dealer hits soft 17 and doubling after a split is allowed.
//
// Decide is a pure function of the player's cards, the dealer upcard and the
// number of hands the player already holds. Resolve layers the table's
// availability rules on top: a Double that cannot be taken becomes a Hit and
// a Split that cannot be taken is re-decided as if the split limit had been
// reached.
package strategy

import (
	"slices"

	"github.com/lox/blackjack/internal/cards"
)

// MaxHands is the most hands a player may hold after splitting.
const MaxHands = 4

// Action is a playing decision for one hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Decide returns the basic-strategy action. dealerUpcard is the upcard's
// primary value (Ace = 11). handsCount is the number of hands the player
// currently holds and gates the pair rules.
//
// Rules are evaluated in a fixed order: pairs, then soft totals, then hard
// totals. The first match wins.
func Decide(hand []cards.Card, dealerUpcard int, handsCount int) Action {
	value := cards.Value(hand)
	twoCards := len(hand) == 2

	if cards.IsPair(hand) && handsCount < MaxHands {
		if split, ok := decidePair(hand[0].Rank, dealerUpcard); ok {
			return split
		}
	}

	if cards.IsSoft(hand) {
		return decideSoft(value, dealerUpcard, twoCards)
	}
	return decideHard(value, dealerUpcard, twoCards)
}

func decidePair(rank cards.Rank, up int) (Action, bool) {
	switch rank {
	case cards.Ace, cards.Eight:
		return Split, true
	case cards.Nine:
		if !slices.Contains([]int{7, 10, 11}, up) {
			return Split, true
		}
	case cards.Seven:
		if up <= 7 {
			return Split, true
		}
	case cards.Six:
		if up <= 6 {
			return Split, true
		}
	case cards.Four:
		if up == 5 || up == 6 {
			return Split, true
		}
	case cards.Three, cards.Two:
		if up <= 7 {
			return Split, true
		}
	}
	// Fives and ten-value pairs play as hard totals.
	return Hit, false
}

func decideSoft(value, up int, twoCards bool) Action {
	switch {
	case value >= 19:
		return Stand
	case value == 18:
		if up <= 6 && twoCards {
			return Double
		}
		if up == 2 || up == 7 || up == 8 {
			return Stand
		}
		return Hit
	case value == 17:
		if up >= 3 && up <= 6 && twoCards {
			return Double
		}
		return Hit
	case value == 16, value == 15:
		if up >= 4 && up <= 6 && twoCards {
			return Double
		}
		return Hit
	case value == 14, value == 13:
		if (up == 5 || up == 6) && twoCards {
			return Double
		}
		return Hit
	default:
		return Hit
	}
}

func decideHard(value, up int, twoCards bool) Action {
	switch {
	case value >= 17:
		return Stand
	case value >= 13:
		if up <= 6 {
			return Stand
		}
		return Hit
	case value == 12:
		if up >= 4 && up <= 6 {
			return Stand
		}
		return Hit
	case value == 11:
		if twoCards {
			return Double
		}
		return Hit
	case value == 10:
		if up <= 9 && twoCards {
			return Double
		}
		return Hit
	case value == 9:
		if up >= 2 && up <= 6 && twoCards {
			return Double
		}
		return Hit
	default:
		return Hit
	}
}

// Resolve returns the basic-strategy action the table will actually accept.
// canDouble and canSplit carry the structural and bankroll checks made by
// the caller.
func Resolve(hand []cards.Card, dealerUpcard, handsCount int, canDouble, canSplit bool) Action {
	action := Decide(hand, dealerUpcard, handsCount)
	if action == Split && !canSplit {
		action = Decide(hand, dealerUpcard, MaxHands)
		if action == Split {
			action = Hit
		}
	}
	if action == Double && !canDouble {
		action = Hit
	}
	return action
}
