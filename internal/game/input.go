package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/strategy"
)

// Move is a choice offered to the human seat
type Move int

const (
	MoveHit Move = iota
	MoveStand
	MoveDouble
	MoveSplit
	MoveBook // hand the rest of the round to basic strategy
)

// String returns the string representation of a move
func (m Move) String() string {
	switch m {
	case MoveHit:
		return "hit"
	case MoveStand:
		return "stand"
	case MoveDouble:
		return "double"
	case MoveSplit:
		return "split"
	case MoveBook:
		return "book"
	default:
		return "unknown"
	}
}

func (m Move) action() (strategy.Action, bool) {
	switch m {
	case MoveHit:
		return strategy.Hit, true
	case MoveStand:
		return strategy.Stand, true
	case MoveDouble:
		return strategy.Double, true
	case MoveSplit:
		return strategy.Split, true
	default:
		return 0, false
	}
}

// Prompt is the read-only view handed to the input collaborator when the
// human seat must act
type Prompt struct {
	Round        int
	HandIndex    int
	HandsCount   int
	Cards        []cards.Card
	Value        int
	Soft         bool
	Bet          float64
	DealerUpcard cards.Card
	Balance      float64
}

// Input supplies the human seat's bets and playing decisions. Calls block
// until an answer is available; the engine resumes exactly where it left off.
type Input interface {
	// Bet returns the stake for the next round
	Bet(balance, defaultBet, minBet float64) (float64, error)
	// Action returns one of the allowed moves for the prompted hand
	Action(prompt Prompt, allowed []Move) (Move, error)
}

// AutoBet is the simulation input: it always stakes the default bet and
// plays every hand by the book.
type AutoBet struct{}

// Bet stakes the default bet, or reports that the balance cannot cover it
func (AutoBet) Bet(balance, defaultBet, minBet float64) (float64, error) {
	if balance < defaultBet {
		return 0, fmt.Errorf("%w: balance %.2f below default bet %.2f", ErrInsufficientFunds, balance, defaultBet)
	}
	return defaultBet, nil
}

// Action always defers to basic strategy
func (AutoBet) Action(Prompt, []Move) (Move, error) {
	return MoveBook, nil
}
