package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/cards"
)

// Player is a seat at the table. Hands grow from one to at most four
// through splits. The per-round flags keep statistics from counting the
// same original hand twice.
type Player struct {
	Seat  int
	Name  string
	Human bool
	Hands []*Hand

	SplitThisRound   bool
	DoubledThisRound bool
	BookMode         bool // human handed the rest of this round to basic strategy
}

// NewHumanPlayer creates the tracked seat
func NewHumanPlayer(seat int, name string) *Player {
	return &Player{Seat: seat, Name: name, Human: true}
}

// NewAIPlayer creates a computer-controlled seat
func NewAIPlayer(seat int) *Player {
	return &Player{Seat: seat, Name: fmt.Sprintf("Player %d", seat+1)}
}

// resetForRound discards last round's hands and flags
func (p *Player) resetForRound(bet float64) {
	if !p.Human {
		bet = 0
	}
	p.Hands = []*Hand{NewHand(bet)}
	p.SplitThisRound = false
	p.DoubledThisRound = false
	p.BookMode = false
}

// insertHand places h directly after index i
func (p *Player) insertHand(i int, h *Hand) {
	p.Hands = append(p.Hands, nil)
	copy(p.Hands[i+2:], p.Hands[i+1:])
	p.Hands[i+1] = h
}

// committed returns the total bet riding on the player's hands
func (p *Player) committed() float64 {
	total := 0.0
	for _, h := range p.Hands {
		total += h.Bet
	}
	return total
}

// Dealer holds the house hand. The second card dealt is the hole card.
type Dealer struct {
	Hand *Hand
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{Hand: NewHand(0)}
}

// Upcard returns the dealer's exposed card
func (d *Dealer) Upcard() cards.Card {
	if len(d.Hand.Cards) == 0 {
		return cards.Card{}
	}
	return d.Hand.Cards[0]
}

// effectiveValue is the total used for settlement; a busted dealer counts 0
func (d *Dealer) effectiveValue() int {
	if d.Hand.Status == Busted {
		return 0
	}
	return d.Hand.Value()
}
