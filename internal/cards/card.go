package cards

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Value returns the primary blackjack value of the rank: pips for 2-10,
// 10 for faces and 11 for an Ace.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// PairValue is the value used when deciding whether two cards form a
// splittable pair. Tens and faces all pair with each other; an Ace only
// pairs with another Ace.
func (r Rank) PairValue() int {
	return r.Value()
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the card's primary blackjack value (Ace counts 11)
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// AllRanks lists the thirteen ranks in ascending order
var AllRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// AllSuits lists the four suits
var AllSuits = []Suit{Hearts, Diamonds, Clubs, Spades}
