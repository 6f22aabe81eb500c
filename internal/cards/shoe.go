package cards

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

// ErrShoeDepleted is returned when a card is requested from an empty shoe.
// Callers treat it as fatal for the current round, not as retryable.
var ErrShoeDepleted = errors.New("shoe depleted")

// Shoe is a multi-deck stack of cards. Cards are drawn from the tail of the
// slice; the shoe is never refilled, a fresh one is built instead.
type Shoe struct {
	cards       []Card
	initialSize int
	rng         *rand.Rand
}

// NewShoe builds numDecks standard decks and shuffles them with rng.
func NewShoe(numDecks int, rng *rand.Rand) (*Shoe, error) {
	if numDecks <= 0 {
		return nil, fmt.Errorf("invalid number of decks: %d", numDecks)
	}
	if rng == nil {
		return nil, errors.New("rng is required for shoe creation")
	}

	s := &Shoe{
		cards: make([]Card, 0, numDecks*DeckSize),
		rng:   rng,
	}
	for range numDecks {
		for _, suit := range AllSuits {
			for _, rank := range AllRanks {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
	s.initialSize = len(s.cards)

	s.Shuffle()
	return s, nil
}

// NewStackedShoe returns an unshuffled shoe that deals the given cards in
// order: the first argument is the first card dealt.
func NewStackedShoe(drawOrder ...Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(drawOrder))}
	for i, c := range drawOrder {
		s.cards[len(drawOrder)-1-i] = c
	}
	s.initialSize = len(s.cards)
	return s
}

// Shuffle randomizes the remaining cards using Fisher-Yates
func (s *Shoe) Shuffle() {
	if s.rng == nil {
		return
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes and returns the top card.
func (s *Shoe) Deal() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeDepleted
	}
	last := len(s.cards) - 1
	c := s.cards[last]
	s.cards = s.cards[:last]
	return c, nil
}

// NeedsReshuffle reports whether the remaining cards have fallen below
// thresholdRatio of the shoe's initial size.
func (s *Shoe) NeedsReshuffle(thresholdRatio float64) bool {
	return float64(len(s.cards)) < float64(s.initialSize)*thresholdRatio
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// InitialSize returns the number of cards the shoe was built with
func (s *Shoe) InitialSize() int {
	return s.initialSize
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
