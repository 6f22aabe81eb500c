package cards

import (
	"fmt"
	"strings"
)

// ParseCards parses a compact card string into a slice of cards.
// Format: "AsKdTh9c" where each card is [Rank][Suit].
// Ranks: A, K, Q, J, T, 9..2 (case insensitive)
// Suits: h (hearts), d (diamonds), c (clubs), s (spades)
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	out := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}
		out = append(out, Card{Rank: rank, Suit: suit})
	}
	return out, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	out, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return out
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank")
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	case 's', 'S':
		return Spades, nil
	}
	return 0, fmt.Errorf("unknown suit")
}
