package cards

// Value returns the blackjack total of a card sequence. Aces start at 11 and
// are reduced to 1, one at a time, while the total exceeds 21. A bust is
// reported as the fully reduced total, which is always >= 22.
func Value(cs []Card) int {
	total, aces := 0, 0
	for _, c := range cs {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsSoft reports whether at least one ace can still count as 11 without
// busting the hand.
func IsSoft(cs []Card) bool {
	nonAce, aces := 0, 0
	for _, c := range cs {
		if c.IsAce() {
			aces++
			continue
		}
		nonAce += c.Value()
	}
	if aces == 0 {
		return false
	}
	return nonAce+11+(aces-1) <= 21
}

// IsPair reports whether cs holds exactly two cards of equal pairing value.
func IsPair(cs []Card) bool {
	return len(cs) == 2 && cs[0].Rank.PairValue() == cs[1].Rank.PairValue()
}

// IsNatural reports whether cs is an untouched two-card 21.
func IsNatural(cs []Card) bool {
	return len(cs) == 2 && Value(cs) == 21
}

// IsBust reports whether the hand total exceeds 21.
func IsBust(cs []Card) bool {
	return Value(cs) > 21
}
