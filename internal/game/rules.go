package game

import (
	"errors"
	"fmt"
)

// DealerStandsOn is the lowest hard total the dealer stands on. The dealer
// hits soft 17.
const DealerStandsOn = 17

// Rules holds the house rules and bankroll settings for a session
type Rules struct {
	Decks              int
	AISeats            int
	ReshuffleThreshold float64

	StartingBalance float64
	DefaultBet      float64
	MinBet          float64

	BlackjackPayoutNumerator   float64
	BlackjackPayoutDenominator float64
}

// DefaultRules returns six decks, two computer seats and a 6:5 payout
func DefaultRules() Rules {
	return Rules{
		Decks:                      6,
		AISeats:                    2,
		ReshuffleThreshold:         0.25,
		StartingBalance:            1000,
		DefaultBet:                 25,
		MinBet:                     1,
		BlackjackPayoutNumerator:   6,
		BlackjackPayoutDenominator: 5,
	}
}

// BlackjackPayout returns the winnings for a natural on the given bet
func (r Rules) BlackjackPayout(bet float64) float64 {
	return bet * r.BlackjackPayoutNumerator / r.BlackjackPayoutDenominator
}

// Validate rejects rules that cannot produce a playable session
func (r Rules) Validate() error {
	var errs []error
	if r.Decks <= 0 {
		errs = append(errs, fmt.Errorf("number of decks must be positive, got %d", r.Decks))
	}
	if r.AISeats < 0 {
		errs = append(errs, fmt.Errorf("computer seats cannot be negative, got %d", r.AISeats))
	}
	if r.ReshuffleThreshold <= 0 || r.ReshuffleThreshold >= 1 {
		errs = append(errs, fmt.Errorf("reshuffle threshold must be between 0 and 1, got %v", r.ReshuffleThreshold))
	}
	if r.MinBet <= 0 {
		errs = append(errs, fmt.Errorf("minimum bet must be positive, got %.2f", r.MinBet))
	}
	if r.DefaultBet < r.MinBet {
		errs = append(errs, fmt.Errorf("default bet %.2f is below the minimum bet %.2f", r.DefaultBet, r.MinBet))
	}
	if r.StartingBalance <= 0 {
		errs = append(errs, fmt.Errorf("starting balance must be positive, got %.2f", r.StartingBalance))
	}
	if r.BlackjackPayoutNumerator <= 0 || r.BlackjackPayoutDenominator <= 0 {
		errs = append(errs, fmt.Errorf("blackjack payout must be a positive ratio, got %v/%v",
			r.BlackjackPayoutNumerator, r.BlackjackPayoutDenominator))
	}
	return errors.Join(errs...)
}
