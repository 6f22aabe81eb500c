package game

import "errors"

var (
	// ErrInvalidBet is returned when a bet falls outside [min bet, balance].
	// The round is abandoned before any card is dealt.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInsufficientFunds means the human seat cannot cover the next bet.
	// It ends a session normally.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRoundAborted wraps a shoe depletion during the initial deal. The
	// round is not settled and the shoe is replaced before the next round.
	ErrRoundAborted = errors.New("round aborted")

	// ErrQuit is returned by an Input that wants the session to end.
	ErrQuit = errors.New("player quit")
)
