package statistics

import (
	"fmt"
	"math"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

// Session aggregates the human seat's results for one run of rounds. It is
// an event subscriber and must only be attached to a single table.
type Session struct {
	RunID      int64  `json:"run_id"`
	Mode       string `json:"mode"`
	Iterations int    `json:"target_iterations,omitempty"`

	HandsPlayed int `json:"hands_played"`
	Blackjacks  int `json:"blackjacks"`

	TimesSplit      int `json:"times_split"`
	HandsSplit      int `json:"hands_involved_in_split"`
	HandsFromSplits int `json:"total_hands_after_splits"`

	TimesDoubled  int `json:"times_doubled"`
	HandsDoubled  int `json:"hands_involved_in_double"`
	BookModeTaken int `json:"book_mode_taken"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`

	SplitEarnings   float64 `json:"split_earnings"`
	SplitParts      int     `json:"split_parts_resolved"`
	DoubledEarnings float64 `json:"doubled_earnings"`
	DoubledHands    int     `json:"doubled_hands_resolved"`

	DefaultBet     float64   `json:"default_bet"`
	InitialBalance float64   `json:"initial_balance"`
	FinalBalance   float64   `json:"final_balance"`
	HighestBalance float64   `json:"highest_balance"`
	LowestBalance  float64   `json:"lowest_balance"`
	BalanceHistory []float64 `json:"balance_history"`

	AbortedRounds  int `json:"aborted_rounds"`
	DepletedRounds int `json:"depleted_rounds"`
	ShoesReplaced  int `json:"shoes_replaced"`

	Runtime time.Duration `json:"runtime_ns"`

	Rounds Statistics `json:"-"`
}

// NewSession starts collecting from the given starting balance
func NewSession(runID int64, mode string, startingBalance, defaultBet float64) *Session {
	return &Session{
		RunID:          runID,
		Mode:           mode,
		DefaultBet:     defaultBet,
		InitialBalance: startingBalance,
		FinalBalance:   startingBalance,
		HighestBalance: startingBalance,
		LowestBalance:  startingBalance,
		BalanceHistory: []float64{startingBalance},
	}
}

// OnEvent implements game.EventSubscriber
func (s *Session) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.ShoeReplacedEvent:
		s.ShoesReplaced++

	case game.NaturalEvent:
		if e.Human {
			s.Blackjacks++
		}

	case game.BookModeEvent:
		s.BookModeTaken++

	case game.ActionEvent:
		if e.Human && e.Action == strategy.Double {
			s.TimesDoubled++
			if e.FirstInRound {
				s.HandsDoubled++
			}
		}

	case game.SplitEvent:
		if !e.Human {
			return
		}
		s.TimesSplit++
		if e.FirstInRound {
			s.HandsSplit++
		}

	case game.HandSettledEvent:
		switch e.Outcome {
		case game.Win, game.BlackjackWin:
			s.Wins++
		case game.Loss:
			s.Losses++
		case game.Push:
			s.Pushes++
		}
		if e.Split {
			s.SplitEarnings += e.NetDelta
			s.SplitParts++
		}
		if e.Doubled {
			s.DoubledEarnings += e.NetDelta
			s.DoubledHands++
		}

	case game.RoundEndEvent:
		s.HandsPlayed++
		if e.Hands > 1 {
			s.HandsFromSplits += e.Hands
		}
		if e.Depleted {
			s.DepletedRounds++
		}
		s.Rounds.Add(e.Net)
		s.recordBalance(e.Balance)

	case game.RoundAbortedEvent:
		s.AbortedRounds++
	}
}

func (s *Session) recordBalance(balance float64) {
	s.FinalBalance = balance
	s.HighestBalance = math.Max(s.HighestBalance, balance)
	s.LowestBalance = math.Min(s.LowestBalance, balance)
	s.BalanceHistory = append(s.BalanceHistory, balance)
}

// Finish records the session runtime
func (s *Session) Finish(runtime time.Duration) {
	s.Runtime = runtime
}

// NetProfit is the change from the starting balance
func (s *Session) NetProfit() float64 {
	return s.FinalBalance - s.InitialBalance
}

// AvgPerHand is the average profit per main hand played
func (s *Session) AvgPerHand() float64 {
	return safeDiv(s.NetProfit(), s.HandsPlayed)
}

// AvgPerSplitPart is the average profit per resolved split hand
func (s *Session) AvgPerSplitPart() float64 {
	return safeDiv(s.SplitEarnings, s.SplitParts)
}

// AvgPerDoubledHand is the average profit per resolved doubled hand
func (s *Session) AvgPerDoubledHand() float64 {
	return safeDiv(s.DoubledEarnings, s.DoubledHands)
}

// AvgTimePerHand is the runtime divided over the hands played
func (s *Session) AvgTimePerHand() time.Duration {
	if s.HandsPlayed == 0 {
		return 0
	}
	return s.Runtime / time.Duration(s.HandsPlayed)
}

// Validate checks that the recorded rounds reconcile with the balance
func (s *Session) Validate() error {
	if err := s.Rounds.Validate(); err != nil {
		return err
	}
	if s.Rounds.Rounds != s.HandsPlayed {
		return fmt.Errorf("round samples (%d) do not match hands played (%d)", s.Rounds.Rounds, s.HandsPlayed)
	}
	if math.Abs(s.Rounds.Sum-s.NetProfit()) > 1e-6 {
		return fmt.Errorf("ledger mismatch: round nets %.2f, balance change %.2f", s.Rounds.Sum, s.NetProfit())
	}
	return nil
}

func safeDiv(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
