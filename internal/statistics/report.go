package statistics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Lines formats the session as report lines for the terminal and the log
func (s *Session) Lines() []string {
	lines := []string{
		fmt.Sprintf("Run ID: %d", s.RunID),
		fmt.Sprintf("Mode: %s", s.Mode),
	}
	if s.Iterations > 0 {
		lines = append(lines, fmt.Sprintf("Target Iterations: %d", s.Iterations))
	}
	if s.Runtime > 0 {
		lines = append(lines,
			fmt.Sprintf("Total Runtime: %.3f seconds", s.Runtime.Seconds()),
			fmt.Sprintf("Average Time per Hand: %.6f seconds", s.AvgTimePerHand().Seconds()),
		)
	}

	low, high := s.Rounds.ConfidenceInterval95()
	lines = append(lines,
		fmt.Sprintf("Hands Played: %d", s.HandsPlayed),
		fmt.Sprintf("Starting Balance: $%.2f", s.InitialBalance),
		fmt.Sprintf("Final Balance:    $%.2f", s.FinalBalance),
		fmt.Sprintf("Highest Balance:  $%.2f", s.HighestBalance),
		fmt.Sprintf("Lowest Balance:   $%.2f", s.LowestBalance),
		fmt.Sprintf("Default Bet: $%.2f", s.DefaultBet),
		fmt.Sprintf("Net Profit/Loss: $%+.2f", s.NetProfit()),
		fmt.Sprintf("Avg. P/L per Hand: $%+.2f (sd %.2f, 95%% CI [%+.2f, %+.2f])",
			s.AvgPerHand(), s.Rounds.StdDev(), low, high),
		fmt.Sprintf("Blackjacks: %d", s.Blackjacks),
		fmt.Sprintf("Times Split: %d", s.TimesSplit),
		fmt.Sprintf("Original Hands Involving a Split: %d", s.HandsSplit),
		fmt.Sprintf("Total Individual Hands from Splits: %d", s.HandsFromSplits),
		fmt.Sprintf("Net P/L from Split Hands: $%+.2f", s.SplitEarnings),
		fmt.Sprintf("Avg. P/L per Split Hand: $%+.2f (from %d parts)", s.AvgPerSplitPart(), s.SplitParts),
		fmt.Sprintf("Times Doubled: %d", s.TimesDoubled),
		fmt.Sprintf("Hands Involving a Double: %d", s.HandsDoubled),
		fmt.Sprintf("Net P/L from Doubled Hands: $%+.2f", s.DoubledEarnings),
		fmt.Sprintf("Avg. P/L per Doubled Hand: $%+.2f (from %d hands)", s.AvgPerDoubledHand(), s.DoubledHands),
		fmt.Sprintf("Wins: %d, Losses: %d, Pushes: %d", s.Wins, s.Losses, s.Pushes),
	)
	if s.AbortedRounds > 0 || s.DepletedRounds > 0 {
		lines = append(lines, fmt.Sprintf("Aborted Rounds: %d, Depleted Rounds: %d", s.AbortedRounds, s.DepletedRounds))
	}
	return lines
}

// Summary holds the derived metrics written alongside the raw counters
type Summary struct {
	NetProfit         float64 `json:"net_profit"`
	AvgPerHand        float64 `json:"avg_per_hand"`
	AvgPerSplitPart   float64 `json:"avg_per_split_part"`
	AvgPerDoubledHand float64 `json:"avg_per_doubled_hand"`
	StdDev            float64 `json:"std_dev"`
	StdError          float64 `json:"std_error"`
	CI95Low           float64 `json:"ci95_low"`
	CI95High          float64 `json:"ci95_high"`
	Median            float64 `json:"median"`
	P05               float64 `json:"p05"`
	P95               float64 `json:"p95"`
}

// Summary computes the derived metrics for export
func (s *Session) Summary() Summary {
	low, high := s.Rounds.ConfidenceInterval95()
	return Summary{
		NetProfit:         s.NetProfit(),
		AvgPerHand:        s.AvgPerHand(),
		AvgPerSplitPart:   s.AvgPerSplitPart(),
		AvgPerDoubledHand: s.AvgPerDoubledHand(),
		StdDev:            s.Rounds.StdDev(),
		StdError:          s.Rounds.StdError(),
		CI95Low:           low,
		CI95High:          high,
		Median:            s.Rounds.Median(),
		P05:               s.Rounds.Percentile(0.05),
		P95:               s.Rounds.Percentile(0.95),
	}
}

type export struct {
	Sessions []*Session `json:"sessions"`
	Summary  []Summary  `json:"summary"`
}

// WriteJSON exports sessions to filename. Readers never observe a partially
// written file.
func WriteJSON(filename string, sessions ...*Session) error {
	out := export{Sessions: sessions}
	for _, s := range sessions {
		out.Summary = append(out.Summary, s.Summary())
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	return writeFileAtomic(filename, data, 0o644)
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
