package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Statistics accumulates per-round net results for the human seat
type Statistics struct {
	Rounds int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Wins   int // rounds with a positive net
	Losses int // rounds with a negative net
	Even   int // rounds that broke even
}

// Add incorporates one round's net result
func (s *Statistics) Add(net float64) {
	s.Rounds++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	switch {
	case net > 0:
		s.Wins++
	case net < 0:
		s.Losses++
	default:
		s.Even++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Even += other.Even
}

// Mean returns the average net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulator is internally consistent
func (s *Statistics) Validate() error {
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}
	if s.Wins+s.Losses+s.Even != s.Rounds {
		return fmt.Errorf("round outcomes (%d) do not match rounds (%d)", s.Wins+s.Losses+s.Even, s.Rounds)
	}
	return nil
}
