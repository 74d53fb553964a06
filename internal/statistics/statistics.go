// Package statistics accumulates per-hand blackjack results for the
// simulator.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// Statistics tracks the results of one participant's hands. Money values
// are in chips; Mean and friends are chips per hand.
type Statistics struct {
	Hands   int
	Net     int64 // sum of settlement deltas
	Wagered int64 // sum of final bets, doubles included
	SumSq   float64
	Values  []float64 `json:"-"` // per-hand deltas for median/percentiles

	Wins       int // blackjacks included
	Pushes     int
	Losses     int // busts and surrenders included
	Blackjacks int
	Busts      int
	Surrenders int
	Doubles    int
	Splits     int // split hands played, counted on the split slot
}

// Add incorporates one settled hand
func (s *Statistics) Add(r game.ParticipantResult, doubled, split bool) {
	delta := float64(r.Delta)
	s.Hands++
	s.Net += int64(r.Delta)
	s.Wagered += int64(r.Bet)
	s.SumSq += delta * delta
	s.Values = append(s.Values, delta)

	switch r.Outcome {
	case game.OutcomeBlackjack:
		s.Wins++
		s.Blackjacks++
	case game.OutcomeWin:
		s.Wins++
	case game.OutcomePush:
		s.Pushes++
	case game.OutcomeLose:
		s.Losses++
	case game.OutcomeBust:
		s.Losses++
		s.Busts++
	case game.OutcomeSurrender:
		s.Losses++
		s.Surrenders++
	}
	if doubled {
		s.Doubles++
	}
	if split {
		s.Splits++
	}
}

// Merge folds other into s. Values are appended in order, so merging
// tables in a fixed order gives reproducible percentiles.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Net += other.Net
	s.Wagered += other.Wagered
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Surrenders += other.Surrenders
	s.Doubles += other.Doubles
	s.Splits += other.Splits
}

// Mean returns the average delta per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Net) / float64(s.Hands)
}

// Variance returns the sample variance of the per-hand deltas
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Return is net over wagered: the player's edge, negative when the house
// wins.
func (s *Statistics) Return() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.Net) / float64(s.Wagered)
}

// WinRate is the fraction of hands won
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Median returns the median per-hand delta
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

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands (%d)", len(s.Values), s.Hands)
	}
	if outcomes := s.Wins + s.Pushes + s.Losses; outcomes != s.Hands {
		return fmt.Errorf("outcomes (%d) do not match hands (%d)", outcomes, s.Hands)
	}
	if s.Blackjacks > s.Wins {
		return fmt.Errorf("blackjacks (%d) exceed wins (%d)", s.Blackjacks, s.Wins)
	}
	if s.Busts+s.Surrenders > s.Losses {
		return fmt.Errorf("busts and surrenders (%d) exceed losses (%d)", s.Busts+s.Surrenders, s.Losses)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-float64(s.Net)) > 1e-6 {
		return fmt.Errorf("ledger mismatch: values sum to %.0f, net is %d", sum, s.Net)
	}
	return nil
}

// Summary is the JSON form of a Statistics
type Summary struct {
	Hands      int     `json:"hands"`
	Net        int64   `json:"net"`
	Wagered    int64   `json:"wagered"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
	CILow      float64 `json:"ci95_low"`
	CIHigh     float64 `json:"ci95_high"`
	Return     float64 `json:"return"`
	Wins       int     `json:"wins"`
	Pushes     int     `json:"pushes"`
	Losses     int     `json:"losses"`
	Blackjacks int     `json:"blackjacks"`
	Busts      int     `json:"busts"`
	Surrenders int     `json:"surrenders"`
	Doubles    int     `json:"doubles"`
	Splits     int     `json:"splits"`
}

// Summary computes the derived figures once for reporting
func (s *Statistics) Summary() Summary {
	low, high := s.ConfidenceInterval95()
	return Summary{
		Hands:      s.Hands,
		Net:        s.Net,
		Wagered:    s.Wagered,
		Mean:       s.Mean(),
		StdDev:     s.StdDev(),
		CILow:      low,
		CIHigh:     high,
		Return:     s.Return(),
		Wins:       s.Wins,
		Pushes:     s.Pushes,
		Losses:     s.Losses,
		Blackjacks: s.Blackjacks,
		Busts:      s.Busts,
		Surrenders: s.Surrenders,
		Doubles:    s.Doubles,
		Splits:     s.Splits,
	}
}
