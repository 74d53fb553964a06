package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func result(outcome game.Outcome, bet, delta game.Coin) game.ParticipantResult {
	return game.ParticipantResult{ParticipantID: "p", Outcome: outcome, Bet: bet, Delta: delta}
}

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Return())
	assert.Zero(t, stats.WinRate())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_SingleHand(t *testing.T) {
	stats := &Statistics{}
	stats.Add(result(game.OutcomeBlackjack, 100, 150), false, false)

	if stats.Hands != 1 {
		t.Errorf("Expected 1 hand, got %d", stats.Hands)
	}
	if stats.Mean() != 150 {
		t.Errorf("Expected mean of 150, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Wins != 1 || stats.Blackjacks != 1 {
		t.Errorf("Expected one blackjack win, got wins=%d blackjacks=%d", stats.Wins, stats.Blackjacks)
	}
	assert.InDelta(t, 1.5, stats.Return(), 1e-9)
}

func TestStatistics_Outcomes(t *testing.T) {
	stats := &Statistics{}
	stats.Add(result(game.OutcomeWin, 20, 20), true, false)
	stats.Add(result(game.OutcomePush, 10, 0), false, false)
	stats.Add(result(game.OutcomeLose, 10, -10), false, true)
	stats.Add(result(game.OutcomeBust, 10, -10), false, false)
	stats.Add(result(game.OutcomeSurrender, 10, -5), false, false)

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Hands)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 3, stats.Losses)
	assert.Equal(t, 1, stats.Busts)
	assert.Equal(t, 1, stats.Surrenders)
	assert.Equal(t, 1, stats.Doubles)
	assert.Equal(t, 1, stats.Splits)
	assert.Equal(t, int64(-5), stats.Net)
	assert.Equal(t, int64(60), stats.Wagered)
	assert.InDelta(t, -1.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 0.2, stats.WinRate(), 1e-9)
	assert.Equal(t, -5.0, stats.Median())
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, d := range []game.Coin{10, -10, 10, -10} {
		outcome := game.OutcomeWin
		if d < 0 {
			outcome = game.OutcomeLose
		}
		stats.Add(result(outcome, 10, d), false, false)
	}

	assert.Zero(t, stats.Mean())
	// sample variance: 4*100 / 3
	assert.InDelta(t, 400.0/3, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(400.0/3), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(400.0/3)/2, stats.StdError(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, -high, low, 1e-9)
	assert.Greater(t, high, 0.0)
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(result(game.OutcomeWin, 10, game.Coin(i)), false, false)
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.9, 4.6},
		{1, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(result(game.OutcomeWin, 10, 10), false, false)
	b := &Statistics{}
	b.Add(result(game.OutcomeBust, 10, -10), true, false)
	b.Add(result(game.OutcomeBlackjack, 10, 15), false, false)

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, 3, a.Hands)
	assert.Equal(t, int64(15), a.Net)
	assert.Equal(t, 2, a.Wins)
	assert.Equal(t, 1, a.Blackjacks)
	assert.Equal(t, 1, a.Doubles)
	assert.Equal(t, []float64{10, -10, 15}, a.Values)
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
	}{
		{"values length", Statistics{Hands: 1}},
		{"outcomes", Statistics{Hands: 1, Values: []float64{0}}},
		{"blackjacks exceed wins", Statistics{Hands: 1, Values: []float64{15}, Net: 15, Wins: 1, Blackjacks: 2}},
		{"busts exceed losses", Statistics{Hands: 1, Values: []float64{-10}, Net: -10, Losses: 1, Busts: 1, Surrenders: 1}},
		{"ledger", Statistics{Hands: 1, Values: []float64{10}, Net: 20, Wins: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.stats.Validate())
		})
	}
}

func TestSummary(t *testing.T) {
	stats := &Statistics{}
	stats.Add(result(game.OutcomeWin, 10, 10), false, false)
	stats.Add(result(game.OutcomeLose, 10, -10), false, false)

	sum := stats.Summary()
	assert.Equal(t, 2, sum.Hands)
	assert.Equal(t, int64(0), sum.Net)
	assert.Equal(t, int64(20), sum.Wagered)
	assert.Equal(t, stats.StdDev(), sum.StdDev)
	assert.Equal(t, 1, sum.Wins)
	assert.Equal(t, 1, sum.Losses)
}
