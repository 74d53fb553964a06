package simulator

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
)

func botTable(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
table {
  min_bet = 5
  max_bet = 500
}

participant "basic" {
  brain = "basic"
  bet   = 10
}

participant "mimic" {
  brain = "dealer"
  bet   = 10
}

participant "random" {
  brain   = "random"
  balance = 100000
  bet     = 10
}
`), "sim.hcl")
	require.NoError(t, err)
	return cfg
}

func TestNew(t *testing.T) {
	sim := New(Config{Table: botTable(t), Tables: 2, Rounds: 10})
	require.NotNil(t, sim)
	assert.NotNil(t, sim.config.Logger)
	assert.Greater(t, sim.config.Parallel, 0)
}

func TestRun(t *testing.T) {
	sim := New(Config{
		Table:    botTable(t),
		Tables:   4,
		Rounds:   50,
		Seed:     12345,
		Parallel: 2,
		Timeout:  30 * time.Second,
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"basic", "mimic", "random"}, report.Order)
	assert.Equal(t, 200, report.RoundsPlayed)

	var net int64
	for _, id := range report.Order {
		st := report.Participants[id]
		require.NoError(t, st.Validate())
		// split hands add to the owner's count
		assert.GreaterOrEqual(t, st.Hands, 200, id)
		net += st.Net
	}
	assert.Equal(t, -report.HouseNet, net, "house and players must balance")
}

func TestRunIsReproducible(t *testing.T) {
	run := func(parallel int) *Report {
		sim := New(Config{Table: botTable(t), Tables: 3, Rounds: 30, Seed: 7, Parallel: parallel})
		report, err := sim.Run(context.Background())
		require.NoError(t, err)
		return report
	}

	a, b := run(1), run(3)
	assert.Equal(t, a.HouseNet, b.HouseNet)
	assert.Equal(t, a.Reshuffles, b.Reshuffles)
	for _, id := range a.Order {
		assert.Equal(t, a.Participants[id].Values, b.Participants[id].Values, id)
	}
}

func TestRunStopsWhenBankrollsRunOut(t *testing.T) {
	cfg, err := config.Parse([]byte(`
participant "poor" {
  brain   = "random"
  balance = 20
  bet     = 10
}
`), "poor.hcl")
	require.NoError(t, err)

	report, err := New(Config{Table: cfg, Tables: 1, Rounds: 10000, Seed: 3}).Run(context.Background())
	require.NoError(t, err)
	assert.Less(t, report.RoundsPlayed, 10000)
	assert.GreaterOrEqual(t, report.RoundsPlayed, 1)
}

func TestRunRejectsHumans(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, bot.Human, cfg.Participants[0].Brain)

	_, err := New(Config{Table: cfg, Tables: 1, Rounds: 1}).Run(context.Background())
	assert.ErrorIs(t, err, ErrHumanSeat)
}

func TestRunValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no table", Config{Tables: 1, Rounds: 1}},
		{"no tables", Config{Table: botTable(t), Rounds: 1}},
		{"no rounds", Config{Table: botTable(t), Tables: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Table: botTable(t), Tables: 2, Rounds: 10}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportOutput(t *testing.T) {
	report, err := New(Config{Table: botTable(t), Tables: 1, Rounds: 20, Seed: 1}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, report)
	out := buf.String()
	assert.Contains(t, out, "=== SIMULATION RESULTS ===")
	assert.Contains(t, out, "--- basic ---")
	assert.Contains(t, out, "--- random ---")

	js := report.JSON()
	assert.Equal(t, int64(1), js.Seed)
	assert.Equal(t, 20, js.RoundsPlayed)
	assert.Len(t, js.Participants, 3)
	assert.Equal(t, report.Participants["basic"].Hands, js.Participants["basic"].Hands)
}
