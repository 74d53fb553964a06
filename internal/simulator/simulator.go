// Package simulator plays many bot-only tables in parallel and aggregates
// per-participant results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/table"
)

// ErrHumanSeat is returned when a configuration seats a human, who would
// block the simulation waiting for input.
var ErrHumanSeat = errors.New("simulations need bot-only tables")

// Config holds configuration for running simulations
type Config struct {
	Table    *config.Config
	Tables   int           // independent tables to run
	Rounds   int           // rounds per table
	Seed     int64         // base seed; table i uses randutil.Derive(Seed, i)
	Parallel int           // tables run at once; zero uses GOMAXPROCS
	Timeout  time.Duration // per table; zero disables
	Logger   *log.Logger
}

// Report is the aggregated outcome of a simulation
type Report struct {
	Seed         int64
	Tables       int
	Rounds       int // requested per table
	RoundsPlayed int // across all tables; lower when bankrolls ran out
	Reshuffles   int
	HouseNet     int64
	Order        []string // participant IDs in seat order
	Participants map[string]*statistics.Statistics
	Elapsed      time.Duration
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Parallel <= 0 {
		config.Parallel = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config}
}

type tableResult struct {
	rounds     int
	reshuffles int
	houseNet   int64
	stats      map[string]*statistics.Statistics
}

// Run plays every table and merges the results in table order, so a given
// seed always yields the same report.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Table == nil {
		return nil, errors.New("table configuration is required")
	}
	if err := s.config.Table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table configuration: %w", err)
	}
	if n := s.config.Table.Humans(); n > 0 {
		return nil, fmt.Errorf("%w: %d human seat(s) configured", ErrHumanSeat, n)
	}
	if s.config.Tables <= 0 || s.config.Rounds <= 0 {
		return nil, fmt.Errorf("tables and rounds must be positive, got %d and %d", s.config.Tables, s.config.Rounds)
	}

	start := time.Now()
	results := make([]*tableResult, s.config.Tables)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Tables {
		g.Go(func() error {
			res, err := s.runTableWithTimeout(ctx, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Seed:         s.config.Seed,
		Tables:       s.config.Tables,
		Rounds:       s.config.Rounds,
		Participants: map[string]*statistics.Statistics{},
	}
	for _, p := range s.config.Table.Participants {
		report.Order = append(report.Order, p.ID)
		report.Participants[p.ID] = &statistics.Statistics{}
	}
	for _, res := range results {
		report.RoundsPlayed += res.rounds
		report.Reshuffles += res.reshuffles
		report.HouseNet += res.houseNet
		for _, id := range report.Order {
			if st, ok := res.stats[id]; ok {
				report.Participants[id].Merge(st)
			}
		}
	}
	for _, id := range report.Order {
		if err := report.Participants[id].Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", id, err)
		}
	}
	report.Elapsed = time.Since(start)

	s.config.Logger.Info("Simulation complete",
		"tables", report.Tables,
		"rounds", report.RoundsPlayed,
		"houseNet", report.HouseNet,
		"elapsed", report.Elapsed)
	return report, nil
}

func (s *Simulator) runTableWithTimeout(ctx context.Context, i int) (*tableResult, error) {
	if s.config.Timeout <= 0 {
		return s.runTable(ctx, i)
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	res, err := s.runTable(ctx, i)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("timed out after %v (seed %d): %w", s.config.Timeout, randutil.Derive(s.config.Seed, i), err)
	}
	return res, err
}

// runTable plays one table until it has played the requested rounds or
// nobody can cover the minimum bet.
func (s *Simulator) runTable(ctx context.Context, i int) (*tableResult, error) {
	seed := randutil.Derive(s.config.Seed, i)
	rng := randutil.New(seed)
	logger := s.config.Logger.With("table", i)

	participants, err := s.config.Table.BuildParticipants(rng, logger)
	if err != nil {
		return nil, err
	}
	opts := append(s.config.Table.GameOptions(logger), game.WithHistoryLimit(1))
	g, err := game.New(rng, participants, opts...)
	if err != nil {
		return nil, err
	}
	tbl := table.New(g, table.WithID(fmt.Sprintf("sim-%d", i)), table.WithLogger(logger))

	res := &tableResult{stats: map[string]*statistics.Statistics{}}
	unsubscribe := tbl.Subscribe(table.SubscriberFunc(func(ev table.Event) {
		if ev.EventType() == table.EventTypeReshuffle {
			res.reshuffles++
		}
	}))
	defer unsubscribe()

	minBet := game.Coin(s.config.Table.Table.MinBet)
	for range s.config.Rounds {
		if !anyCanBet(tbl.State(), minBet) {
			logger.Debug("Every bankroll exhausted", "seed", seed, "rounds", res.rounds)
			break
		}
		pending, err := tbl.PlayRound(ctx)
		if err != nil {
			return nil, err
		}
		if !pending.Done() {
			return nil, fmt.Errorf("%w: %s is waiting for input", ErrHumanSeat, pending.ParticipantID)
		}
		res.record(tbl.State())
	}
	return res, nil
}

// record books the last settled round. Split hands count towards their
// owner.
func (r *tableResult) record(s game.State) {
	last, ok := s.LastResult()
	if !ok {
		return
	}
	r.rounds++
	r.houseNet += int64(last.HouseNet)
	for _, pr := range last.Results {
		p, ok := s.Participant(pr.ParticipantID)
		if !ok {
			continue
		}
		st, ok := r.stats[p.Owner()]
		if !ok {
			st = &statistics.Statistics{}
			r.stats[p.Owner()] = st
		}
		st.Add(pr, p.Doubled, p.IsSplit())
	}
}

func anyCanBet(s game.State, minBet game.Coin) bool {
	for _, p := range s.Participants {
		if !p.IsSplit() && p.Balance > 0 && p.Balance >= minBet {
			return true
		}
	}
	return false
}

// PrintSummary writes a human-readable summary of the report
func PrintSummary(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(w, "Seed: %d\n", r.Seed)
	fmt.Fprintf(w, "Tables: %d, rounds played: %d of %d\n", r.Tables, r.RoundsPlayed, r.Tables*r.Rounds)
	fmt.Fprintf(w, "Reshuffles: %d\n", r.Reshuffles)
	fmt.Fprintf(w, "House net: %d\n", r.HouseNet)

	for _, id := range r.Order {
		st := r.Participants[id]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "\n--- %s ---\n", id)
		fmt.Fprintf(w, "Hands: %d, net %d on %d wagered (%.2f%%)\n", st.Hands, st.Net, st.Wagered, st.Return()*100)
		fmt.Fprintf(w, "Mean: %.4f per hand, std dev %.4f\n", st.Mean(), st.StdDev())
		fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
		fmt.Fprintf(w, "Wins %d (blackjacks %d), pushes %d, losses %d (busts %d, surrenders %d)\n",
			st.Wins, st.Blackjacks, st.Pushes, st.Losses, st.Busts, st.Surrenders)
		fmt.Fprintf(w, "Doubles %d, split hands %d\n", st.Doubles, st.Splits)
	}
}

// JSONReport is the machine-readable form written by --out
type JSONReport struct {
	Seed         int64                         `json:"seed"`
	Tables       int                           `json:"tables"`
	Rounds       int                           `json:"rounds_per_table"`
	RoundsPlayed int                           `json:"rounds_played"`
	Reshuffles   int                           `json:"reshuffles"`
	HouseNet     int64                         `json:"house_net"`
	ElapsedMS    int64                         `json:"elapsed_ms"`
	Participants map[string]statistics.Summary `json:"participants"`
}

// JSON converts the report for serialisation
func (r *Report) JSON() JSONReport {
	out := JSONReport{
		Seed:         r.Seed,
		Tables:       r.Tables,
		Rounds:       r.Rounds,
		RoundsPlayed: r.RoundsPlayed,
		Reshuffles:   r.Reshuffles,
		HouseNet:     r.HouseNet,
		ElapsedMS:    r.Elapsed.Milliseconds(),
		Participants: make(map[string]statistics.Summary, len(r.Participants)),
	}
	for id, st := range r.Participants {
		out.Participants[id] = st.Summary()
	}
	return out
}
