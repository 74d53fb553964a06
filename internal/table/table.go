// Package table hosts a single game: it holds the latest snapshot, drives
// automated brains and publishes every change to subscribers.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/game"
)

// ErrRoundOver is returned by operations that need a round in progress
var ErrRoundOver = errors.New("no round in progress")

// Pending describes why PlayRound stopped. A zero ParticipantID means the
// round was settled.
type Pending struct {
	Phase         game.Phase
	ParticipantID string
}

// Done reports whether the round finished rather than waiting on input
func (p Pending) Done() bool {
	return p.ParticipantID == ""
}

// Table wraps a game.Game for hosts that serve it from several goroutines.
// Operations are serialised; events are published after the lock is
// released.
type Table struct {
	id     string
	mu     sync.Mutex
	game   *game.Game
	bus    *SimpleEventBus
	clock  quartz.Clock
	logger *log.Logger
}

// Option configures a Table
type Option func(*Table)

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithID overrides the generated table ID
func WithID(id string) Option {
	return func(t *Table) {
		t.id = id
	}
}

// New hosts g. Without options it uses the real clock, a discard logger
// and a random ID.
func New(g *game.Game, opts ...Option) *Table {
	t := &Table{
		game:   g,
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == "" {
		t.id = uuid.NewString()[:8]
	}
	t.logger = t.logger.WithPrefix("table").With("table", t.id)
	return t
}

// ID returns the table identifier
func (t *Table) ID() string {
	return t.id
}

// Subscribe registers sub for every event and returns its unsubscribe func
func (t *Table) Subscribe(sub EventSubscriber) func() {
	return t.bus.Subscribe(sub)
}

// View returns the masked view of the latest snapshot
func (t *Table) View() game.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View()
}

// State returns the full latest snapshot, hole card included. It is for
// the host and for audit after a round; renderers and brains use View.
func (t *Table) State() game.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.State()
}

// StartRound opens betting for the next round
func (t *Table) StartRound() error {
	return t.do(func(before game.State) ([]Event, error) {
		s, err := t.game.StartNewRound()
		if err != nil {
			return nil, err
		}
		t.logger.Info("Round started", "round", s.RoundNumber)
		return []Event{RoundStartEvent{
			TableID:   t.id,
			Round:     s.RoundNumber,
			Seats:     t.game.View().Seats,
			timestamp: t.clock.Now(),
		}}, nil
	})
}

// Bet places a single wager, typically on behalf of a human
func (t *Table) Bet(id string, amount game.Coin) error {
	return t.placeBets(map[string]game.Coin{id: amount})
}

func (t *Table) placeBets(bets map[string]game.Coin) error {
	return t.do(func(before game.State) ([]Event, error) {
		s, err := t.game.PlaceBets(bets)
		if err != nil {
			return nil, err
		}
		return []Event{BetsPlacedEvent{
			Round:     s.RoundNumber,
			Bets:      maps.Clone(bets),
			Dealt:     s.Phase != game.PhaseBetting,
			timestamp: t.clock.Now(),
		}}, nil
	})
}

// Act applies a human's action
func (t *Table) Act(id string, action game.Action) error {
	return t.act(id, action, false)
}

func (t *Table) act(id string, action game.Action, auto bool) error {
	return t.do(func(before game.State) ([]Event, error) {
		s, err := t.game.HandlePlayerAction(id, action)
		if err != nil {
			return nil, err
		}
		p, _ := s.Participant(id)
		t.logger.Debug("Action applied", "participant", id, "action", action, "hand", p.Hand.Describe(), "auto", auto)
		return []Event{ActionEvent{
			Round:         s.RoundNumber,
			ParticipantID: id,
			Name:          p.Name,
			Action:        action,
			Hand:          p.Hand,
			Status:        p.Status,
			Auto:          auto,
			timestamp:     t.clock.Now(),
		}}, nil
	})
}

// AdvanceDealer plays the dealer's hand. During play it force-resolves the
// round by standing every remaining hand.
func (t *Table) AdvanceDealer() error {
	return t.do(func(before game.State) ([]Event, error) {
		_, err := t.game.AdvanceDealerTurn()
		return nil, err
	})
}

// Settle pays out the round and returns its result
func (t *Table) Settle() (game.RoundResult, error) {
	var result game.RoundResult
	err := t.do(func(before game.State) ([]Event, error) {
		s, err := t.game.SettleRound()
		if err != nil {
			return nil, err
		}
		result, _ = s.LastResult()
		t.logger.Info("Round settled", "round", result.Round, "dealer", result.DealerValue, "houseNet", result.HouseNet)
		return []Event{RoundSettledEvent{Result: result.Clone(), timestamp: t.clock.Now()}}, nil
	})
	return result, err
}

// Reset abandons the current round
func (t *Table) Reset() {
	_ = t.do(func(before game.State) ([]Event, error) {
		if before.Phase != game.PhaseWaiting {
			t.logger.Warn("Round abandoned", "round", before.RoundNumber, "phase", before.Phase)
		}
		t.game.Reset()
		return nil, nil
	})
}

// do runs op under the lock, derives the reshuffle, dealer and snapshot
// events from the state change, and publishes everything once unlocked.
func (t *Table) do(op func(before game.State) ([]Event, error)) error {
	t.mu.Lock()
	before := t.game.State()
	events, err := op(before)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	after := t.game.State()
	now := t.clock.Now()

	if after.Reshuffles > before.Reshuffles {
		t.logger.Info("Shoe reshuffled", "round", after.RoundNumber, "phase", after.Phase, "remaining", after.DeckRemaining())
		events = append(events, ReshuffleEvent{
			Round:     after.RoundNumber,
			Phase:     after.Phase,
			Remaining: after.DeckRemaining(),
			timestamp: now,
		})
	}
	if before.Phase != game.PhaseSettlement && after.Phase == game.PhaseSettlement {
		events = append(events, DealerPlayedEvent{Round: after.RoundNumber, Hand: after.Dealer.Hand, timestamp: now})
	}
	events = append(events, SnapshotEvent{View: t.game.View(), timestamp: now})
	t.mu.Unlock()

	for _, ev := range events {
		t.bus.Publish(ev)
	}
	return nil
}

// PlayRound advances the table as far as the automated brains allow. It
// starts a round when waiting, collects bot bets, asks bots for actions,
// plays a manual dealer and settles. It stops early when a human has to
// bet or act and reports who.
func (t *Table) PlayRound(ctx context.Context) (Pending, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Pending{}, err
		}

		view := t.View()
		switch view.Phase {
		case game.PhaseWaiting:
			if err := t.StartRound(); err != nil {
				return Pending{}, err
			}

		case game.PhaseBetting:
			pending, err := t.collectBets(view)
			if err != nil || !pending.Done() {
				return pending, err
			}

		case game.PhasePlaying:
			pending, err := t.decide(view)
			if err != nil || !pending.Done() {
				return pending, err
			}

		case game.PhaseDealerTurn:
			if err := t.AdvanceDealer(); err != nil {
				return Pending{}, err
			}

		case game.PhaseSettlement:
			if _, err := t.Settle(); err != nil {
				return Pending{}, err
			}
			return Pending{Phase: game.PhaseWaiting}, nil

		default:
			return Pending{}, fmt.Errorf("table %s stuck in %s", t.id, view.Phase)
		}
	}
}

// collectBets asks every active seat without a bet for its wager. Bot bets
// are placed as one batch; the first human still to bet is reported.
func (t *Table) collectBets(view game.View) (Pending, error) {
	state := t.State()
	bets := map[string]game.Coin{}
	var human string
	for _, p := range state.Participants {
		if p.Status != game.Active || p.HasBet() || p.IsSplit() {
			continue
		}
		amount, ok := p.Brain.Bet(view, p.ID)
		if !ok {
			if human == "" {
				human = p.ID
			}
			continue
		}
		bets[p.ID] = amount
	}
	if len(bets) > 0 {
		if err := t.placeBets(bets); err != nil {
			return Pending{}, fmt.Errorf("bot bets: %w", err)
		}
	}
	if human != "" {
		return Pending{Phase: game.PhaseBetting, ParticipantID: human}, nil
	}
	return Pending{}, nil
}

// decide asks the brain at CurrentTurn for an action. A rejected bot
// action falls back to standing, which is always legal.
func (t *Table) decide(view game.View) (Pending, error) {
	state := t.State()
	cur, ok := state.Current()
	if !ok {
		return Pending{}, fmt.Errorf("%w: nobody to act during %s", ErrRoundOver, view.Phase)
	}
	action, ok := cur.Brain.Decide(view)
	if !ok {
		return Pending{Phase: game.PhasePlaying, ParticipantID: cur.ID}, nil
	}
	if err := t.act(cur.ID, action, true); err != nil {
		t.logger.Error("Failed to apply bot decision", "participant", cur.ID, "action", action, "error", err)
		if err := t.act(cur.ID, game.Stand, true); err != nil {
			return Pending{}, fmt.Errorf("fallback stand for %s: %w", cur.ID, err)
		}
	}
	return Pending{}, nil
}
