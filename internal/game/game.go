package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/dealer"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// MaxParticipants is the number of seats at a table
const MaxParticipants = 7

// Game is the round state machine for one table. It owns the current State
// and replaces it wholesale on each successful operation; a failed
// operation leaves it untouched.
//
// A Game is not safe for concurrent use. Separate Games share nothing.
type Game struct {
	state  State
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
}

// New creates a game in the waiting phase with a freshly shuffled deck.
// The RNG is required so that every shuffle is reproducible from a seed.
func New(rng *rand.Rand, participants []Participant, opts ...Option) (*Game, error) {
	if rng == nil {
		return nil, errors.New("rng is required")
	}
	if len(participants) == 0 {
		return nil, errors.New("at least one participant required")
	}
	if len(participants) > MaxParticipants {
		return nil, fmt.Errorf("at most %d participants allowed, got %d", MaxParticipants, len(participants))
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		switch {
		case p.ID == "":
			return nil, errors.New("participant ID must not be empty")
		case p.ID == dealer.ID:
			return nil, fmt.Errorf("participant ID %q is reserved", p.ID)
		case strings.HasSuffix(p.ID, SplitSuffix):
			return nil, fmt.Errorf("participant ID %q must not end in %q", p.ID, SplitSuffix)
		case seen[p.ID]:
			return nil, fmt.Errorf("duplicate participant ID %q", p.ID)
		case p.Balance < 0:
			return nil, fmt.Errorf("participant %q has negative balance", p.ID)
		}
		seen[p.ID] = true
	}

	cfg := &gameConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rules.MaxBet > 0 && cfg.rules.MinBet > cfg.rules.MaxBet {
		return nil, fmt.Errorf("minimum bet %s exceeds maximum %s", cfg.rules.MinBet, cfg.rules.MaxBet)
	}
	if cfg.rules.HistoryLimit < 0 {
		return nil, fmt.Errorf("history limit must not be negative, got %d", cfg.rules.HistoryLimit)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	shoe := deck.New().Shuffle(rng)
	if cfg.deck != nil {
		shoe = *cfg.deck
	}

	seats := make([]Participant, len(participants))
	for i, p := range participants {
		p = p.Clone()
		if p.Brain == nil {
			p.Brain = Human{}
		}
		p.Bet, p.Doubled, p.Acted, p.SplitFrom = 0, false, false, ""
		p.Status = Active
		seats[i] = p
	}

	g := &Game{
		state: State{
			Phase:        PhaseWaiting,
			Participants: seats,
			Dealer:       dealer.New(),
			CurrentTurn:  NoTurn,
			deck:         shoe,
		},
		rules:  cfg.rules,
		rng:    rng,
		logger: cfg.logger,
	}
	g.resetTable(&g.state)
	return g, nil
}

// State returns a copy of the current snapshot. It is the host's unmasked
// copy: the dealer hand includes the face-down hole card and its value
// counts it. Anything shown to a participant or handed to a Brain must come
// from View instead.
func (g *Game) State() State {
	return g.state.Clone()
}

// Rules returns the house rules in force
func (g *Game) Rules() Rules {
	return g.rules
}

// apply runs fn against a copy of the current state and commits the copy
// only when fn succeeds.
func (g *Game) apply(op string, fn func(s *State) error) (State, error) {
	next := g.state.Clone()
	if err := fn(&next); err != nil {
		g.logger.Debug("Operation rejected", "op", op, "phase", g.state.Phase, "error", err)
		return g.state.Clone(), err
	}
	if next.Phase != g.state.Phase {
		g.logger.Debug("Phase change", "op", op, "from", g.state.Phase, "to", next.Phase, "round", next.RoundNumber)
	}
	g.state = next
	return next.Clone(), nil
}

// StartNewRound clears the previous round's hands and opens betting
func (g *Game) StartNewRound() (State, error) {
	return g.apply("start", func(s *State) error {
		if s.Phase != PhaseWaiting {
			return fmt.Errorf("%w: cannot start a round during %s", ErrInvalidTransition, s.Phase)
		}
		g.resetTable(s)

		eligible := 0
		for i := range s.Participants {
			p := &s.Participants[i]
			if p.Balance <= 0 || p.Balance < g.rules.MinBet {
				p.Status = SittingOut
				continue
			}
			eligible++
		}
		if eligible == 0 {
			return fmt.Errorf("%w: no participant can cover a bet", ErrInvalidTransition)
		}

		s.RoundNumber++
		s.Phase = PhaseBetting
		return nil
	})
}

// PlaceBets records wagers for one or more participants as a single batch.
// Every entry is validated before any is applied; one bad entry rejects
// the whole batch. Once every active participant has a bet the cards are
// dealt and play begins.
func (g *Game) PlaceBets(bets map[string]Coin) (State, error) {
	return g.apply("bet", func(s *State) error {
		if s.Phase != PhaseBetting {
			return fmt.Errorf("%w: %w: bets are not accepted during %s", ErrInvalidBet, ErrInvalidTransition, s.Phase)
		}
		if len(bets) == 0 {
			return fmt.Errorf("%w: no bets given", ErrInvalidBet)
		}

		ids := make([]string, 0, len(bets))
		for id := range bets {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		for _, id := range ids {
			if err := g.validateBet(s, id, bets[id]); err != nil {
				return err
			}
		}
		for _, id := range ids {
			s.Participants[s.indexOf(id)].Bet = bets[id]
		}

		for _, p := range s.Participants {
			if p.Status == Active && !p.HasBet() {
				return nil
			}
		}
		return g.deal(s)
	})
}

func (g *Game) validateBet(s *State, id string, amount Coin) error {
	i := s.indexOf(id)
	if i < 0 || s.Participants[i].IsSplit() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidBet, ErrUnknownParticipant, id)
	}
	p := s.Participants[i]
	switch {
	case p.Status == SittingOut:
		return fmt.Errorf("%w: %s is sitting out", ErrInvalidBet, id)
	case p.HasBet():
		return fmt.Errorf("%w: %s already bet %s", ErrInvalidBet, id, p.Bet)
	case amount <= 0:
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidBet, id, amount)
	case amount > p.Balance:
		return fmt.Errorf("%w: %s bet %s exceeds balance %s", ErrInvalidBet, id, amount, p.Balance)
	case g.rules.MinBet > 0 && amount < g.rules.MinBet:
		return fmt.Errorf("%w: %s bet %s below table minimum %s", ErrInvalidBet, id, amount, g.rules.MinBet)
	case g.rules.MaxBet > 0 && amount > g.rules.MaxBet:
		return fmt.Errorf("%w: %s bet %s above table maximum %s", ErrInvalidBet, id, amount, g.rules.MaxBet)
	}
	return nil
}

// deal gives two cards to every betting participant and the dealer, in
// rotation, with the dealer's second card face down.
func (g *Game) deal(s *State) error {
	s.Phase = PhaseDealing
	for round := 0; round < 2; round++ {
		for i := range s.Participants {
			p := &s.Participants[i]
			if p.Status != Active {
				continue
			}
			card, err := g.draw(s)
			if err != nil {
				return fmt.Errorf("dealing to %s: %w", p.ID, err)
			}
			p.Hand = p.Hand.Add(card.WithFaceUp(true))
		}
		card, err := g.draw(s)
		if err != nil {
			return fmt.Errorf("dealing to dealer: %w", err)
		}
		s.Dealer = s.Dealer.Deal(card, round == 1)
	}

	// A natural cannot improve; it waits for settlement.
	for i := range s.Participants {
		p := &s.Participants[i]
		if p.Status == Active && p.Hand.Blackjack {
			p.Status = Standing
		}
	}

	s.Phase = PhasePlaying
	s.CurrentTurn = s.nextActive(NoTurn)
	if s.CurrentTurn == NoTurn {
		return g.enterDealerTurn(s)
	}
	return nil
}

// draw takes the top card of the shoe. An empty shoe is rebuilt from every
// card not currently held in a hand, so no card is ever duplicated.
func (g *Game) draw(s *State) (deck.Card, error) {
	if s.deck.IsEmpty() {
		s.deck = deck.Without(s.tableCards()).Shuffle(g.rng)
		s.Reshuffles++
		g.logger.Debug("Reshuffled shoe", "round", s.RoundNumber, "phase", s.Phase, "cards", s.deck.Len())
	}
	card, rest, err := s.deck.Draw()
	if err != nil {
		return deck.Card{}, err
	}
	s.deck = rest
	return card, nil
}

func (g *Game) enterDealerTurn(s *State) error {
	s.Phase = PhaseDealerTurn
	s.CurrentTurn = NoTurn
	if g.rules.ManualDealer {
		return nil
	}
	return g.playDealer(s)
}

func (g *Game) playDealer(s *State) error {
	s.Dealer = s.Dealer.RevealHoleCard()
	d, err := dealer.Play(s.Dealer, func() (deck.Card, error) { return g.draw(s) }, g.rules.DealerRule)
	if err != nil {
		return err
	}
	s.Dealer = d
	s.Phase = PhaseSettlement
	return nil
}

// AdvanceDealerTurn reveals the hole card and plays the dealer's hand. It
// runs automatically when the last participant finishes; calling it during
// play force-resolves the round by standing every remaining hand.
func (g *Game) AdvanceDealerTurn() (State, error) {
	return g.apply("dealer", func(s *State) error {
		switch s.Phase {
		case PhasePlaying:
			for i := range s.Participants {
				if s.Participants[i].Status == Active {
					s.Participants[i].Status = Standing
				}
			}
			s.Phase = PhaseDealerTurn
			s.CurrentTurn = NoTurn
		case PhaseDealerTurn:
		default:
			return fmt.Errorf("%w: dealer cannot play during %s", ErrInvalidTransition, s.Phase)
		}
		return g.playDealer(s)
	})
}

// SettleRound pays out every hand, records the round in History and
// returns the table to waiting. Hands stay visible until the next round.
func (g *Game) SettleRound() (State, error) {
	return g.apply("settle", func(s *State) error {
		if s.Phase != PhaseSettlement {
			return fmt.Errorf("%w: cannot settle during %s", ErrInvalidTransition, s.Phase)
		}
		result, err := settleRound(s)
		if err != nil {
			return err
		}
		s.History = append(s.History, result)
		if n := g.rules.HistoryLimit; n > 0 && len(s.History) > n {
			s.History = slices.Clone(s.History[len(s.History)-n:])
		}
		s.Phase = PhaseWaiting
		s.CurrentTurn = NoTurn
		g.logger.Debug("Round settled", "round", result.Round, "dealer", result.DealerValue, "houseNet", result.HouseNet)
		return nil
	})
}

// Reset abandons whatever is in progress and returns to waiting with
// hands, bets and split slots cleared. Balances, history and the round
// counter are kept. Calling it twice yields the same state.
func (g *Game) Reset() State {
	s, _ := g.apply("reset", func(s *State) error {
		g.resetTable(s)
		s.Phase = PhaseWaiting
		return nil
	})
	return s
}

func (g *Game) resetTable(s *State) {
	s.dropSplits()
	for i := range s.Participants {
		p := &s.Participants[i]
		p.Hand = hand.Evaluate(nil)
		p.Bet = 0
		p.Doubled = false
		p.Acted = false
		p.Status = Active
	}
	s.Dealer = dealer.New()
	s.CurrentTurn = NoTurn
}
