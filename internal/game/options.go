package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/dealer"
	"github.com/lox/blackjack/internal/deck"
)

// Rules are the house rules a Game enforces
type Rules struct {
	DealerRule dealer.Rule
	MinBet     Coin // zero means no minimum beyond one chip
	MaxBet     Coin // zero means no table maximum
	// ManualDealer stops the round in PhaseDealerTurn instead of playing
	// the dealer automatically; AdvanceDealerTurn resumes it.
	ManualDealer bool
	// HistoryLimit caps how many settled rounds State.History keeps,
	// dropping the oldest first. Zero keeps every round.
	HistoryLimit int
}

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rules  Rules
	deck   *deck.Deck
	logger *log.Logger
}

// WithDealerRule selects the soft-17 policy. Default is StandSoft17.
func WithDealerRule(rule dealer.Rule) Option {
	return func(c *gameConfig) {
		c.rules.DealerRule = rule
	}
}

// WithBetLimits sets the table minimum and maximum. Zero disables a limit.
func WithBetLimits(min, max Coin) Option {
	return func(c *gameConfig) {
		c.rules.MinBet = min
		c.rules.MaxBet = max
	}
}

// WithManualDealer makes the dealer wait for AdvanceDealerTurn
func WithManualDealer() Option {
	return func(c *gameConfig) {
		c.rules.ManualDealer = true
	}
}

// WithHistoryLimit keeps only the last n settled rounds in History. Long
// simulations use it to stop snapshots growing without bound.
func WithHistoryLimit(n int) Option {
	return func(c *gameConfig) {
		c.rules.HistoryLimit = n
	}
}

// WithDeck uses d as the starting shoe instead of a freshly shuffled deck.
// The first card of d is dealt first. Intended for deterministic tests.
func WithDeck(d deck.Deck) Option {
	return func(c *gameConfig) {
		c.deck = &d
	}
}

// WithLogger sets the logger used for state machine diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}
