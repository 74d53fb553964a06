// Package bot provides automated blackjack strategies. Every strategy
// implements game.Brain and answers synchronously.
package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Strategy names accepted by New
const (
	Human       = "human"
	DealerMimic = "dealer"
	Basic       = "basic"
	Random      = "random"
)

// Names lists every strategy New understands
var Names = []string{Human, DealerMimic, Basic, Random}

// New builds the brain registered under name. Bots bet the flat amount
// bet every round; rng is only used by the random strategy.
func New(name string, bet game.Coin, rng *rand.Rand, logger *log.Logger) (game.Brain, error) {
	switch strings.ToLower(name) {
	case Human, "":
		return game.Human{}, nil
	case DealerMimic:
		return NewMimicBot(bet, logger), nil
	case Basic:
		return NewChartBot(bet, logger), nil
	case Random:
		if rng == nil {
			return nil, fmt.Errorf("random strategy needs an rng")
		}
		return NewRandBot(rng, bet, logger), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(Names, ", "))
}

// flatBet wagers the same amount every round, clamped to the table limits
// and the seat's balance.
type flatBet struct {
	amount game.Coin
}

func (f flatBet) Bet(view game.View, id string) (game.Coin, bool) {
	seat, ok := view.Seat(id)
	if !ok {
		return 0, false
	}
	amount := f.amount
	if amount < view.MinBet {
		amount = view.MinBet
	}
	if view.MaxBet > 0 && amount > view.MaxBet {
		amount = view.MaxBet
	}
	if amount > seat.Balance {
		amount = seat.Balance
	}
	if amount < 1 {
		amount = 1
	}
	return amount, true
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// pick returns want when it is legal, otherwise fallback
func pick(view game.View, want, fallback game.Action) game.Action {
	if view.CanAct(want) {
		return want
	}
	return fallback
}
