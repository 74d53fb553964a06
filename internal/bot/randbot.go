package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// RandBot picks uniformly among the legal actions
type RandBot struct {
	flatBet
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a RandBot. rng is not shared safely; give each table
// its own.
func NewRandBot(rng *rand.Rand, bet game.Coin, logger *log.Logger) *RandBot {
	return &RandBot{flatBet: flatBet{amount: bet}, rng: rng, logger: orDiscard(logger).WithPrefix("random")}
}

func (r *RandBot) Decide(view game.View) (game.Action, bool) {
	if len(view.Legal) == 0 {
		return 0, false
	}
	action := view.Legal[r.rng.IntN(len(view.Legal))]
	r.logger.Debug("Bot decision", "seat", view.Acting, "action", action)
	return action, true
}
