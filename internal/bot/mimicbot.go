package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// MimicBot plays the house policy: hit below 17, otherwise stand. It never
// doubles, splits or surrenders.
type MimicBot struct {
	flatBet
	logger *log.Logger
}

// NewMimicBot creates a MimicBot that bets bet every round
func NewMimicBot(bet game.Coin, logger *log.Logger) *MimicBot {
	return &MimicBot{flatBet: flatBet{amount: bet}, logger: orDiscard(logger).WithPrefix("mimic")}
}

func (m *MimicBot) Decide(view game.View) (game.Action, bool) {
	seat, ok := view.ActingSeat()
	if !ok {
		return 0, false
	}
	action := game.Stand
	if seat.Hand.Value < 17 {
		action = game.Hit
	}
	m.logger.Debug("Bot decision", "seat", seat.ID, "hand", seat.Hand.Describe(), "action", action)
	return action, true
}
