package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

// play is one cell of the strategy chart
type play int

const (
	hit play = iota
	stand
	split
	// When the first choice is not legal, double hits and the others fall
	// back to the play named after "Or".
	double
	doubleOrStand
	surrenderOrHit
)

// ChartBot follows a basic strategy chart for a dealer who stands on soft
// 17 and does not peek. Pairs are checked first, then surrender, then soft
// and hard totals.
type ChartBot struct {
	flatBet
	logger *log.Logger
}

// NewChartBot creates a ChartBot that bets bet every round
func NewChartBot(bet game.Coin, logger *log.Logger) *ChartBot {
	return &ChartBot{flatBet: flatBet{amount: bet}, logger: orDiscard(logger).WithPrefix("basic")}
}

func (c *ChartBot) Decide(view game.View) (game.Action, bool) {
	seat, ok := view.ActingSeat()
	if !ok {
		return 0, false
	}
	up, ok := view.DealerUpCard()
	if !ok {
		return 0, false
	}

	cell := chart(seat.Hand, up.Rank.Points(), view.CanAct(game.Split))
	action := resolve(view, cell)
	c.logger.Debug("Bot decision",
		"seat", seat.ID,
		"hand", seat.Hand.Describe(),
		"dealer", up.String(),
		"action", action)
	return action, true
}

func resolve(view game.View, cell play) game.Action {
	switch cell {
	case stand:
		return game.Stand
	case double:
		return pick(view, game.Double, game.Hit)
	case doubleOrStand:
		return pick(view, game.Double, game.Stand)
	case surrenderOrHit:
		return pick(view, game.Surrender, game.Hit)
	case split:
		return game.Split
	}
	return game.Hit
}

// chart looks up the play for h against the dealer's up card value, where
// an ace counts 11. A pair that may not be split plays as its total.
func chart(h hand.Hand, up int, canSplit bool) play {
	if canSplit && h.IsPair() {
		if p, ok := pairPlay(h.Cards[0].Rank, up); ok {
			return p
		}
	}
	if !h.Soft {
		switch {
		case h.Value == 16 && up >= 9 && h.Len() == 2:
			return surrenderOrHit
		case h.Value == 15 && up == 10 && h.Len() == 2:
			return surrenderOrHit
		}
	}
	if h.Soft {
		return softPlay(h.Value, up)
	}
	return hardPlay(h.Value, up)
}

// pairPlay returns split when the pair should be split. ok is false when
// the pair plays as its hard total.
func pairPlay(r deck.Rank, up int) (play, bool) {
	switch {
	case r == deck.Ace, r == deck.Eight:
		return split, true
	case r == deck.Nine:
		if up <= 9 && up != 7 {
			return split, true
		}
	case r == deck.Seven, r == deck.Two, r == deck.Three:
		if up <= 7 {
			return split, true
		}
	case r == deck.Six:
		if up <= 6 {
			return split, true
		}
	case r == deck.Four:
		if up == 5 || up == 6 {
			return split, true
		}
	}
	return 0, false
}

func softPlay(total, up int) play {
	switch {
	case total >= 19:
		return stand
	case total == 18:
		switch {
		case up >= 3 && up <= 6:
			return doubleOrStand
		case up <= 8:
			return stand
		}
		return hit
	case total == 17:
		if up >= 3 && up <= 6 {
			return double
		}
	case total >= 15:
		if up >= 4 && up <= 6 {
			return double
		}
	default:
		if up == 5 || up == 6 {
			return double
		}
	}
	return hit
}

func hardPlay(total, up int) play {
	switch {
	case total >= 17:
		return stand
	case total >= 13:
		if up <= 6 {
			return stand
		}
	case total == 12:
		if up >= 4 && up <= 6 {
			return stand
		}
	case total == 11:
		if up <= 10 {
			return double
		}
	case total == 10:
		if up <= 9 {
			return double
		}
	case total == 9:
		if up >= 3 && up <= 6 {
			return double
		}
	}
	return hit
}
