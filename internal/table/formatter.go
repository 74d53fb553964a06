package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

// FormattingOptions controls how events are rendered as text
type FormattingOptions struct {
	ShowBalances bool   // append balances to settlement lines
	ShowBotMoves bool   // include actions decided by bots
	Perspective  string // participant ID addressed as "You"
}

// EventFormatter turns events into single or multi-line plain text. It adds
// no colour; callers style the result.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders ev. It returns "" for events that have no text form, such
// as snapshots.
func (ef *EventFormatter) Format(ev Event) string {
	switch e := ev.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case BetsPlacedEvent:
		return ef.FormatBets(e)
	case ActionEvent:
		if e.Auto && !ef.opts.ShowBotMoves {
			return ""
		}
		return ef.FormatAction(e)
	case DealerPlayedEvent:
		return "Dealer: " + FormatHand(e.Hand)
	case RoundSettledEvent:
		return ef.FormatSettlement(e.Result)
	case ReshuffleEvent:
		return fmt.Sprintf("*** Shoe reshuffled (%d cards) ***", e.Remaining)
	}
	return ""
}

// FormatRoundStart formats the round header
func (ef *EventFormatter) FormatRoundStart(e RoundStartEvent) string {
	playing := 0
	for _, s := range e.Seats {
		if s.Status != game.SittingOut {
			playing++
		}
	}
	return fmt.Sprintf("=== Round %d ===\n%d of %d seats playing", e.Round, playing, len(e.Seats))
}

// FormatBets lists a batch of bets in ID order
func (ef *EventFormatter) FormatBets(e BetsPlacedEvent) string {
	ids := make([]string, 0, len(e.Bets))
	for id := range e.Bets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = fmt.Sprintf("%s: bets %s", ef.who(id, id), e.Bets[id])
	}
	return strings.Join(lines, "\n")
}

// FormatAction formats a participant action with the resulting hand
func (ef *EventFormatter) FormatAction(e ActionEvent) string {
	who := ef.who(e.ParticipantID, e.Name)
	var verb string
	switch e.Action {
	case game.Hit:
		verb = "hits"
	case game.Stand:
		verb = "stands"
	case game.Double:
		verb = "doubles down"
	case game.Split:
		verb = "splits"
	case game.Surrender:
		verb = "surrenders"
	default:
		verb = e.Action.String()
	}
	text := fmt.Sprintf("%s: %s, %s", who, verb, FormatHand(e.Hand))
	if e.Status == game.Busted {
		text += " BUST"
	}
	return text
}

// FormatSettlement formats the payout lines of a round
func (ef *EventFormatter) FormatSettlement(r game.RoundResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Round %d Complete ===\n", r.Round)
	switch {
	case r.DealerBlackjack:
		b.WriteString("Dealer has blackjack\n")
	case r.DealerBust:
		fmt.Fprintf(&b, "Dealer busts with %d\n", r.DealerValue)
	default:
		fmt.Fprintf(&b, "Dealer stands on %d\n", r.DealerValue)
	}
	for _, pr := range r.Results {
		line := fmt.Sprintf("%s: %s %s", ef.who(pr.ParticipantID, pr.Name), pr.Outcome, signed(pr.Delta))
		if ef.opts.ShowBalances {
			line += fmt.Sprintf(" (balance %s)", pr.BalanceAfter)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (ef *EventFormatter) who(id, name string) string {
	if ef.opts.Perspective != "" && id == ef.opts.Perspective {
		return "You"
	}
	if name == "" {
		return id
	}
	return name
}

// FormatHand renders a hand as "[A♠ 9♦] soft 20". Face-down cards print
// as "??" and are left out of the total.
func FormatHand(h hand.Hand) string {
	if h.Len() == 0 {
		return "[]"
	}
	cards := make([]string, len(h.Cards))
	hidden := false
	for i, c := range h.Cards {
		if c.FaceUp {
			cards[i] = c.String()
		} else {
			cards[i] = "??"
			hidden = true
		}
	}
	total := h.Describe()
	if hidden {
		total = h.FaceUp().Describe()
	}
	return "[" + strings.Join(cards, " ") + "] " + total
}

func signed(c game.Coin) string {
	if c > 0 {
		return "+" + c.String()
	}
	if c < 0 {
		return "-" + (-c).String()
	}
	return c.String()
}
