// Package hand evaluates blackjack hands.
//
// A Hand is derived entirely from its cards: Evaluate is a pure function and
// every addition goes through Add, which re-evaluates from scratch. Nothing
// else may change Value, Soft, Bust or Blackjack.
package hand

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Bust threshold and the natural total
const Max = 21

// Hand is an ordered set of cards plus its derived value
type Hand struct {
	Cards     []deck.Card
	Value     int
	Soft      bool // an ace still counts 11 in Value
	Bust      bool
	Blackjack bool
}

// Evaluate computes the hand value for cards. Aces start at 11 and are
// downgraded to 1 one at a time while the total exceeds 21.
func Evaluate(cards []deck.Card) Hand {
	cs := make([]deck.Card, len(cards))
	copy(cs, cards)

	total, softAces := 0, 0
	for _, c := range cs {
		total += c.Rank.Points()
		if c.IsAce() {
			softAces++
		}
	}
	for total > Max && softAces > 0 {
		total -= 10
		softAces--
	}

	bust := total > Max
	blackjack := !bust && len(cs) == 2 && total == Max
	return Hand{
		Cards: cs,
		Value: total,
		// A natural is reported as blackjack rather than soft 21.
		Soft:      softAces > 0 && !blackjack,
		Bust:      bust,
		Blackjack: blackjack,
	}
}

// Add returns a new hand with card appended
func (h Hand) Add(card deck.Card) Hand {
	cards := make([]deck.Card, 0, len(h.Cards)+1)
	cards = append(cards, h.Cards...)
	return Evaluate(append(cards, card))
}

// SoftValue returns the soft total when an ace is still counted as 11
func (h Hand) SoftValue() (int, bool) {
	if !h.Soft {
		return 0, false
	}
	return h.Value, true
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.Cards)
}

// IsPair reports whether the hand is exactly two cards of equal rank
func (h Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// Clone returns a deep copy of the hand
func (h Hand) Clone() Hand {
	if h.Cards != nil {
		cs := make([]deck.Card, len(h.Cards))
		copy(cs, h.Cards)
		h.Cards = cs
	}
	return h
}

// FaceUp returns a hand evaluated over the face-up cards only
func (h Hand) FaceUp() Hand {
	visible := make([]deck.Card, 0, len(h.Cards))
	for _, c := range h.Cards {
		if c.FaceUp {
			visible = append(visible, c)
		}
	}
	return Evaluate(visible)
}

// String renders the cards followed by the value, e.g. "A♠ 9♦ (soft 20)"
func (h Hand) String() string {
	if len(h.Cards) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ") + " (" + h.Describe() + ")"
}

// Describe returns a short label for the total such as "soft 17",
// "blackjack" or "bust 24".
func (h Hand) Describe() string {
	switch {
	case h.Blackjack:
		return "blackjack"
	case h.Bust:
		return "bust " + strconv.Itoa(h.Value)
	case h.Soft:
		return "soft " + strconv.Itoa(h.Value)
	default:
		return strconv.Itoa(h.Value)
	}
}
