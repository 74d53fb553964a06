// Package dealer implements the house side of a blackjack table: hole-card
// handling and the fixed drawing policy.
package dealer

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// ID is the identifier of the single dealer at a table
const ID = "dealer"

// Rule selects how the dealer plays a soft 17
type Rule int

const (
	// StandSoft17 hits only while the total is below 17 (the default)
	StandSoft17 Rule = iota
	// HitSoft17 also hits a soft 17
	HitSoft17
)

// String returns the conventional table abbreviation for the rule
func (r Rule) String() string {
	switch r {
	case StandSoft17:
		return "S17"
	case HitSoft17:
		return "H17"
	default:
		return "unknown"
	}
}

// Dealer is the house hand. It is a value type; every method returns an
// updated copy.
type Dealer struct {
	ID              string
	Hand            hand.Hand
	ShowingHoleCard bool
}

// New returns a dealer with an empty hand
func New() Dealer {
	return Dealer{ID: ID, Hand: hand.Evaluate(nil)}
}

// Deal appends card to the dealer's hand. The hole card is dealt face down.
func (d Dealer) Deal(card deck.Card, isHoleCard bool) Dealer {
	d.Hand = d.Hand.Add(card.WithFaceUp(!isHoleCard))
	return d
}

// RevealHoleCard turns every card face up
func (d Dealer) RevealHoleCard() Dealer {
	cards := make([]deck.Card, len(d.Hand.Cards))
	for i, c := range d.Hand.Cards {
		cards[i] = c.WithFaceUp(true)
	}
	d.Hand = hand.Evaluate(cards)
	d.ShowingHoleCard = true
	return d
}

// UpCard returns the first face-up card, if any
func (d Dealer) UpCard() (deck.Card, bool) {
	for _, c := range d.Hand.Cards {
		if c.FaceUp {
			return c, true
		}
	}
	return deck.Card{}, false
}

// VisibleHand evaluates only what the players can see
func (d Dealer) VisibleHand() hand.Hand {
	return d.Hand.FaceUp()
}

// Clone returns a deep copy
func (d Dealer) Clone() Dealer {
	d.Hand = d.Hand.Clone()
	return d
}

// ShouldHit reports whether the dealer must draw to h under rule
func ShouldHit(h hand.Hand, rule Rule) bool {
	if h.Value < 17 {
		return true
	}
	return rule == HitSoft17 && h.Value == 17 && h.Soft
}

// DrawFunc supplies the next card for the dealer
type DrawFunc func() (deck.Card, error)

// Play runs the dealer's drawing loop until the policy says stand, the hand
// busts or the cards run out. Running out is not an error: the dealer simply
// stands on what it has. Any other draw failure is returned.
func Play(d Dealer, draw DrawFunc, rule Rule) (Dealer, error) {
	for ShouldHit(d.Hand, rule) {
		card, err := draw()
		if errors.Is(err, deck.ErrEmptyDeck) {
			return d, nil
		}
		if err != nil {
			return d, fmt.Errorf("dealer draw: %w", err)
		}
		d = d.Deal(card, false)
	}
	return d, nil
}
