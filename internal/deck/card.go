package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists every suit in deck construction order
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Ace is low in the ordering; its blackjack
// value is decided by the hand evaluator.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Points returns the base blackjack value of the rank: 2-10 as-is,
// faces count 10 and an ace counts 11 before any downgrade.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

// IsFace returns true for J, Q and K
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Card represents a playing card. Cards are values; flipping one yields a
// new Card.
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// NewCard creates a new face-down card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// WithFaceUp returns a copy of the card with the given orientation
func (c Card) WithFaceUp(up bool) Card {
	c.FaceUp = up
	return c
}

// Same reports whether two cards are the same suit and rank, ignoring
// orientation.
func (c Card) Same(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}
