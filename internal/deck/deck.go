package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an immutable ordered sequence of cards. Every operation returns a
// new Deck and leaves the receiver untouched, so a Deck can be shared
// between snapshots.
type Deck struct {
	cards []Card
}

// New creates a freshly ordered 52-card deck with every card face down
func New() Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return Deck{cards: cards}
}

// FromCards builds a deck whose top card is the first argument. It is
// intended for stacked decks in tests and replays.
func FromCards(cards ...Card) Deck {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.WithFaceUp(false)
	}
	return Deck{cards: out}
}

// Shuffle returns a uniformly random permutation of the deck using
// Fisher-Yates. The receiver is not modified.
func (d Deck) Shuffle(rng *rand.Rand) Deck {
	cards := d.Cards()
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// Draw removes the top card and returns it together with the remaining deck
func (d Deck) Draw() (Card, Deck, error) {
	if len(d.cards) == 0 {
		return Card{}, d, ErrEmptyDeck
	}
	return d.cards[0], Deck{cards: d.cards[1:len(d.cards):len(d.cards)]}, nil
}

// Len returns the number of cards left in the deck
func (d Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top first
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Without returns the full ordered deck minus any card that appears in
// exclude. It is used to rebuild a shoe while cards are still on the table.
func Without(exclude []Card) Deck {
	full := New()
	cards := make([]Card, 0, Size)
	for _, c := range full.cards {
		held := false
		for _, x := range exclude {
			if c.Same(x) {
				held = true
				break
			}
		}
		if !held {
			cards = append(cards, c)
		}
	}
	return Deck{cards: cards}
}
