package dealer

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealt(cards string) Dealer {
	d := New()
	for i, c := range deck.MustParseCards(cards) {
		d = d.Deal(c, i == 1)
	}
	return d
}

func TestDealHoleCardFaceDown(t *testing.T) {
	t.Parallel()
	d := dealt("10sAh")

	require.Len(t, d.Hand.Cards, 2)
	assert.True(t, d.Hand.Cards[0].FaceUp)
	assert.False(t, d.Hand.Cards[1].FaceUp)
	assert.False(t, d.ShowingHoleCard)
	assert.True(t, d.Hand.Blackjack, "value counts the hole card")
	assert.Equal(t, 10, d.VisibleHand().Value)

	up, ok := d.UpCard()
	require.True(t, ok)
	assert.Equal(t, deck.Ten, up.Rank)
}

func TestRevealHoleCard(t *testing.T) {
	t.Parallel()
	d := dealt("10s6h")
	revealed := d.RevealHoleCard()

	assert.True(t, revealed.ShowingHoleCard)
	for _, c := range revealed.Hand.Cards {
		assert.True(t, c.FaceUp)
	}
	assert.False(t, d.Hand.Cards[1].FaceUp, "reveal must not touch the original")
	assert.Equal(t, 16, revealed.VisibleHand().Value)
}

func TestShouldHit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		rule  Rule
		want  bool
	}{
		{"10s6h", StandSoft17, true},
		{"10s7h", StandSoft17, false},
		{"As6h", StandSoft17, false},
		{"As6h", HitSoft17, true},
		{"10s7h", HitSoft17, false},
		{"As7h", HitSoft17, false},
		{"2s3h", StandSoft17, true},
		{"10s6h9d", StandSoft17, false},
	}
	for _, tt := range tests {
		h := hand.Evaluate(deck.MustParseCards(tt.cards))
		assert.Equal(t, tt.want, ShouldHit(h, tt.rule), "%s under %s", tt.cards, tt.rule)
	}
}

func drawFrom(cards string) (DrawFunc, *int) {
	d := deck.FromCards(deck.MustParseCards(cards)...)
	calls := 0
	return func() (deck.Card, error) {
		calls++
		c, rest, err := d.Draw()
		d = rest
		return c, err
	}, &calls
}

func TestPlayDrawsToSeventeen(t *testing.T) {
	t.Parallel()
	draw, calls := drawFrom("3c2d5s")
	d, err := Play(dealt("10s2h").RevealHoleCard(), draw, StandSoft17)
	require.NoError(t, err)

	assert.Equal(t, 17, d.Hand.Value)
	assert.Equal(t, 2, *calls)
	for _, c := range d.Hand.Cards {
		assert.True(t, c.FaceUp)
	}
}

func TestPlayStopsOnBust(t *testing.T) {
	t.Parallel()
	draw, _ := drawFrom("Kc5d")
	d, err := Play(dealt("10s6h").RevealHoleCard(), draw, StandSoft17)
	require.NoError(t, err)
	assert.True(t, d.Hand.Bust)
	assert.Equal(t, 3, d.Hand.Len())
}

func TestPlaySoft17Rules(t *testing.T) {
	t.Parallel()
	draw, calls := drawFrom("2c")
	d, err := Play(dealt("As6h").RevealHoleCard(), draw, StandSoft17)
	require.NoError(t, err)
	assert.Equal(t, 17, d.Hand.Value)
	assert.Zero(t, *calls, "stand on soft 17 by default")

	draw, calls = drawFrom("2c")
	d, err = Play(dealt("As6h").RevealHoleCard(), draw, HitSoft17)
	require.NoError(t, err)
	assert.Equal(t, 19, d.Hand.Value)
	assert.Equal(t, 1, *calls)
}

func TestPlayStopsWhenDeckExhausted(t *testing.T) {
	t.Parallel()
	draw, _ := drawFrom("2c")
	d, err := Play(dealt("10s2h").RevealHoleCard(), draw, StandSoft17)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hand.Value)
}

func TestPlayPropagatesOtherErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := Play(dealt("10s2h"), func() (deck.Card, error) { return deck.Card{}, boom }, StandSoft17)
	assert.ErrorIs(t, err, boom)
}
