package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func TestView(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, seats(1000, 500), stacked("10h 9h 10c 6h 8h Ac"), WithBetLimits(10, 200))
	betAll(t, g, map[string]Coin{"alice": 100, "bob": 50})

	v := g.View()
	assert.Equal(t, PhasePlaying, v.Phase)
	assert.Equal(t, 1, v.Round)
	assert.Equal(t, "alice", v.Acting)
	assert.Equal(t, Coin(10), v.MinBet)
	assert.Equal(t, Coin(200), v.MaxBet)
	assert.Equal(t, deck.Size-6, v.DeckRemaining)
	assert.Nil(t, v.Last)

	// the hole card is an ace; the view must not reveal it
	assert.Equal(t, 1, v.Dealer.Len())
	assert.Equal(t, 1, v.DealerHidden)
	assert.Equal(t, 10, v.Dealer.Value)
	up, ok := v.DealerUpCard()
	require.True(t, ok)
	assert.Equal(t, deck.Ten, up.Rank)

	seat, ok := v.ActingSeat()
	require.True(t, ok)
	assert.Equal(t, 16, seat.Hand.Value)
	assert.True(t, seat.Human)
	assert.True(t, v.CanAct(Surrender))
	assert.False(t, v.CanAct(Split))

	_, ok = v.Seat("mallory")
	assert.False(t, ok)

	_, err := g.HandlePlayerAction("alice", Stand)
	require.NoError(t, err)
	_, err = g.HandlePlayerAction("bob", Stand)
	require.NoError(t, err)

	v = g.View()
	assert.Equal(t, PhaseSettlement, v.Phase)
	assert.Equal(t, 0, v.DealerHidden)
	assert.Equal(t, 21, v.Dealer.Value)
	assert.Empty(t, v.Acting)
	assert.Empty(t, v.Legal)

	_, err = g.SettleRound()
	require.NoError(t, err)
	v = g.View()
	require.NotNil(t, v.Last)
	assert.Equal(t, 1, v.Last.Round)
}

func TestStateKeepsHoleCardThatViewHides(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, seats(1000), stacked("10h 10c 6h Ac"))
	betAll(t, g, map[string]Coin{"alice": 100})

	// the host snapshot carries the face-down card and counts it
	s := g.State()
	require.Equal(t, 2, s.Dealer.Hand.Len())
	assert.False(t, s.Dealer.Hand.Cards[1].FaceUp)
	assert.True(t, s.Dealer.Hand.Cards[1].IsAce())
	assert.False(t, s.Dealer.ShowingHoleCard)
	assert.True(t, s.Dealer.Hand.Blackjack)

	v := g.View()
	assert.Equal(t, 1, v.DealerHidden)
	require.Equal(t, 1, v.Dealer.Len())
	for _, c := range v.Dealer.Cards {
		assert.True(t, c.FaceUp)
		assert.False(t, c.IsAce())
	}
	assert.Equal(t, 10, v.Dealer.Value)
	assert.False(t, v.Dealer.Blackjack)

	_, err := g.HandlePlayerAction("alice", Stand)
	require.NoError(t, err)

	s = g.State()
	assert.True(t, s.Dealer.ShowingHoleCard)
	v = g.View()
	assert.Equal(t, 0, v.DealerHidden)
	assert.Equal(t, s.Dealer.Hand.Len(), v.Dealer.Len())
	assert.Equal(t, 21, v.Dealer.Value)
}
