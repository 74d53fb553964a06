package table

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

func TestFormatHand(t *testing.T) {
	cards := deck.MustParseCards("Ks7h")
	up := []deck.Card{cards[0].WithFaceUp(true), cards[1]}

	tests := []struct {
		name string
		hand hand.Hand
		want string
	}{
		{"empty", hand.Evaluate(nil), "[]"},
		{"hole card hidden", hand.Evaluate(up), "[K♠ ??] 10"},
		{"soft", hand.Evaluate([]deck.Card{deck.NewCard(deck.Spades, deck.Ace).WithFaceUp(true), deck.NewCard(deck.Hearts, deck.Six).WithFaceUp(true)}), "[A♠ 6♥] soft 17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHand(tt.hand); got != tt.want {
				t.Errorf("FormatHand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSettlement(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{ShowBalances: true, Perspective: "alice"})
	got := ef.FormatSettlement(game.RoundResult{
		Round:       3,
		DealerValue: 22,
		DealerBust:  true,
		Results: []game.ParticipantResult{
			{ParticipantID: "alice", Name: "Alice", Outcome: game.OutcomeWin, Delta: 50, BalanceAfter: 1050},
			{ParticipantID: "bob", Name: "Bob", Outcome: game.OutcomeSurrender, Delta: -5, BalanceAfter: 95},
		},
	})
	want := "=== Round 3 Complete ===\n" +
		"Dealer busts with 22\n" +
		"You: win +$50 (balance $1050)\n" +
		"Bob: surrender -$5 (balance $95)"
	if got != want {
		t.Errorf("FormatSettlement() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatEvents(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})
	bust := hand.Evaluate(deck.MustParseCards("KhQd5s"))
	for i := range bust.Cards {
		bust.Cards[i] = bust.Cards[i].WithFaceUp(true)
	}

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"action", ActionEvent{ParticipantID: "bob", Name: "Bob", Action: game.Hit, Hand: bust, Status: game.Busted}, "Bob: hits, [K♥ Q♦ 5♠] bust 25 BUST"},
		{"bot action hidden", ActionEvent{ParticipantID: "bob", Action: game.Stand, Auto: true}, ""},
		{"bets sorted", BetsPlacedEvent{Bets: map[string]game.Coin{"b": 20, "a": 10}}, "a: bets $10\nb: bets $20"},
		{"reshuffle", ReshuffleEvent{Remaining: 47}, "*** Shoe reshuffled (47 cards) ***"},
		{"snapshot", SnapshotEvent{}, ""},
		{"round start", RoundStartEvent{Round: 2, Seats: []game.SeatView{{Status: game.Active}, {Status: game.SittingOut}}}, "=== Round 2 ===\n1 of 2 seats playing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ef.Format(tt.ev); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
