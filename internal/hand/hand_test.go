package hand

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		cards     string
		value     int
		soft      bool
		bust      bool
		blackjack bool
	}{
		{name: "ace king is blackjack", cards: "AsKh", value: 21, blackjack: true},
		{name: "two aces and nine downgrade one ace", cards: "AsAh9d", value: 21, soft: true},
		{name: "ten nine five busts", cards: "10s9h5d", value: 24, bust: true},
		{name: "hard seventeen", cards: "10s7h", value: 17},
		{name: "soft seventeen", cards: "As6h", value: 17, soft: true},
		{name: "three card twenty one is not blackjack", cards: "7s7h7d", value: 21},
		{name: "soft hand turns hard", cards: "As6h10d", value: 17},
		{name: "four aces", cards: "AsAhAdAc", value: 14, soft: true},
		{name: "pair of aces", cards: "AsAh", value: 12, soft: true},
		{name: "faces count ten", cards: "JsQh", value: 20},
		{name: "empty hand", cards: "", value: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Evaluate(deck.MustParseCards(tt.cards))
			if h.Value != tt.value {
				t.Errorf("Value = %d, want %d", h.Value, tt.value)
			}
			if h.Soft != tt.soft {
				t.Errorf("Soft = %v, want %v", h.Soft, tt.soft)
			}
			if h.Bust != tt.bust {
				t.Errorf("Bust = %v, want %v", h.Bust, tt.bust)
			}
			if h.Blackjack != tt.blackjack {
				t.Errorf("Blackjack = %v, want %v", h.Blackjack, tt.blackjack)
			}
			if h.Bust && h.Blackjack {
				t.Error("bust and blackjack must be exclusive")
			}
		})
	}
}

func TestSoftValue(t *testing.T) {
	t.Parallel()
	if v, ok := Evaluate(deck.MustParseCards("AsAh9d")).SoftValue(); !ok || v != 21 {
		t.Errorf("SoftValue() = %d, %v; want 21, true", v, ok)
	}
	if _, ok := Evaluate(deck.MustParseCards("AsKh")).SoftValue(); ok {
		t.Error("blackjack should not report a soft value")
	}
	if _, ok := Evaluate(deck.MustParseCards("10s9h")).SoftValue(); ok {
		t.Error("hard hand should not report a soft value")
	}
}

func TestAddReevaluates(t *testing.T) {
	t.Parallel()
	h := Evaluate(deck.MustParseCards("As5h"))
	if !h.Soft || h.Value != 16 {
		t.Fatalf("start = %s", h)
	}
	next := h.Add(deck.NewCard(deck.Clubs, deck.King))
	if next.Soft || next.Value != 16 || next.Len() != 3 {
		t.Errorf("after king = %s", next)
	}
	if h.Len() != 2 {
		t.Error("Add must not modify the receiver")
	}
}

func TestEvaluateCopiesCards(t *testing.T) {
	t.Parallel()
	cards := deck.MustParseCards("2s3h")
	h := Evaluate(cards)
	cards[0] = deck.NewCard(deck.Clubs, deck.Ace)
	if h.Value != 5 {
		t.Errorf("hand changed with caller slice: %d", h.Value)
	}
}

func TestIsPair(t *testing.T) {
	t.Parallel()
	if !Evaluate(deck.MustParseCards("8s8h")).IsPair() {
		t.Error("8-8 is a pair")
	}
	if Evaluate(deck.MustParseCards("KsQh")).IsPair() {
		t.Error("K-Q differ in rank")
	}
	if Evaluate(deck.MustParseCards("8s8h8d")).IsPair() {
		t.Error("three cards are never a pair")
	}
}

func TestFaceUp(t *testing.T) {
	t.Parallel()
	cards := deck.MustParseCards("10sAh")
	cards[0] = cards[0].WithFaceUp(true)
	h := Evaluate(cards)
	if !h.Blackjack {
		t.Fatal("full hand is blackjack")
	}
	if v := h.FaceUp(); v.Value != 10 || v.Len() != 1 {
		t.Errorf("visible = %s", v)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"AsKh":    "blackjack",
		"10s9h5d": "bust 24",
		"As6h":    "soft 17",
		"10s7h":   "17",
	}
	for cards, want := range cases {
		if got := Evaluate(deck.MustParseCards(cards)).Describe(); got != want {
			t.Errorf("%s: Describe() = %q, want %q", cards, got, want)
		}
	}
}
