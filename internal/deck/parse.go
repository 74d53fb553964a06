package deck

import (
	"fmt"
	"strings"
)

// ParseCard parses a card such as "Ah", "Td", "10c" or "ks".
// Parsed cards are face down.
func ParseCard(s string) (Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a run of concatenated cards such as "AhKs10d".
// Whitespace between cards is ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	cards := []Card{}
	for len(s) > 0 {
		n := 2
		if strings.HasPrefix(s, "10") {
			n = 3
		}
		if len(s) < n {
			return nil, fmt.Errorf("truncated card %q", s)
		}
		c, err := ParseCard(s[:n])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
		s = s[n:]
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "a":
		return Ace, nil
	case "t", "10":
		return Ten, nil
	case "j":
		return Jack, nil
	case "q":
		return Queen, nil
	case "k":
		return King, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'h':
		return Hearts, nil
	case 'd':
		return Diamonds, nil
	case 's':
		return Spades, nil
	case 'c':
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit %q", string(b))
}
