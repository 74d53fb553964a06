package game

import (
	"github.com/lox/blackjack/internal/dealer"
	"github.com/lox/blackjack/internal/deck"
)

// Phase is a step of the round state machine
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseBetting
	PhaseDealing
	PhasePlaying
	PhaseDealerTurn
	PhaseSettlement
)

func (p Phase) String() string {
	if p < PhaseWaiting || p > PhaseSettlement {
		return "unknown"
	}
	return [...]string{"waiting", "betting", "dealing", "playing", "dealer-turn", "settlement"}[p]
}

// NoTurn is the CurrentTurn value when no participant owes an action
const NoTurn = -1

// State is an immutable snapshot of a game. The Game replaces it wholesale
// on every successful operation and hands out deep copies, so snapshots can
// be compared with reflect.DeepEqual.
//
// The remaining deck is unexported: callers see its size only. Dealer is
// not masked, so the hole card is visible here; View hides it until the
// dealer reveals.
type State struct {
	Phase        Phase
	Participants []Participant
	Dealer       dealer.Dealer
	CurrentTurn  int
	RoundNumber  int
	History      []RoundResult
	Reshuffles   int // times the shoe was rebuilt because it ran dry

	deck deck.Deck
}

// DeckRemaining returns the number of undealt cards
func (s State) DeckRemaining() int {
	return s.deck.Len()
}

// Participant looks up a participant (or split slot) by ID
func (s State) Participant(id string) (Participant, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Participant{}, false
	}
	return s.Participants[i], true
}

// Current returns the participant who owes an action, if any
func (s State) Current() (Participant, bool) {
	if s.CurrentTurn < 0 || s.CurrentTurn >= len(s.Participants) {
		return Participant{}, false
	}
	return s.Participants[s.CurrentTurn], true
}

// LastResult returns the most recent settled round
func (s State) LastResult() (RoundResult, bool) {
	if len(s.History) == 0 {
		return RoundResult{}, false
	}
	return s.History[len(s.History)-1], true
}

// Clone returns a deep copy. The deck is immutable and shared.
func (s State) Clone() State {
	out := s
	out.Participants = make([]Participant, len(s.Participants))
	for i, p := range s.Participants {
		out.Participants[i] = p.Clone()
	}
	out.Dealer = s.Dealer.Clone()
	if s.History != nil {
		out.History = make([]RoundResult, len(s.History))
		for i, r := range s.History {
			out.History[i] = r.Clone()
		}
	}
	return out
}

func (s *State) indexOf(id string) int {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

// committed returns the chips owner has riding on the table across the
// original seat and any split slot.
func (s *State) committed(owner string) Coin {
	var total Coin
	for _, p := range s.Participants {
		if p.Owner() == owner {
			total += p.Bet
		}
	}
	return total
}

// available is the part of owner's balance not yet wagered this round
func (s *State) available(owner string) Coin {
	i := s.indexOf(owner)
	if i < 0 {
		return 0
	}
	return s.Participants[i].Balance - s.committed(owner)
}

// nextActive returns the first Active participant after index from, or
// NoTurn. Pass NoTurn to scan from the start.
func (s *State) nextActive(from int) int {
	for i := from + 1; i < len(s.Participants); i++ {
		if s.Participants[i].Status == Active {
			return i
		}
	}
	return NoTurn
}

// tableCards lists every card currently held in a hand
func (s *State) tableCards() []deck.Card {
	var cards []deck.Card
	for _, p := range s.Participants {
		cards = append(cards, p.Hand.Cards...)
	}
	return append(cards, s.Dealer.Hand.Cards...)
}

// dropSplits removes split slots, leaving original seats in order
func (s *State) dropSplits() {
	kept := s.Participants[:0]
	for _, p := range s.Participants {
		if !p.IsSplit() {
			kept = append(kept, p)
		}
	}
	s.Participants = kept
}
