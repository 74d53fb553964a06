package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// SeatView is what everyone at the table can see about one hand
type SeatView struct {
	ID        string
	Name      string
	Balance   Coin
	Bet       Coin
	Hand      hand.Hand
	Status    Status
	SplitFrom string
	Human     bool
}

// View is a snapshot with hidden information removed: the dealer's hole
// card is masked and the shoe is reduced to a count. Brains and renderers
// only ever see a View.
type View struct {
	Phase         Phase
	Round         int
	Seats         []SeatView
	Dealer        hand.Hand // face-up cards only
	DealerHidden  int       // face-down cards not included in Dealer
	DeckRemaining int
	CurrentTurn   int
	Acting        string // ID at CurrentTurn, empty when nobody owes an action
	Legal         []Action
	MinBet        Coin
	MaxBet        Coin
	Last          *RoundResult
}

// View returns the masked view of the current state
func (g *Game) View() View {
	return viewOf(&g.state, g.rules)
}

func viewOf(s *State, rules Rules) View {
	v := View{
		Phase:         s.Phase,
		Round:         s.RoundNumber,
		Seats:         make([]SeatView, len(s.Participants)),
		Dealer:        s.Dealer.VisibleHand(),
		DeckRemaining: s.deck.Len(),
		CurrentTurn:   s.CurrentTurn,
		Legal:         legalActions(s),
		MinBet:        rules.MinBet,
		MaxBet:        rules.MaxBet,
	}
	v.DealerHidden = s.Dealer.Hand.Len() - v.Dealer.Len()
	for i, p := range s.Participants {
		v.Seats[i] = SeatView{
			ID:        p.ID,
			Name:      p.Name,
			Balance:   p.Balance,
			Bet:       p.Bet,
			Hand:      p.Hand.Clone(),
			Status:    p.Status,
			SplitFrom: p.SplitFrom,
			Human:     p.IsHuman(),
		}
	}
	if cur, ok := s.Current(); ok {
		v.Acting = cur.ID
	}
	if last, ok := s.LastResult(); ok {
		r := last.Clone()
		v.Last = &r
	}
	return v
}

// Seat returns the seat with the given ID
func (v View) Seat(id string) (SeatView, bool) {
	for _, s := range v.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return SeatView{}, false
}

// ActingSeat returns the seat that owes an action
func (v View) ActingSeat() (SeatView, bool) {
	if v.Acting == "" {
		return SeatView{}, false
	}
	return v.Seat(v.Acting)
}

// DealerUpCard returns the dealer's first face-up card
func (v View) DealerUpCard() (deck.Card, bool) {
	if v.Dealer.Len() == 0 {
		return deck.Card{}, false
	}
	return v.Dealer.Cards[0], true
}

// CanAct reports whether action is currently legal for the acting seat
func (v View) CanAct(action Action) bool {
	for _, a := range v.Legal {
		if a == action {
			return true
		}
	}
	return false
}
