package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/hand"
)

// HandlePlayerAction applies action for participant id, who must be the
// participant at CurrentTurn.
func (g *Game) HandlePlayerAction(id string, action Action) (State, error) {
	return g.apply(action.String(), func(s *State) error {
		if s.Phase != PhasePlaying {
			return fmt.Errorf("%w: %w: actions are not accepted during %s", ErrInvalidAction, ErrInvalidTransition, s.Phase)
		}
		if s.indexOf(id) < 0 {
			return fmt.Errorf("%w: %w: %q", ErrInvalidAction, ErrUnknownParticipant, id)
		}
		cur, ok := s.Current()
		if !ok || cur.ID != id {
			return fmt.Errorf("%w: it is not %s's turn", ErrInvalidAction, id)
		}
		if err := checkLegal(s, s.CurrentTurn, action); err != nil {
			return err
		}

		switch action {
		case Hit:
			return g.hit(s)
		case Stand:
			s.Participants[s.CurrentTurn].Status = Standing
			s.Participants[s.CurrentTurn].Acted = true
			return g.advanceTurn(s)
		case Double:
			return g.double(s)
		case Split:
			return g.split(s)
		case Surrender:
			s.Participants[s.CurrentTurn].Status = Surrendered
			s.Participants[s.CurrentTurn].Acted = true
			return g.advanceTurn(s)
		}
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAction, action)
	})
}

// LegalActions lists what the participant at CurrentTurn may do, in menu
// order. It is empty outside the playing phase.
func (g *Game) LegalActions() []Action {
	return legalActions(&g.state)
}

func legalActions(s *State) []Action {
	if s.Phase != PhasePlaying || s.CurrentTurn == NoTurn {
		return nil
	}
	var out []Action
	for _, a := range Actions {
		if checkLegal(s, s.CurrentTurn, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

// checkLegal validates action for the hand at index i against card count
// and the owner's uncommitted balance.
func checkLegal(s *State, i int, action Action) error {
	p := s.Participants[i]
	switch action {
	case Hit, Stand:
		return nil
	case Double:
		if p.Hand.Len() != 2 {
			return fmt.Errorf("%w: double needs exactly two cards, %s has %d", ErrInvalidAction, p.ID, p.Hand.Len())
		}
		if s.available(p.Owner()) < p.Bet {
			return fmt.Errorf("%w: %s cannot cover a double of %s", ErrInvalidAction, p.ID, p.Bet)
		}
	case Split:
		if !p.Hand.IsPair() {
			return fmt.Errorf("%w: split needs a pair", ErrInvalidAction)
		}
		if p.IsSplit() || s.indexOf(p.ID+SplitSuffix) >= 0 {
			return fmt.Errorf("%w: %s has already split this round", ErrInvalidAction, p.Owner())
		}
		if s.available(p.Owner()) < p.Bet {
			return fmt.Errorf("%w: %s cannot cover a split of %s", ErrInvalidAction, p.ID, p.Bet)
		}
	case Surrender:
		if p.Acted || p.IsSplit() || p.Hand.Len() != 2 {
			return fmt.Errorf("%w: surrender is only allowed as the first action", ErrInvalidAction)
		}
	default:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAction, action)
	}
	return nil
}

func (g *Game) hit(s *State) error {
	card, err := g.draw(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	p := &s.Participants[s.CurrentTurn]
	p.Hand = p.Hand.Add(card.WithFaceUp(true))
	p.Acted = true
	if p.Hand.Bust {
		p.Status = Busted
		return g.advanceTurn(s)
	}
	return nil
}

func (g *Game) double(s *State) error {
	card, err := g.draw(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	p := &s.Participants[s.CurrentTurn]
	p.Bet *= 2
	p.Doubled = true
	p.Acted = true
	p.Hand = p.Hand.Add(card.WithFaceUp(true))
	if p.Hand.Bust {
		p.Status = Busted
	} else {
		p.Status = Standing
	}
	return g.advanceTurn(s)
}

// split moves the second card of the pair into a new slot placed directly
// after the original, then gives each hand a second card. The original
// keeps the turn.
func (g *Game) split(s *State) error {
	i := s.CurrentTurn
	orig := s.Participants[i]

	slot := Participant{
		ID:        orig.ID + SplitSuffix,
		Name:      orig.Name + " (split)",
		Bet:       orig.Bet,
		Hand:      hand.Evaluate(orig.Hand.Cards[1:]),
		Brain:     orig.Brain,
		Status:    Active,
		Acted:     true,
		SplitFrom: orig.ID,
	}
	orig.Hand = hand.Evaluate(orig.Hand.Cards[:1])
	orig.Acted = true

	seats := make([]Participant, 0, len(s.Participants)+1)
	seats = append(seats, s.Participants[:i]...)
	seats = append(seats, orig, slot)
	seats = append(seats, s.Participants[i+1:]...)
	s.Participants = seats

	for _, j := range []int{i, i + 1} {
		card, err := g.draw(s)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		s.Participants[j].Hand = s.Participants[j].Hand.Add(card.WithFaceUp(true))
	}
	return nil
}

// advanceTurn moves CurrentTurn to the next active participant in seat
// order. When nobody is left the dealer plays.
func (g *Game) advanceTurn(s *State) error {
	s.CurrentTurn = s.nextActive(s.CurrentTurn)
	if s.CurrentTurn == NoTurn {
		return g.enterDealerTurn(s)
	}
	return nil
}
