package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/dealer"
)

// Outcome classifies how a hand finished against the dealer
type Outcome int

const (
	OutcomeBlackjack Outcome = iota
	OutcomeWin
	OutcomePush
	OutcomeLose
	OutcomeBust
	OutcomeSurrender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeWin:
		return "win"
	case OutcomePush:
		return "push"
	case OutcomeLose:
		return "lose"
	case OutcomeBust:
		return "bust"
	case OutcomeSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ParticipantResult is one hand's line in a RoundResult. Split slots get
// their own line; BalanceAfter is always the owner's balance.
type ParticipantResult struct {
	ParticipantID string
	Name          string
	Outcome       Outcome
	Bet           Coin
	Delta         Coin
	HandValue     int
	BalanceAfter  Coin
}

// RoundResult records a settled round for history
type RoundResult struct {
	Round           int
	DealerValue     int
	DealerBust      bool
	DealerBlackjack bool
	Results         []ParticipantResult
	// HouseNet is what the house won this round: the negated sum of deltas
	HouseNet Coin
}

// Result returns the line for participant id
func (r RoundResult) Result(id string) (ParticipantResult, bool) {
	for _, pr := range r.Results {
		if pr.ParticipantID == id {
			return pr, true
		}
	}
	return ParticipantResult{}, false
}

// Clone returns a deep copy
func (r RoundResult) Clone() RoundResult {
	if r.Results != nil {
		r.Results = append([]ParticipantResult(nil), r.Results...)
	}
	return r
}

// Settle decides the outcome and signed balance delta of one hand against
// the dealer's final hand. It is pure and does not touch balances.
func Settle(p Participant, d dealer.Dealer) (Outcome, Coin) {
	bet := p.Bet
	dh := d.Hand
	// Only a two-card 21 from the deal is a natural. Both hands of a split
	// are marked as having acted.
	natural := p.Hand.Blackjack && !p.Acted && !p.IsSplit()

	switch {
	case p.Status == Surrendered:
		return OutcomeSurrender, -bet / 2
	case p.Hand.Bust:
		return OutcomeBust, -bet
	case natural && dh.Blackjack:
		return OutcomePush, 0
	case natural:
		return OutcomeBlackjack, bet * 3 / 2
	case dh.Bust:
		return OutcomeWin, bet
	case p.Hand.Value > dh.Value:
		return OutcomeWin, bet
	case p.Hand.Value == dh.Value:
		return OutcomePush, 0
	default:
		return OutcomeLose, -bet
	}
}

// settleRound applies every hand's delta to its owner's balance and builds
// the RoundResult. Participants without a bet are skipped.
func settleRound(s *State) (RoundResult, error) {
	result := RoundResult{
		Round:           s.RoundNumber,
		DealerValue:     s.Dealer.Hand.Value,
		DealerBust:      s.Dealer.Hand.Bust,
		DealerBlackjack: s.Dealer.Hand.Blackjack,
	}

	var total Coin
	for _, p := range s.Participants {
		if !p.HasBet() {
			continue
		}
		outcome, delta := Settle(p, s.Dealer)
		owner := s.indexOf(p.Owner())
		if owner < 0 {
			return RoundResult{}, fmt.Errorf("%w: split slot %s has no owner", ErrUnknownParticipant, p.ID)
		}
		s.Participants[owner].Balance += delta
		total += delta
		result.Results = append(result.Results, ParticipantResult{
			ParticipantID: p.ID,
			Name:          p.Name,
			Outcome:       outcome,
			Bet:           p.Bet,
			Delta:         delta,
			HandValue:     p.Hand.Value,
		})
	}

	for i := range result.Results {
		r := &result.Results[i]
		p, _ := s.Participant(r.ParticipantID)
		owner, _ := s.Participant(p.Owner())
		if owner.Balance < 0 {
			return RoundResult{}, fmt.Errorf("settlement left %s with negative balance %s", owner.ID, owner.Balance)
		}
		r.BalanceAfter = owner.Balance
	}
	result.HouseNet = -total
	return result, nil
}
