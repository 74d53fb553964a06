package game

import (
	"strconv"

	"github.com/lox/blackjack/internal/hand"
)

// Coin is an amount of chips. Balances never go negative after a valid
// operation; halving an odd amount truncates.
type Coin int64

func (c Coin) String() string {
	return "$" + strconv.FormatInt(int64(c), 10)
}

// Status is a participant's standing within the current round
type Status int

const (
	Active Status = iota
	Standing
	Busted
	Surrendered
	// SittingOut marks a participant with no chips at round start. They
	// neither bet nor receive cards.
	SittingOut
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Standing:
		return "standing"
	case Busted:
		return "busted"
	case Surrendered:
		return "surrendered"
	case SittingOut:
		return "sitting out"
	default:
		return "unknown"
	}
}

// SplitSuffix is appended to a participant ID to name the slot created by a
// split.
const SplitSuffix = "/split"

// Participant is one seat's state within a game. A split creates a second
// Participant whose SplitFrom names the original; its own Balance stays
// zero and its result is booked against the original's balance.
type Participant struct {
	ID        string
	Name      string
	Balance   Coin
	Bet       Coin // zero means no bet this round
	Hand      hand.Hand
	Brain     Brain
	Status    Status
	Doubled   bool
	Acted     bool // has taken at least one action this round
	SplitFrom string
}

// NewParticipant creates a participant seated with balance
func NewParticipant(id, name string, balance Coin, brain Brain) Participant {
	if brain == nil {
		brain = Human{}
	}
	return Participant{
		ID:      id,
		Name:    name,
		Balance: balance,
		Brain:   brain,
		Hand:    hand.Evaluate(nil),
		Status:  Active,
	}
}

// HasBet reports whether a wager has been placed this round
func (p Participant) HasBet() bool {
	return p.Bet > 0
}

// IsSplit reports whether this slot was created by splitting another hand
func (p Participant) IsSplit() bool {
	return p.SplitFrom != ""
}

// Owner returns the ID whose balance this slot settles against
func (p Participant) Owner() string {
	if p.IsSplit() {
		return p.SplitFrom
	}
	return p.ID
}

// IsHuman reports whether the participant waits for external input
func (p Participant) IsHuman() bool {
	_, ok := p.Brain.(Human)
	return ok || p.Brain == nil
}

// Clone returns a deep copy
func (p Participant) Clone() Participant {
	p.Hand = p.Hand.Clone()
	return p
}
