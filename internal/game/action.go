package game

import (
	"fmt"
	"strings"
)

// Action is a decision a participant can take on their turn. None of the
// actions carry a payload: a double always doubles the current bet.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// Actions lists every action in menu order
var Actions = []Action{Hit, Stand, Double, Split, Surrender}

func (a Action) String() string {
	if a < Hit || a > Surrender {
		return "unknown"
	}
	return [...]string{"hit", "stand", "double", "split", "surrender"}[a]
}

// ParseAction accepts the action name or its first letter. "dd" is
// accepted for double as players commonly type it.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s", "stay":
		return Stand, nil
	case "double", "d", "dd":
		return Double, nil
	case "split", "p":
		return Split, nil
	case "surrender", "r", "sur":
		return Surrender, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
