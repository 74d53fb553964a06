package game

// Human is the brain of a participant driven by a person. It never answers
// on its own; the hosting layer collects input and calls PlaceBets or
// HandlePlayerAction directly.
type Human struct{}

// Bet always defers to external input
func (Human) Bet(View, string) (Coin, bool) { return 0, false }

// Decide always defers to external input
func (Human) Decide(View) (Action, bool) { return 0, false }
