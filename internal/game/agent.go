package game

// Brain decides for a participant. It is handed the same masked View a
// renderer would see and must not mutate game state.
//
// A brain that returns ok=false is waiting for external input: the host
// stops driving the round and resumes once the input arrives through the
// Game operations. Automated strategies always answer synchronously.
type Brain interface {
	// Bet returns the wager for participant id during the betting phase
	Bet(view View, id string) (Coin, bool)
	// Decide returns the action for view.Acting during the playing phase
	Decide(view View) (Action, bool)
}
