package game

import "errors"

// Error kinds returned by Game operations. Operations wrap them with
// context; match with errors.Is. A failed operation never changes state.
var (
	ErrInvalidBet         = errors.New("invalid bet")
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrUnknownParticipant = errors.New("unknown participant")
)
