package battle

import "errors"

var (
	ErrEmptyQueue       = errors.New("battle queue is empty")
	ErrInvalidAction    = errors.New("action not allowed")
	ErrNoOpponent       = errors.New("participant has no opponent")
	ErrMatchOver        = errors.New("match is over")
	ErrNoAction         = errors.New("no action chosen")
	ErrUnknownArchetype = errors.New("unknown archetype")
)
