// Package playstyle chooses actions for the participant at the front of a
// battle queue.
package playstyle

import (
	"fmt"
	"math/rand"
	"strings"

	"duel-service/pkg/battle"
)

// Policy selects the next action for the front of its queue. It returns
// battle.NoAction when no valid move can be found.
type Policy interface {
	SelectAction(input string) battle.Action
	IsManual() bool
}

// Kind names a policy in configuration and requests.
type Kind string

const (
	KindManual Kind = "manual"
	KindRandom Kind = "random"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindManual:
		return KindManual, nil
	case KindRandom, "":
		return KindRandom, nil
	default:
		return "", fmt.Errorf("unknown playstyle %q", s)
	}
}

// New builds the policy of the given kind for q. rng is only used by the
// random policy.
func New(kind Kind, q *battle.Queue, rng *rand.Rand) (Policy, error) {
	switch kind {
	case KindManual:
		return NewManual(q), nil
	case KindRandom:
		return NewRandom(q, rng), nil
	default:
		return nil, fmt.Errorf("unknown playstyle %q", kind)
	}
}

// Manual maps a key pressed by a player to an action.
type Manual struct {
	queue *battle.Queue
}

func NewManual(q *battle.Queue) *Manual {
	return &Manual{queue: q}
}

func (m *Manual) IsManual() bool        { return true }
func (m *Manual) Queue() *battle.Queue { return m.queue }

// SelectAction accepts "A" and "S" (any case, surrounding spaces ignored).
// Affordability is checked by the match, not here.
func (m *Manual) SelectAction(input string) battle.Action {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case battle.Basic.Token():
		return battle.Basic
	case battle.Special.Token():
		return battle.Special
	default:
		return battle.NoAction
	}
}

// Random picks uniformly between the legal actions of the front participant.
type Random struct {
	queue *battle.Queue
	rng   *rand.Rand
}

// NewRandom uses rng for every choice; a nil rng gets a time-seeded source.
func NewRandom(q *battle.Queue, rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Random{queue: q, rng: rng}
}

func (r *Random) IsManual() bool        { return false }
func (r *Random) Queue() *battle.Queue { return r.queue }

// SelectAction ignores input. One coin is flipped per call and used when both
// actions are affordable.
func (r *Random) SelectAction(string) battle.Action {
	choice := battle.Basic
	if r.rng.Intn(2) == 1 {
		choice = battle.Special
	}
	front, err := r.queue.Peek()
	if err != nil {
		return battle.NoAction
	}
	switch legal := front.LegalActions(); len(legal) {
	case 0:
		return battle.NoAction
	case 1:
		return legal[0]
	default:
		return choice
	}
}
