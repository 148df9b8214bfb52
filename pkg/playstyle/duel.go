package playstyle

import (
	"fmt"
	"math/rand"

	"duel-service/pkg/battle"
)

// Entrant is everything needed to seat one side of a duel.
type Entrant struct {
	Name      string
	Archetype battle.Archetype
	Kind      Kind
	// Input feeds a manual entrant; ignored otherwise.
	Input   Input
	Options []battle.ParticipantOption
}

// NewDuel builds both participants, the match and a driver ready to Run.
// Random entrants draw from rng.
func NewDuel(one, two Entrant, rng *rand.Rand, opts ...battle.Option) (*Driver, error) {
	a, err := battle.NewParticipant(one.Name, one.Archetype, one.Options...)
	if err != nil {
		return nil, fmt.Errorf("seat 1: %w", err)
	}
	b, err := battle.NewParticipant(two.Name, two.Archetype, two.Options...)
	if err != nil {
		return nil, fmt.Errorf("seat 2: %w", err)
	}
	m, err := battle.NewMatch(a, b, opts...)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	var controllers [2]Controller
	for i, e := range []Entrant{one, two} {
		pol, err := New(e.Kind, m.Queue(), rng)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i+1, err)
		}
		controllers[i] = Controller{Policy: pol, Input: e.Input}
	}
	return NewDriver(m, controllers[0], controllers[1])
}
