package battle

import (
	"fmt"
	"strings"
)

// Archetype is the closed set of fighter classes.
type Archetype int

const (
	Rogue Archetype = iota + 1
	Mage
)

// Target says who gets a queue entry after a move resolves.
type Target int

const (
	TargetSelf Target = iota
	TargetOpponent
)

// Move holds the constants for one action of an archetype.
// Enqueue lists the entries appended to the queue, in order.
type Move struct {
	Cost    int
	Damage  int
	Enqueue []Target
}

// Stats is the fixed rules table of an archetype.
type Stats struct {
	Name    string
	Defense int
	Basic   Move
	Special Move
}

var archetypeStats = map[Archetype]Stats{
	Rogue: {
		Name:    "Rogue",
		Defense: 10,
		Basic:   Move{Cost: 3, Damage: 15, Enqueue: []Target{TargetSelf}},
		Special: Move{Cost: 10, Damage: 20, Enqueue: []Target{TargetSelf, TargetSelf}},
	},
	Mage: {
		Name:    "Mage",
		Defense: 8,
		Basic:   Move{Cost: 5, Damage: 20, Enqueue: []Target{TargetSelf}},
		Special: Move{Cost: 30, Damage: 40, Enqueue: []Target{TargetOpponent, TargetSelf}},
	},
}

// Archetypes returns every archetype in declaration order.
func Archetypes() []Archetype {
	return []Archetype{Rogue, Mage}
}

// ParseArchetype resolves a case-insensitive archetype name.
func ParseArchetype(name string) (Archetype, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, a := range Archetypes() {
		if strings.ToLower(archetypeStats[a].Name) == n {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownArchetype)
}

func (a Archetype) Valid() bool {
	_, ok := archetypeStats[a]
	return ok
}

func (a Archetype) String() string {
	if s, ok := archetypeStats[a]; ok {
		return s.Name
	}
	return fmt.Sprintf("Archetype(%d)", int(a))
}

// Stats returns the rules table. The zero Stats is returned for an invalid
// archetype.
func (a Archetype) Stats() Stats {
	return archetypeStats[a]
}

// Move returns the constants for action, or false when the action is not one
// the archetype can perform.
func (a Archetype) Move(action Action) (Move, bool) {
	s, ok := archetypeStats[a]
	if !ok {
		return Move{}, false
	}
	switch action {
	case Basic:
		return s.Basic, true
	case Special:
		return s.Special, true
	default:
		return Move{}, false
	}
}
