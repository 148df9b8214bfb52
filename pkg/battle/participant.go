package battle

import (
	"fmt"
	"strings"
)

const (
	MaxHealth         = 100
	MaxResourcePoints = 100
)

// Seat is a participant's handle inside its match. The opponent always sits
// in the other seat.
type Seat int

const (
	SeatOne Seat = 0
	SeatTwo Seat = 1
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	return 1 - s
}

// Participant is one of the two fighters of a match. It only becomes able to
// act once NewMatch has paired it with an opponent.
type Participant struct {
	name      string
	archetype Archetype
	health    int
	rp        int

	seat  Seat
	match *Match
}

// ParticipantOption adjusts a participant before it joins a match.
type ParticipantOption func(*Participant)

// WithHealth starts the participant at hp instead of MaxHealth.
func WithHealth(hp int) ParticipantOption {
	return func(p *Participant) { p.health = hp }
}

// WithResourcePoints starts the participant at rp instead of
// MaxResourcePoints.
func WithResourcePoints(rp int) ParticipantOption {
	return func(p *Participant) { p.rp = rp }
}

// NewParticipant creates a fighter, at full health and resource points unless
// options say otherwise.
func NewParticipant(name string, archetype Archetype, opts ...ParticipantOption) (*Participant, error) {
	if !archetype.Valid() {
		return nil, fmt.Errorf("participant %q: %w", name, ErrUnknownArchetype)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("participant name is empty")
	}
	p := &Participant{
		name:      name,
		archetype: archetype,
		health:    MaxHealth,
		rp:        MaxResourcePoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.health < 0 || p.health > MaxHealth {
		return nil, fmt.Errorf("participant %q: health %d outside [0, %d]", name, p.health, MaxHealth)
	}
	if p.rp < 0 || p.rp > MaxResourcePoints {
		return nil, fmt.Errorf("participant %q: resource points %d outside [0, %d]", name, p.rp, MaxResourcePoints)
	}
	return p, nil
}

func (p *Participant) Name() string         { return p.name }
func (p *Participant) Archetype() Archetype { return p.archetype }
func (p *Participant) Health() int          { return p.health }
func (p *Participant) ResourcePoints() int  { return p.rp }
func (p *Participant) Defense() int         { return p.archetype.Stats().Defense }
func (p *Participant) Seat() Seat           { return p.seat }

// Opponent returns the other participant of the match, or nil when the
// participant has not been paired yet.
func (p *Participant) Opponent() *Participant {
	if p.match == nil {
		return nil
	}
	return p.match.participants[p.seat.Other()]
}

// IsActionLegal reports whether the participant has the resource points for
// action. NoAction and unknown values are never legal.
func (p *Participant) IsActionLegal(action Action) bool {
	mv, ok := p.archetype.Move(action)
	if !ok {
		return false
	}
	return p.rp >= mv.Cost
}

// LegalActions lists the affordable actions, basic before special.
func (p *Participant) LegalActions() []Action {
	actions := make([]Action, 0, 2)
	for _, a := range []Action{Basic, Special} {
		if p.IsActionLegal(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// PerformAction spends the action's cost, damages the opponent and appends
// the move's queue entries to the match queue. Nothing changes when it
// returns an error.
func (p *Participant) PerformAction(action Action) error {
	_, err := p.perform(action)
	return err
}

func (p *Participant) perform(action Action) (int, error) {
	opp := p.Opponent()
	if opp == nil {
		return 0, fmt.Errorf("%s: %w", p.name, ErrNoOpponent)
	}
	mv, ok := p.archetype.Move(action)
	if !ok {
		return 0, fmt.Errorf("%s cannot perform %s: %w", p.name, action, ErrInvalidAction)
	}
	if p.rp < mv.Cost {
		return 0, fmt.Errorf("%s needs %d resource points for %s, has %d: %w",
			p.name, mv.Cost, action, p.rp, ErrInvalidAction)
	}

	p.rp -= mv.Cost

	dmg := mv.Damage - opp.Defense()
	if dmg < 0 {
		dmg = 0
	}
	opp.health -= dmg
	if opp.health < 0 {
		opp.health = 0
	}

	for _, t := range mv.Enqueue {
		if t == TargetOpponent {
			p.match.queue.Enqueue(opp)
		} else {
			p.match.queue.Enqueue(p)
		}
	}
	return dmg, nil
}

// String renders the participant as "Name (Archetype): health/resourcePoints".
func (p *Participant) String() string {
	return fmt.Sprintf("%s (%s): %d/%d", p.name, p.archetype, p.health, p.rp)
}
