package combat

import (
	"strings"

	"duel-service/pkg/battle"
	"duel-service/pkg/config"
)

// Fighter is what the renderer and the JSON response see of a participant.
type Fighter struct {
	Name      string         `json:"name"`
	Class     string         `json:"class"`
	Seat      battle.Seat    `json:"seat"`
	HP        int            `json:"hp"`
	MaxHP     int            `json:"maxHp"`
	SP        int            `json:"sp"`
	MaxSP     int            `json:"maxSp"`
	Animation AnimationState `json:"animation"`
	Frame     string         `json:"frame"`
	Defeated  bool           `json:"defeated"`
}

// Scene is one frame of a duel.
type Scene struct {
	MatchID  string     `json:"id"`
	State    string     `json:"state"`
	Winner   string     `json:"winner,omitempty"`
	Fighters [2]Fighter `json:"fighters"`
}

// Banner is the text shown at the top of a rendered frame.
func (s Scene) Banner() string {
	switch {
	case s.State != battle.StateOver:
		return strings.ToUpper(s.Fighters[0].Class + " vs " + s.Fighters[1].Class)
	case s.Winner != "":
		return strings.ToUpper(s.Winner) + " WINS"
	default:
		return "DRAW"
	}
}

// DuelRequest is the body accepted by the simulate and combat endpoints.
type DuelRequest struct {
	Fighters []config.Fighter `json:"fighters" binding:"required"`
	Seed     *int64           `json:"seed"`
	MaxTurns int              `json:"maxTurns"`
}

// DuelResponse is returned by the simulate endpoint.
type DuelResponse struct {
	Scene
	Seed  int64         `json:"seed"`
	Turns []battle.Turn `json:"turns"`
}

// Snapshot captures the current state of m. stage may be nil, in which case
// every fighter shows its first idle frame.
func Snapshot(m *battle.Match, stage *Stage) Scene {
	sc := Scene{MatchID: m.ID(), State: m.State()}
	if w := m.Winner(); w != nil {
		sc.Winner = w.Name()
	}
	for i, p := range m.Participants() {
		f := Fighter{
			Name:      p.Name(),
			Class:     p.Archetype().String(),
			Seat:      p.Seat(),
			HP:        p.Health(),
			MaxHP:     battle.MaxHealth,
			SP:        p.ResourcePoints(),
			MaxSP:     battle.MaxResourcePoints,
			Animation: StateIdle,
			Frame:     FrameName(p.Archetype(), StateIdle, 0),
			Defeated:  p.Health() == 0,
		}
		if stage != nil {
			if a := stage.Animator(p.Seat()); a != nil {
				f.Animation = a.State()
				f.Frame = a.Frame()
			}
		}
		sc.Fighters[i] = f
	}
	return sc
}
