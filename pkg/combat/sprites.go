package combat

import (
	"fmt"
	"strings"

	"duel-service/pkg/battle"
)

// FrameCount is the number of frames in every animation strip.
const FrameCount = 10

type AnimationState string

const (
	StateIdle          AnimationState = "idle"
	StateAttack        AnimationState = "attack"
	StateSpecialAttack AnimationState = "sp_attack"
)

// strip is the file-name word for each state.
var strip = map[AnimationState]string{
	StateIdle:          "idle",
	StateAttack:        "attack",
	StateSpecialAttack: "special",
}

// FrameName returns e.g. "rogue_attack_3".
func FrameName(a battle.Archetype, s AnimationState, n int) string {
	return fmt.Sprintf("%s_%s_%d", strings.ToLower(a.String()), strip[s], n)
}

// SpriteParts is the path of a frame below the asset root.
func SpriteParts(frame string) []string {
	return []string{"rpgasset", "characters", frame + ".png"}
}

// Animator steps through the sprite frames of one fighter. An attack strip
// plays once and then falls back to the idle loop.
type Animator struct {
	archetype battle.Archetype
	state     AnimationState
	cursor    int
	frame     string
}

func NewAnimator(a battle.Archetype) *Animator {
	return &Animator{
		archetype: a,
		state:     StateIdle,
		cursor:    -1,
		frame:     FrameName(a, StateIdle, 0),
	}
}

func (a *Animator) State() AnimationState { return a.state }

// Frame is the frame last returned by NextFrame.
func (a *Animator) Frame() string { return a.frame }

// Trigger starts the strip for action from its first frame. NoAction leaves
// the animator alone.
func (a *Animator) Trigger(action battle.Action) {
	switch action {
	case battle.Basic:
		a.state = StateAttack
	case battle.Special:
		a.state = StateSpecialAttack
	default:
		return
	}
	a.cursor = -1
}

// NextFrame advances one frame and returns its name.
func (a *Animator) NextFrame() string {
	if a.cursor >= FrameCount-1 {
		a.state = StateIdle
		a.cursor = 0
	} else {
		a.cursor++
	}
	a.frame = FrameName(a.archetype, a.state, a.cursor)
	return a.frame
}

// Stage keeps one animator per seat and triggers them from resolved turns.
type Stage struct {
	animators [2]*Animator
}

func NewStage(m *battle.Match) *Stage {
	s := &Stage{}
	for i, p := range m.Participants() {
		s.animators[i] = NewAnimator(p.Archetype())
	}
	return s
}

func (s *Stage) Animator(seat battle.Seat) *Animator {
	if seat != battle.SeatOne && seat != battle.SeatTwo {
		return nil
	}
	return s.animators[seat]
}

// Observe plays the actor's strip for t and shows its first frame.
func (s *Stage) Observe(t battle.Turn) {
	a := s.Animator(t.Seat)
	if a == nil || t.Forfeit {
		return
	}
	a.Trigger(t.Action)
	a.NextFrame()
}

// Tick advances both animators by one frame.
func (s *Stage) Tick() {
	for _, a := range s.animators {
		a.NextFrame()
	}
}
