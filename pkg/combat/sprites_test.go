package combat

import (
	"path/filepath"
	"testing"

	"duel-service/pkg/battle"
)

func TestAnimatorIdleLoops(t *testing.T) {
	a := NewAnimator(battle.Rogue)
	if a.Frame() != "rogue_idle_0" || a.State() != StateIdle {
		t.Fatalf("unexpected start %s/%s", a.State(), a.Frame())
	}
	for i := 0; i < FrameCount; i++ {
		if got, want := a.NextFrame(), FrameName(battle.Rogue, StateIdle, i); got != want {
			t.Fatalf("frame %d = %s, want %s", i, got, want)
		}
	}
	if got := a.NextFrame(); got != "rogue_idle_0" {
		t.Fatalf("idle should wrap to frame 0, got %s", got)
	}
	if got := a.NextFrame(); got != "rogue_idle_1" {
		t.Fatalf("idle should continue after wrapping, got %s", got)
	}
}

func TestAnimatorAttackFallsBackToIdle(t *testing.T) {
	tests := []struct {
		action battle.Action
		state  AnimationState
		word   string
	}{
		{battle.Basic, StateAttack, "attack"},
		{battle.Special, StateSpecialAttack, "special"},
	}
	for _, tt := range tests {
		a := NewAnimator(battle.Mage)
		a.NextFrame()
		a.NextFrame()
		a.Trigger(tt.action)
		if a.State() != tt.state {
			t.Fatalf("%v: state %s, want %s", tt.action, a.State(), tt.state)
		}
		if got := a.NextFrame(); got != "mage_"+tt.word+"_0" {
			t.Fatalf("%v: first frame %s", tt.action, got)
		}
		for i := 1; i < FrameCount; i++ {
			a.NextFrame()
		}
		if a.Frame() != "mage_"+tt.word+"_9" {
			t.Fatalf("%v: last frame %s", tt.action, a.Frame())
		}
		if got := a.NextFrame(); got != "mage_idle_0" || a.State() != StateIdle {
			t.Fatalf("%v: expected idle after the strip, got %s/%s", tt.action, a.State(), got)
		}
	}
}

func TestTriggerNoActionIsIgnored(t *testing.T) {
	a := NewAnimator(battle.Rogue)
	a.NextFrame()
	a.Trigger(battle.NoAction)
	if a.State() != StateIdle || a.NextFrame() != "rogue_idle_1" {
		t.Fatalf("NoAction should not restart the animation")
	}
}

func TestSpriteParts(t *testing.T) {
	got := filepath.Join(SpriteParts("rogue_attack_3")...)
	if want := filepath.Join("rpgasset", "characters", "rogue_attack_3.png"); got != want {
		t.Fatalf("SpriteParts = %s, want %s", got, want)
	}
}

func TestStageObservesTurns(t *testing.T) {
	p1, _ := battle.NewParticipant("Sophia", battle.Rogue)
	p2, _ := battle.NewParticipant("Dhruv", battle.Mage)
	m, err := battle.NewMatch(p1, p2)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	st := NewStage(m)

	turn, err := m.PlayTurn(battle.Special)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	st.Observe(turn)
	if a := st.Animator(battle.SeatOne); a.State() != StateSpecialAttack || a.Frame() != "rogue_special_0" {
		t.Fatalf("seat one: %s/%s", a.State(), a.Frame())
	}
	if a := st.Animator(battle.SeatTwo); a.State() != StateIdle {
		t.Fatalf("seat two should stay idle")
	}

	st.Tick()
	if got := st.Animator(battle.SeatOne).Frame(); got != "rogue_special_1" {
		t.Fatalf("after tick: %s", got)
	}
	if got := st.Animator(battle.SeatTwo).Frame(); got != "mage_idle_0" {
		t.Fatalf("after tick: %s", got)
	}
	if st.Animator(battle.Seat(5)) != nil {
		t.Fatalf("expected nil animator for unknown seat")
	}

	sc := Snapshot(m, st)
	if sc.Fighters[0].Frame != "rogue_special_1" || sc.Fighters[0].Animation != StateSpecialAttack {
		t.Fatalf("snapshot did not pick up the stage: %+v", sc.Fighters[0])
	}
	if sc.Fighters[1].HP != 88 || sc.Fighters[0].SP != 90 {
		t.Fatalf("unexpected stats %+v", sc.Fighters)
	}
}
