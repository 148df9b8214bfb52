package battle

import (
	"errors"
	"testing"
)

func TestEmptyQueue(t *testing.T) {
	q := NewQueue()
	if !q.IsEmpty() {
		t.Fatalf("new queue should be empty")
	}
	if _, err := q.Dequeue(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue from Dequeue, got %v", err)
	}
	if _, err := q.Peek(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue from Peek, got %v", err)
	}
	if !q.IsOver() {
		t.Fatalf("empty queue means the match is over")
	}
	if q.Winner() != nil {
		t.Fatalf("empty queue has no winner")
	}
}

func TestQueueIsFIFO(t *testing.T) {
	a, _ := NewParticipant("A", Rogue)
	b, _ := NewParticipant("B", Mage)
	in := []*Participant{a, b, b, a, a, b}

	q := NewQueue()
	for _, p := range in {
		q.Enqueue(p)
	}
	if q.Len() != len(in) {
		t.Fatalf("expected len %d, got %d", len(in), q.Len())
	}
	for i, want := range in {
		front, err := q.Peek()
		if err != nil || front != want {
			t.Fatalf("peek %d: got %v, %v", i, front, err)
		}
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("dequeue %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("dequeue %d: want %s, got %s", i, want.Name(), got.Name())
		}
	}
	if !q.IsEmpty() {
		t.Fatalf("queue should be drained")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	a, _ := NewParticipant("A", Rogue)
	q := NewQueue()
	q.Enqueue(a)
	e := q.Entries()
	e[0] = nil
	if front, _ := q.Peek(); front != a {
		t.Fatalf("mutating Entries changed the queue")
	}
}

func TestIsOverOnFreshMatch(t *testing.T) {
	_, _, m := newPair(t, Rogue, Mage)
	q := m.Queue()
	if q.IsOver() {
		t.Fatalf("fresh match should not be over")
	}
	if q.Winner() != nil {
		t.Fatalf("ongoing match has no winner")
	}
	if q.Len() != 2 {
		t.Fatalf("IsOver must not mutate the queue")
	}
}

func TestIsOverWhenOpponentDefeated(t *testing.T) {
	p1, p2, m := newPair(t, Mage, Rogue)
	p2.health = 30

	if err := p1.PerformAction(Special); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p2.Health() != 0 {
		t.Fatalf("expected rogue to be defeated, health %d", p2.Health())
	}
	q := m.Queue()
	if !q.IsOver() {
		t.Fatalf("expected match over after lethal hit")
	}
	if w := q.Winner(); w != p1 {
		t.Fatalf("expected %s to win, got %v", p1.Name(), w)
	}

	// Same answer when the defeated side is at the front.
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if front, _ := q.Peek(); front != p2 {
		t.Fatalf("expected defeated rogue at front")
	}
	if !q.IsOver() || q.Winner() != p1 {
		t.Fatalf("winner should not depend on who is at the front")
	}
}

func TestDrawWhenBothExhausted(t *testing.T) {
	p1, p2, m := newPair(t, Rogue, Mage)
	p1.rp = 2
	p2.rp = 4
	q := m.Queue()
	if !q.IsOver() {
		t.Fatalf("expected match over when neither side can act")
	}
	if q.Winner() != nil {
		t.Fatalf("expected draw, got winner %v", q.Winner())
	}
}

func TestNotOverWhileOneSideCanAct(t *testing.T) {
	p1, _, m := newPair(t, Rogue, Mage)
	p1.rp = 0
	if m.Queue().IsOver() {
		t.Fatalf("match continues while the opponent can still act")
	}
}
