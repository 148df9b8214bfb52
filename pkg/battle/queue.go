package battle

// Queue is the FIFO order of upcoming turns. A participant may appear in it
// any number of times.
type Queue struct {
	entries []*Participant
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends p to the back of the queue.
func (q *Queue) Enqueue(p *Participant) {
	q.entries = append(q.entries, p)
}

// Dequeue removes and returns the participant at the front.
func (q *Queue) Dequeue() (*Participant, error) {
	if len(q.entries) == 0 {
		return nil, ErrEmptyQueue
	}
	p := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	return p, nil
}

// Peek returns the participant at the front without removing it.
func (q *Queue) Peek() (*Participant, error) {
	if len(q.entries) == 0 {
		return nil, ErrEmptyQueue
	}
	return q.entries[0], nil
}

func (q *Queue) IsEmpty() bool {
	return len(q.entries) == 0
}

func (q *Queue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of the pending turns, front first.
func (q *Queue) Entries() []*Participant {
	out := make([]*Participant, len(q.entries))
	copy(out, q.entries)
	return out
}

// IsOver reports whether the match fed by this queue has ended: the queue is
// empty, the front participant or its opponent is at zero health, or neither
// of them has a legal action left.
func (q *Queue) IsOver() bool {
	if q.IsEmpty() {
		return true
	}
	front := q.entries[0]
	opp := front.Opponent()
	if front.health == 0 {
		return true
	}
	if opp == nil {
		return len(front.LegalActions()) == 0
	}
	if opp.health == 0 {
		return true
	}
	return len(front.LegalActions()) == 0 && len(opp.LegalActions()) == 0
}

// Winner returns the surviving participant of an ended match. It returns nil
// while the match is still going, when the queue is empty, and on a draw
// (both sides out of legal actions with health left).
func (q *Queue) Winner() *Participant {
	if q.IsEmpty() || !q.IsOver() {
		return nil
	}
	front := q.entries[0]
	opp := front.Opponent()
	if opp == nil {
		return nil
	}
	switch {
	case front.health == 0 && opp.health > 0:
		return opp
	case opp.health == 0 && front.health > 0:
		return front
	default:
		return nil
	}
}
