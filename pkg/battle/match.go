package battle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	StateOngoing = "ongoing"
	StateOver    = "over"

	eventFinish = "finish"
)

// Turn records one resolved turn.
type Turn struct {
	Number       int    `json:"number"`
	Actor        string `json:"actor"`
	Seat         Seat   `json:"seat"`
	Action       Action `json:"action"`
	Damage       int    `json:"damage"`
	Forfeit      bool   `json:"forfeit,omitempty"`
	ActorHP      int    `json:"actorHp"`
	ActorRP      int    `json:"actorRp"`
	OpponentHP   int    `json:"opponentHp"`
	OpponentRP   int    `json:"opponentRp"`
	QueueLength  int    `json:"queueLength"`
	EndsTheMatch bool   `json:"endsTheMatch,omitempty"`
}

// Match owns both participants and the queue they share. It is not safe for
// concurrent use; hosts keep each match on one goroutine.
type Match struct {
	id           string
	participants [2]*Participant
	queue        *Queue
	state        *fsm.FSM
	turns        []Turn
	log          *zap.Logger
}

type Option func(*Match)

func WithLogger(l *zap.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.log = l
		}
	}
}

func WithID(id string) Option {
	return func(m *Match) {
		if id != "" {
			m.id = id
		}
	}
}

// NewMatch pairs a and b as opponents, seats a first and b second, and queues
// one turn for each in that order.
func NewMatch(a, b *Participant, opts ...Option) (*Match, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("new match: both participants are required")
	}
	if a == b {
		return nil, fmt.Errorf("new match: %s cannot fight itself", a.name)
	}
	for _, p := range []*Participant{a, b} {
		if p.match != nil {
			return nil, fmt.Errorf("new match: %s already belongs to match %s", p.name, p.match.id)
		}
	}

	m := &Match{
		id:           uuid.New().String(),
		participants: [2]*Participant{a, b},
		queue:        NewQueue(),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = fsm.NewFSM(
		StateOngoing,
		fsm.Events{
			{Name: eventFinish, Src: []string{StateOngoing}, Dst: StateOver},
		},
		fsm.Callbacks{
			"enter_" + StateOver: func(_ context.Context, _ *fsm.Event) {
				m.logOutcome()
			},
		},
	)

	a.seat, a.match = SeatOne, m
	b.seat, b.match = SeatTwo, m
	m.queue.Enqueue(a)
	m.queue.Enqueue(b)

	m.log.Info("match started",
		zap.String("match_id", m.id),
		zap.String("seat_one", a.String()),
		zap.String("seat_two", b.String()),
	)
	return m, nil
}

func (m *Match) ID() string     { return m.id }
func (m *Match) Queue() *Queue  { return m.queue }
func (m *Match) State() string  { return m.state.Current() }
func (m *Match) IsOver() bool   { return m.queue.IsOver() }
func (m *Match) TurnCount() int { return len(m.turns) }

// Participant returns the fighter in seat s.
func (m *Match) Participant(s Seat) *Participant {
	if s != SeatOne && s != SeatTwo {
		return nil
	}
	return m.participants[s]
}

func (m *Match) Participants() [2]*Participant {
	return m.participants
}

// Turns returns a copy of the resolved turns in order.
func (m *Match) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Winner returns the surviving participant, or nil while the match is going
// or when it ended in a draw.
func (m *Match) Winner() *Participant {
	return m.queue.Winner()
}

// PlayTurn resolves action for the participant at the front of the queue.
//
// A front participant without legal actions forfeits its turn with NoAction:
// its entry is dropped and nothing is re-queued. NoAction from anyone else
// returns ErrNoAction, and an unaffordable action returns ErrInvalidAction;
// in both cases the match is left untouched so the host can ask again.
func (m *Match) PlayTurn(action Action) (Turn, error) {
	if m.state.Is(StateOver) || m.queue.IsOver() {
		m.finish()
		return Turn{}, ErrMatchOver
	}
	actor, err := m.queue.Peek()
	if err != nil {
		return Turn{}, err
	}

	if action == NoAction {
		if len(actor.LegalActions()) > 0 {
			return Turn{}, fmt.Errorf("%s: %w", actor.name, ErrNoAction)
		}
		if _, err := m.queue.Dequeue(); err != nil {
			return Turn{}, err
		}
		return m.record(actor, NoAction, 0, true), nil
	}

	if !actor.IsActionLegal(action) {
		return Turn{}, fmt.Errorf("%s (%d resource points) cannot use %s: %w",
			actor.name, actor.rp, action, ErrInvalidAction)
	}
	// perform only appends, so the actor is still at the front afterwards.
	dmg, err := actor.perform(action)
	if err != nil {
		return Turn{}, err
	}
	if _, err := m.queue.Dequeue(); err != nil {
		return Turn{}, err
	}
	return m.record(actor, action, dmg, false), nil
}

func (m *Match) record(actor *Participant, action Action, dmg int, forfeit bool) Turn {
	opp := actor.Opponent()
	t := Turn{
		Number:      len(m.turns) + 1,
		Actor:       actor.name,
		Seat:        actor.seat,
		Action:      action,
		Damage:      dmg,
		Forfeit:     forfeit,
		ActorHP:     actor.health,
		ActorRP:     actor.rp,
		OpponentHP:  opp.health,
		OpponentRP:  opp.rp,
		QueueLength: m.queue.Len(),
	}
	over := m.queue.IsOver()
	t.EndsTheMatch = over
	m.turns = append(m.turns, t)

	m.log.Debug("turn resolved",
		zap.String("match_id", m.id),
		zap.Int("turn", t.Number),
		zap.String("actor", t.Actor),
		zap.Stringer("action", action),
		zap.Int("damage", dmg),
		zap.Bool("forfeit", forfeit),
		zap.Int("queue_length", t.QueueLength),
	)
	if over {
		m.finish()
	}
	return t
}

func (m *Match) finish() {
	if !m.state.Can(eventFinish) {
		return
	}
	if err := m.state.Event(context.Background(), eventFinish); err != nil {
		m.log.Error("match state transition failed", zap.String("match_id", m.id), zap.Error(err))
	}
}

func (m *Match) logOutcome() {
	fields := []zap.Field{
		zap.String("match_id", m.id),
		zap.Int("turns", len(m.turns)),
		zap.String("seat_one", m.participants[SeatOne].String()),
		zap.String("seat_two", m.participants[SeatTwo].String()),
	}
	if w := m.Winner(); w != nil {
		fields = append(fields, zap.String("winner", w.name))
	} else {
		fields = append(fields, zap.Bool("draw", true))
	}
	m.log.Info("match over", fields...)
}
