package playstyle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"duel-service/pkg/battle"
)

var (
	ErrTurnLimit      = errors.New("turn limit reached")
	ErrInputExhausted = errors.New("manual input exhausted")
)

// Input supplies tokens to a manual policy, one per prompt.
type Input interface {
	Next() (string, bool)
}

// Script replays a fixed string of tokens, one character each. Whitespace
// and commas are skipped.
type Script struct {
	tokens []string
}

func NewScript(s string) *Script {
	var tokens []string
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		tokens = append(tokens, string(r))
	}
	return &Script{tokens: tokens}
}

func (s *Script) Next() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, true
}

func (s *Script) Remaining() int {
	return len(s.tokens)
}

// Controller pairs the policy of a seat with its input source. Input may be
// nil for automatic policies.
type Controller struct {
	Policy Policy
	Input  Input
}

// Driver is the host loop: it asks the front participant's controller for an
// action and plays it until the match ends.
type Driver struct {
	match       *battle.Match
	controllers [2]Controller

	// OnTurn is called after every resolved turn.
	OnTurn func(battle.Turn)
	// OnReject is called when a manual token is unrecognised or not
	// affordable. The match is unchanged and the seat is asked again.
	OnReject func(p *battle.Participant, token string, err error)
}

func NewDriver(m *battle.Match, one, two Controller) (*Driver, error) {
	for i, c := range []Controller{one, two} {
		if c.Policy == nil {
			return nil, fmt.Errorf("seat %d: missing policy", i+1)
		}
		if c.Policy.IsManual() && c.Input == nil {
			return nil, fmt.Errorf("seat %d: manual policy needs an input", i+1)
		}
	}
	return &Driver{match: m, controllers: [2]Controller{one, two}}, nil
}

func (d *Driver) Match() *battle.Match {
	return d.match
}

// Run plays turns until the match is over. maxTurns <= 0 means no limit.
func (d *Driver) Run(ctx context.Context, maxTurns int) error {
	played := 0
	for !d.match.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxTurns > 0 && played >= maxTurns {
			return fmt.Errorf("%d turns: %w", played, ErrTurnLimit)
		}
		turn, err := d.Step()
		if err != nil {
			return err
		}
		if turn == nil {
			continue
		}
		played++
	}
	return nil
}

// Step resolves at most one turn. It returns a nil turn when a manual token
// was rejected.
func (d *Driver) Step() (*battle.Turn, error) {
	actor, err := d.match.Queue().Peek()
	if err != nil {
		return nil, err
	}
	c := d.controllers[actor.Seat()]

	action := battle.NoAction
	token := ""
	if len(actor.LegalActions()) > 0 {
		if c.Policy.IsManual() {
			var ok bool
			token, ok = c.Input.Next()
			if !ok {
				return nil, fmt.Errorf("%s: %w", actor.Name(), ErrInputExhausted)
			}
		}
		action = c.Policy.SelectAction(token)
	}

	turn, err := d.match.PlayTurn(action)
	switch {
	case err == nil:
		if d.OnTurn != nil {
			d.OnTurn(turn)
		}
		return &turn, nil
	case c.Policy.IsManual() && (errors.Is(err, battle.ErrNoAction) || errors.Is(err, battle.ErrInvalidAction)):
		if d.OnReject != nil {
			d.OnReject(actor, strings.TrimSpace(token), err)
		}
		return nil, nil
	default:
		return nil, err
	}
}
