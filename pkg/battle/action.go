package battle

import "fmt"

// Action is what a participant does on its turn. The byte values double as
// the single-character input tokens.
type Action byte

const (
	NoAction Action = 'X'
	Basic    Action = 'A'
	Special  Action = 'S'
)

func (a Action) String() string {
	switch a {
	case Basic:
		return "basic"
	case Special:
		return "special"
	default:
		return "none"
	}
}

// Token returns the input character for the action.
func (a Action) Token() string {
	switch a {
	case Basic, Special:
		return string(rune(a))
	default:
		return string(rune(NoAction))
	}
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	switch string(b) {
	case "basic":
		*a = Basic
	case "special":
		*a = Special
	case "none":
		*a = NoAction
	default:
		return fmt.Errorf("unknown action %q", b)
	}
	return nil
}
