package tracker

import (
	"errors"
	"fmt"
	"strings"

	"vicmoney/internal/core"
)

// Kind is what an action does to a unit.
type Kind string

const (
	Increment   Kind = "increment"
	Decrement   Kind = "decrement"
	ConvertDown Kind = "convert-down"
	ConvertUp   Kind = "convert-up"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrActionDisabled = errors.New("action disabled")
)

// Action is one user gesture on the tracker screen.
type Action struct {
	Kind Kind
	Unit core.Unit
}

func (a Action) String() string {
	return string(a.Kind) + ":" + a.Unit.Name()
}

// ParseAction parses "kind:unit", e.g. "convert-down:pounds" or "increment:penny".
func ParseAction(s string) (Action, error) {
	kind, unit, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	k := Kind(strings.ToLower(kind))
	switch k {
	case Increment, Decrement, ConvertDown, ConvertUp:
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	u, err := core.ParseUnit(unit)
	if err != nil {
		return Action{}, fmt.Errorf("parse action %q: %w", s, err)
	}
	return Action{Kind: k, Unit: u}, nil
}
