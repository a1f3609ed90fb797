// Package tracker owns the purse for one session and exposes it to the
// front ends.
//
// Front ends never touch core.Money directly: they apply actions and redraw
// from the View returned afterwards. Affordances that the screen shows as
// disabled are refused here before the model is called.
package tracker

import (
	"context"
	"fmt"
	"sync"

	"vicmoney/internal/core"
	"vicmoney/internal/log"
)

// Tracker holds the single purse of a running session.
type Tracker struct {
	mu      sync.Mutex
	money   core.Money
	version uint64
	events  *log.StructuredLogger
}

// New returns a tracker with an empty purse.
func New(logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Discard()
	}
	return &Tracker{
		events: log.NewStructuredLogger(logger.WithComponent(log.ComponentTracker)),
	}
}

// Snapshot re-reads every display query from the purse.
func (t *Tracker) Snapshot() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return newView(&t.money, t.version)
}

// Apply performs a on the purse and returns the refreshed view. A disabled
// affordance returns ErrActionDisabled and leaves the purse untouched.
func (t *Tracker) Apply(ctx context.Context, a Action) (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.apply(a); err != nil {
		t.events.LogActionRejected(ctx, string(a.Kind), a.Unit.Name(), err)
		return newView(&t.money, t.version), err
	}

	t.version++
	t.events.LogActionApplied(ctx, string(a.Kind), a.Unit.Name(), t.money.Count(a.Unit), t.money.String(), t.version)
	return newView(&t.money, t.version), nil
}

func (t *Tracker) apply(a Action) error {
	if !a.Unit.Valid() {
		return core.ErrUnknownUnit
	}
	m := &t.money
	switch a.Kind {
	case Increment:
		return m.Increment(a.Unit)
	case Decrement:
		if m.Count(a.Unit) == 0 {
			return fmt.Errorf("%w: no %s to remove", ErrActionDisabled, a.Unit.Name())
		}
		return m.Decrement(a.Unit)
	case ConvertDown:
		if !m.ConvertDown(a.Unit) {
			return fmt.Errorf("%w: cannot break %s into smaller coins", ErrActionDisabled, a.Unit.Name())
		}
		return nil
	case ConvertUp:
		if !m.ConvertUp(a.Unit) {
			return fmt.Errorf("%w: not enough %s to make a larger coin", ErrActionDisabled, a.Unit.Name())
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}
