// Package tui is the terminal front end for the tracker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vicmoney/internal/core"
	"vicmoney/internal/tracker"
)

// Model is the bubbletea model for one tracker session. The cursor selects
// a unit row; every key maps onto a tracker action for that row.
type Model struct {
	ctx     context.Context
	tracker *tracker.Tracker
	view    tracker.View
	cursor  int
	status  string
}

// New builds a model over t. ctx is passed to every Apply.
func New(ctx context.Context, t *tracker.Tracker) Model {
	return Model{
		ctx:     ctx,
		tracker: t,
		view:    t.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.status = ""
	case "down", "j":
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
		m.status = ""
	case "+", "=":
		m.apply(tracker.Increment)
	case "-", "_":
		m.apply(tracker.Decrement)
	case ">", ".":
		m.apply(tracker.ConvertDown)
	case "<", ",":
		m.apply(tracker.ConvertUp)
	}
	return m, nil
}

func (m *Model) apply(kind tracker.Kind) {
	unit := m.Selected()
	view, err := m.tracker.Apply(m.ctx, tracker.Action{Kind: kind, Unit: unit})
	m.view = view
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, tracker.ErrActionDisabled):
		m.status = fmt.Sprintf("Cannot %s %s", kind, unit.Name())
	default:
		m.status = err.Error()
	}
}

// Selected returns the unit under the cursor.
func (m Model) Selected() core.Unit {
	if len(m.view.Rows) == 0 {
		return core.Pound
	}
	return m.view.Rows[m.cursor].Unit
}

// Status is the message left by the last refused action, if any.
func (m Model) Status() string {
	return m.status
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Victorian Money Tracker\n\n")
	fmt.Fprintf(&b, "  Total: %s\n\n", m.view.Total)

	for i, row := range m.view.Rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%4d %-10s %s%s\n",
			cursor, row.Count, row.Label,
			affordance("<", row.HasUp, row.CanConvertUp),
			affordance(">", row.HasDown, row.CanConvertDown))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + m.status + "\n")
	}
	b.WriteString("  ↑/↓ select  +/- add/remove  < exchange up  > break down  q quit\n")
	return b.String()
}

// affordance renders a conversion hint: the key when enabled, a dot when
// disabled, blank when the unit has no neighbour in that direction.
func affordance(key string, has, enabled bool) string {
	switch {
	case !has:
		return "  "
	case enabled:
		return key + " "
	default:
		return ". "
	}
}

// Run starts the interactive program on the terminal and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, t *tracker.Tracker) error {
	p := tea.NewProgram(New(ctx, t), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
