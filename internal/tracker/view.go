package tracker

import "vicmoney/internal/core"

// Row is everything a screen shows for one unit.
type Row struct {
	Unit           core.Unit `json:"-"`
	Name           string    `json:"unit"`
	Count          int       `json:"count"`
	Label          string    `json:"label"`
	Formatted      string    `json:"formatted"`
	CanDecrement   bool      `json:"can_decrement"`
	HasDown        bool      `json:"has_down"`
	CanConvertDown bool      `json:"can_convert_down"`
	HasUp          bool      `json:"has_up"`
	CanConvertUp   bool      `json:"can_convert_up"`
}

// View is a point-in-time copy of the purse's display state.
type View struct {
	Total   string `json:"total"`
	Rows    []Row  `json:"rows"`
	Version uint64 `json:"version"`
}

func newView(m *core.Money, version uint64) View {
	v := View{
		Total:   m.String(),
		Rows:    make([]Row, 0, len(core.Units())),
		Version: version,
	}
	for _, u := range core.Units() {
		_, hasDown := u.Smaller()
		_, hasUp := u.Larger()
		v.Rows = append(v.Rows, Row{
			Unit:           u,
			Name:           u.Name(),
			Count:          m.Count(u),
			Label:          m.Label(u),
			Formatted:      m.Formatted(u),
			CanDecrement:   m.Count(u) > 0,
			HasDown:        hasDown,
			CanConvertDown: m.CanConvertDown(u),
			HasUp:          hasUp,
			CanConvertUp:   m.CanConvertUp(u),
		})
	}
	return v
}

// Row returns the row for u.
func (v View) Row(u core.Unit) Row {
	for _, r := range v.Rows {
		if r.Unit == u {
			return r
		}
	}
	return Row{Unit: u, Name: u.Name()}
}

// Enabled reports whether the screen should offer a.
func (v View) Enabled(a Action) bool {
	r := v.Row(a.Unit)
	switch a.Kind {
	case Increment:
		return a.Unit.Valid()
	case Decrement:
		return r.CanDecrement
	case ConvertDown:
		return r.CanConvertDown
	case ConvertUp:
		return r.CanConvertUp
	}
	return false
}
