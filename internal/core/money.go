// Package core provides the Victorian money model.
//
// Money tracks how many pounds, crowns, shillings, pence and farthings are
// held. Every counter is non-negative; conversions move value between two
// adjacent units one step at a time.
package core

import (
	"math"
	"strconv"
)

// Money holds a count for each unit. The zero value is an empty purse.
type Money struct {
	counts [len(units)]int
}

// Count returns the number of coins of unit u. Unknown units count as zero.
func (m *Money) Count(u Unit) int {
	if !u.Valid() {
		return 0
	}
	return m.counts[u]
}

func (m *Money) Pounds() int    { return m.Count(Pound) }
func (m *Money) Crowns() int    { return m.Count(Crown) }
func (m *Money) Shillings() int { return m.Count(Shilling) }
func (m *Money) Pence() int     { return m.Count(Penny) }
func (m *Money) Farthings() int { return m.Count(Farthing) }

// Set stores n coins of unit u. A negative n returns a *ValidationError and
// leaves the counter unchanged.
func (m *Money) Set(u Unit, n int) error {
	if !u.Valid() {
		return ErrUnknownUnit
	}
	if n < 0 {
		return &ValidationError{Unit: u, Amount: n}
	}
	m.counts[u] = n
	return nil
}

func (m *Money) SetPounds(n int) error    { return m.Set(Pound, n) }
func (m *Money) SetCrowns(n int) error    { return m.Set(Crown, n) }
func (m *Money) SetShillings(n int) error { return m.Set(Shilling, n) }
func (m *Money) SetPence(n int) error     { return m.Set(Penny, n) }
func (m *Money) SetFarthings(n int) error { return m.Set(Farthing, n) }

// Increment adds one coin of unit u.
func (m *Money) Increment(u Unit) error {
	return m.Set(u, m.Count(u)+1)
}

// Decrement removes one coin of unit u. Decrementing an empty counter fails
// validation.
func (m *Money) Decrement(u Unit) error {
	return m.Set(u, m.Count(u)-1)
}

// CanConvertDown reports whether one coin of u can be broken into the next
// smaller unit. A conversion that would overflow the smaller counter is
// refused.
func (m *Money) CanConvertDown(u Unit) bool {
	_, _, ok := m.downCounts(u)
	return ok
}

// CanConvertUp reports whether enough coins of u are held to make one of the
// next larger unit. A conversion that would overflow the larger counter is
// refused.
func (m *Money) CanConvertUp(u Unit) bool {
	_, _, ok := m.upCounts(u)
	return ok
}

// downCounts computes the counts of u and its smaller neighbour after
// breaking one coin of u.
func (m *Money) downCounts(u Unit) (from, to int, ok bool) {
	smaller, has := u.Smaller()
	if !has || m.Count(u) < 1 {
		return 0, 0, false
	}
	ratio := u.RatioToSmaller()
	if m.Count(smaller) > math.MaxInt-ratio {
		return 0, 0, false
	}
	return m.Count(u) - 1, m.Count(smaller) + ratio, true
}

// upCounts computes the counts of u and its larger neighbour after
// exchanging one ratio of u.
func (m *Money) upCounts(u Unit) (from, to int, ok bool) {
	larger, has := u.Larger()
	if !has || m.Count(u) < u.RatioToLarger() || m.Count(larger) == math.MaxInt {
		return 0, 0, false
	}
	return m.Count(u) - u.RatioToLarger(), m.Count(larger) + 1, true
}

func (m *Money) CanConvertPoundsToCrowns() bool    { return m.CanConvertDown(Pound) }
func (m *Money) CanConvertCrownsToShillings() bool { return m.CanConvertDown(Crown) }
func (m *Money) CanConvertShillingsToPence() bool  { return m.CanConvertDown(Shilling) }
func (m *Money) CanConvertPenceToFarthings() bool  { return m.CanConvertDown(Penny) }
func (m *Money) CanConvertFarthingsToPence() bool  { return m.CanConvertUp(Farthing) }
func (m *Money) CanConvertPenceToShillings() bool  { return m.CanConvertUp(Penny) }
func (m *Money) CanConvertShillingsToCrowns() bool { return m.CanConvertUp(Shilling) }
func (m *Money) CanConvertCrownsToPounds() bool    { return m.CanConvertUp(Crown) }

// ConvertDown breaks one coin of u into the next smaller unit. It returns
// false and changes nothing when the conversion is not possible.
func (m *Money) ConvertDown(u Unit) bool {
	from, to, ok := m.downCounts(u)
	if !ok {
		return false
	}
	smaller, _ := u.Smaller()
	m.counts[u], m.counts[smaller] = from, to
	return true
}

// ConvertUp exchanges coins of u for one coin of the next larger unit. It
// returns false and changes nothing when too few coins are held.
func (m *Money) ConvertUp(u Unit) bool {
	from, to, ok := m.upCounts(u)
	if !ok {
		return false
	}
	larger, _ := u.Larger()
	m.counts[u], m.counts[larger] = from, to
	return true
}

// Label returns the unit name, singular only when exactly one coin is held.
func (m *Money) Label(u Unit) string {
	if m.Count(u) == 1 {
		return u.Singular()
	}
	return u.Name()
}

// Formatted returns the count with its symbol, e.g. "£2" or "5s", or "" when
// no coins of u are held.
func (m *Money) Formatted(u Unit) string {
	n := m.Count(u)
	if n == 0 {
		return ""
	}
	if units[u].prefix {
		return u.Symbol() + strconv.Itoa(n)
	}
	return strconv.Itoa(n) + u.Symbol()
}

// IsZero reports whether every counter is zero.
func (m *Money) IsZero() bool {
	for _, n := range m.counts {
		if n != 0 {
			return false
		}
	}
	return true
}

// String renders the purse as e.g. "£2 1s 3d", omitting empty units, or "Nil".
func (m *Money) String() string {
	if m.IsZero() {
		return "Nil"
	}
	var out []byte
	for _, u := range Units() {
		f := m.Formatted(u)
		if f == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, f...)
	}
	return string(out)
}
