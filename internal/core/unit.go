package core

import (
	"errors"
	"strings"
)

// Unit identifies one of the five coins, ordered from largest to smallest.
type Unit int

const (
	Pound Unit = iota
	Crown
	Shilling
	Penny
	Farthing
)

// Conversion ratios between adjacent units.
const (
	CrownsPerPound    = 4
	ShillingsPerCrown = 5
	PencePerShilling  = 12
	FarthingsPerPenny = 4
)

var ErrUnknownUnit = errors.New("unknown unit")

type unitInfo struct {
	singular string
	plural   string
	symbol   string
	prefix   bool // symbol goes before the number
	perLower int  // how many of the next smaller unit make one of this
}

var units = [...]unitInfo{
	Pound:    {singular: "pound", plural: "pounds", symbol: "£", prefix: true, perLower: CrownsPerPound},
	Crown:    {singular: "crown", plural: "crowns", symbol: "c", perLower: ShillingsPerCrown},
	Shilling: {singular: "shilling", plural: "shillings", symbol: "s", perLower: PencePerShilling},
	Penny:    {singular: "penny", plural: "pence", symbol: "d", perLower: FarthingsPerPenny},
	Farthing: {singular: "farthing", plural: "farthings", symbol: "f"},
}

// Units lists every unit from pounds down to farthings.
func Units() []Unit {
	return []Unit{Pound, Crown, Shilling, Penny, Farthing}
}

// Valid reports whether u is one of the five units.
func (u Unit) Valid() bool {
	return u >= Pound && u <= Farthing
}

// Name returns the plural name, which is also the canonical form used in
// actions and URLs.
func (u Unit) Name() string {
	if !u.Valid() {
		return "unknown"
	}
	return units[u].plural
}

func (u Unit) String() string {
	return u.Name()
}

// Singular returns the name used when there is exactly one coin.
func (u Unit) Singular() string {
	if !u.Valid() {
		return "unknown"
	}
	return units[u].singular
}

// Symbol returns the display symbol (£, c, s, d, f).
func (u Unit) Symbol() string {
	if !u.Valid() {
		return ""
	}
	return units[u].symbol
}

// Smaller returns the next smaller unit; ok is false for farthings.
func (u Unit) Smaller() (Unit, bool) {
	if !u.Valid() || u == Farthing {
		return u, false
	}
	return u + 1, true
}

// Larger returns the next larger unit; ok is false for pounds.
func (u Unit) Larger() (Unit, bool) {
	if !u.Valid() || u == Pound {
		return u, false
	}
	return u - 1, true
}

// RatioToSmaller is the number of the next smaller unit in one of u.
// Zero for farthings.
func (u Unit) RatioToSmaller() int {
	if !u.Valid() {
		return 0
	}
	return units[u].perLower
}

// RatioToLarger is the number of u needed for one of the next larger unit.
// Zero for pounds.
func (u Unit) RatioToLarger() int {
	larger, ok := u.Larger()
	if !ok {
		return 0
	}
	return larger.RatioToSmaller()
}

// ParseUnit accepts singular or plural names, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, u := range Units() {
		if s == units[u].plural || s == units[u].singular {
			return u, nil
		}
	}
	return 0, ErrUnknownUnit
}
