package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRejectsNegative(t *testing.T) {
	for _, u := range Units() {
		t.Run(u.Name(), func(t *testing.T) {
			var m Money
			require.NoError(t, m.Set(u, 3))

			err := m.Set(u, -1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNegativeAmount))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, u, verr.Unit)
			assert.Equal(t, -1, verr.Amount)

			assert.Equal(t, 3, m.Count(u), "counter must keep its previous value")
		})
	}
}

func TestSetLeavesOtherUnitsAlone(t *testing.T) {
	var m Money
	require.NoError(t, m.SetPounds(1))
	require.NoError(t, m.SetPence(7))

	require.Error(t, m.SetShillings(-2))

	assert.Equal(t, 1, m.Pounds())
	assert.Equal(t, 0, m.Shillings())
	assert.Equal(t, 7, m.Pence())
}

func TestSetUnknownUnit(t *testing.T) {
	var m Money
	assert.ErrorIs(t, m.Set(Unit(42), 1), ErrUnknownUnit)
	assert.Equal(t, 0, m.Count(Unit(42)))
}

func TestDecrementEmptyFails(t *testing.T) {
	var m Money
	err := m.Decrement(Crown)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, 0, m.Crowns())

	require.NoError(t, m.Increment(Crown))
	require.NoError(t, m.Increment(Crown))
	require.NoError(t, m.Decrement(Crown))
	assert.Equal(t, 1, m.Crowns())
}

func TestConvertDown(t *testing.T) {
	tests := []struct {
		from      Unit
		to        Unit
		wantAdded int
	}{
		{Pound, Crown, 4},
		{Crown, Shilling, 5},
		{Shilling, Penny, 12},
		{Penny, Farthing, 4},
	}
	for _, tt := range tests {
		t.Run(tt.from.Name(), func(t *testing.T) {
			var m Money
			require.NoError(t, m.Set(tt.from, 1))

			assert.True(t, m.CanConvertDown(tt.from))
			assert.True(t, m.ConvertDown(tt.from))
			assert.Equal(t, 0, m.Count(tt.from))
			assert.Equal(t, tt.wantAdded, m.Count(tt.to))
		})
	}
}

func TestConvertDownFromEmptyIsNoop(t *testing.T) {
	var m Money
	require.NoError(t, m.SetCrowns(2))

	assert.False(t, m.CanConvertPoundsToCrowns())
	assert.False(t, m.ConvertDown(Pound))
	assert.Equal(t, 0, m.Pounds())
	assert.Equal(t, 2, m.Crowns())
}

func TestConvertDownFarthingIsNoop(t *testing.T) {
	var m Money
	require.NoError(t, m.SetFarthings(9))
	assert.False(t, m.CanConvertDown(Farthing))
	assert.False(t, m.ConvertDown(Farthing))
	assert.Equal(t, 9, m.Farthings())
}

func TestConvertUp(t *testing.T) {
	tests := []struct {
		from Unit
		to   Unit
		need int
	}{
		{Crown, Pound, 4},
		{Shilling, Crown, 5},
		{Penny, Shilling, 12},
		{Farthing, Penny, 4},
	}
	for _, tt := range tests {
		t.Run(tt.from.Name(), func(t *testing.T) {
			var m Money
			require.NoError(t, m.Set(tt.from, tt.need-1))
			assert.False(t, m.CanConvertUp(tt.from))
			assert.False(t, m.ConvertUp(tt.from))
			assert.Equal(t, tt.need-1, m.Count(tt.from))
			assert.Equal(t, 0, m.Count(tt.to))

			require.NoError(t, m.Set(tt.from, tt.need+1))
			assert.True(t, m.CanConvertUp(tt.from))
			assert.True(t, m.ConvertUp(tt.from))
			assert.Equal(t, 1, m.Count(tt.from))
			assert.Equal(t, 1, m.Count(tt.to))
		})
	}
}

func TestConvertUpPoundIsNoop(t *testing.T) {
	var m Money
	require.NoError(t, m.SetPounds(10))
	assert.False(t, m.CanConvertUp(Pound))
	assert.False(t, m.ConvertUp(Pound))
	assert.Equal(t, 10, m.Pounds())
}

func TestCrownsBelowRatioDoNotConvert(t *testing.T) {
	var m Money
	require.NoError(t, m.SetCrowns(3))

	m.ConvertUp(Crown)

	assert.Equal(t, 0, m.Pounds())
	assert.Equal(t, 3, m.Crowns())
}

func TestPoundToCrowns(t *testing.T) {
	var m Money
	require.NoError(t, m.SetPounds(1))

	m.ConvertDown(Pound)

	assert.Equal(t, 0, m.Pounds())
	assert.Equal(t, 4, m.Crowns())
}

func TestConversionsDoNotCascade(t *testing.T) {
	var m Money
	require.NoError(t, m.SetFarthings(4*12*5))

	require.True(t, m.ConvertUp(Farthing))

	assert.Equal(t, 1, m.Pence())
	assert.Equal(t, 0, m.Shillings())
	assert.Equal(t, 0, m.Crowns())
	assert.Equal(t, 4*12*5-4, m.Farthings())
}

func TestRoundTrip(t *testing.T) {
	for _, u := range []Unit{Pound, Crown, Shilling, Penny} {
		t.Run(u.Name(), func(t *testing.T) {
			smaller, _ := u.Smaller()
			var m Money
			require.NoError(t, m.Set(u, 2))
			require.NoError(t, m.Set(smaller, 1))

			require.True(t, m.ConvertDown(u))
			require.True(t, m.ConvertUp(smaller))

			assert.Equal(t, 2, m.Count(u))
			assert.Equal(t, 1, m.Count(smaller))
		})
	}
}

func TestCountsStayNonNegative(t *testing.T) {
	var m Money
	ops := []func(){
		func() { _ = m.Decrement(Pound) },
		func() { _ = m.Increment(Pound) },
		func() { m.ConvertDown(Pound) },
		func() { m.ConvertDown(Crown) },
		func() { m.ConvertUp(Shilling) },
		func() { m.ConvertDown(Shilling) },
		func() { _ = m.Decrement(Penny) },
		func() { m.ConvertUp(Penny) },
		func() { m.ConvertDown(Penny) },
		func() { _ = m.Decrement(Farthing) },
		func() { m.ConvertUp(Farthing) },
		func() { _ = m.Set(Crown, -5) },
		func() { m.ConvertUp(Crown) },
	}
	for i := 0; i < 200; i++ {
		ops[(i*7+i/3)%len(ops)]()
		for _, u := range Units() {
			require.GreaterOrEqual(t, m.Count(u), 0, "step %d unit %s", i, u)
		}
	}
}

func TestConversionsRefuseOverflow(t *testing.T) {
	t.Run("down into a full counter", func(t *testing.T) {
		var m Money
		require.NoError(t, m.SetCrowns(math.MaxInt-1))
		require.NoError(t, m.SetPounds(1))

		assert.False(t, m.CanConvertPoundsToCrowns())
		assert.False(t, m.ConvertDown(Pound))
		assert.Equal(t, 1, m.Pounds())
		assert.Equal(t, math.MaxInt-1, m.Crowns())
	})

	t.Run("down to exactly max", func(t *testing.T) {
		var m Money
		require.NoError(t, m.SetCrowns(math.MaxInt-CrownsPerPound))
		require.NoError(t, m.SetPounds(1))

		assert.True(t, m.ConvertDown(Pound))
		assert.Equal(t, 0, m.Pounds())
		assert.Equal(t, math.MaxInt, m.Crowns())
	})

	t.Run("up into a full counter", func(t *testing.T) {
		var m Money
		require.NoError(t, m.SetPounds(math.MaxInt))
		require.NoError(t, m.SetCrowns(CrownsPerPound))

		assert.False(t, m.CanConvertCrownsToPounds())
		assert.False(t, m.ConvertUp(Crown))
		assert.Equal(t, math.MaxInt, m.Pounds())
		assert.Equal(t, CrownsPerPound, m.Crowns())
	})

	t.Run("increment at max", func(t *testing.T) {
		var m Money
		require.NoError(t, m.SetFarthings(math.MaxInt))

		require.Error(t, m.Increment(Farthing))
		assert.Equal(t, math.MaxInt, m.Farthings())
	})
}

func TestLabels(t *testing.T) {
	tests := []struct {
		unit  Unit
		count int
		want  string
	}{
		{Pound, 0, "pounds"},
		{Pound, 1, "pound"},
		{Pound, 2, "pounds"},
		{Crown, 1, "crown"},
		{Crown, 5, "crowns"},
		{Shilling, 1, "shilling"},
		{Shilling, 0, "shillings"},
		{Penny, 1, "penny"},
		{Penny, 2, "pence"},
		{Penny, 0, "pence"},
		{Farthing, 1, "farthing"},
		{Farthing, 3, "farthings"},
	}
	for _, tt := range tests {
		var m Money
		require.NoError(t, m.Set(tt.unit, tt.count))
		assert.Equal(t, tt.want, m.Label(tt.unit), "%s x%d", tt.unit, tt.count)
	}
}

func TestFormatted(t *testing.T) {
	var m Money
	for _, u := range Units() {
		assert.Empty(t, m.Formatted(u))
	}

	require.NoError(t, m.SetPounds(3))
	require.NoError(t, m.SetCrowns(2))
	require.NoError(t, m.SetShillings(11))
	require.NoError(t, m.SetPence(1))
	require.NoError(t, m.SetFarthings(4))

	assert.Equal(t, "£3", m.Formatted(Pound))
	assert.Equal(t, "2c", m.Formatted(Crown))
	assert.Equal(t, "11s", m.Formatted(Shilling))
	assert.Equal(t, "1d", m.Formatted(Penny))
	assert.Equal(t, "4f", m.Formatted(Farthing))
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		counts map[Unit]int
		want   string
	}{
		{"empty", nil, "Nil"},
		{"one pound", map[Unit]int{Pound: 1}, "£1"},
		{"pounds and shillings", map[Unit]int{Pound: 2, Shilling: 1, Penny: 0}, "£2 1s"},
		{"farthings only", map[Unit]int{Farthing: 3}, "3f"},
		{"everything", map[Unit]int{Pound: 1, Crown: 2, Shilling: 3, Penny: 4, Farthing: 5}, "£1 2c 3s 4d 5f"},
		{"gap in middle", map[Unit]int{Crown: 1, Penny: 6}, "1c 6d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			for u, n := range tt.counts {
				require.NoError(t, m.Set(u, n))
			}
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestParseUnit(t *testing.T) {
	for _, in := range []string{"pence", "penny", " Penny ", "PENCE"} {
		u, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, Penny, u)
	}
	_, err := ParseUnit("guinea")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnitAdjacency(t *testing.T) {
	_, ok := Pound.Larger()
	assert.False(t, ok)
	_, ok = Farthing.Smaller()
	assert.False(t, ok)

	s, ok := Crown.Smaller()
	assert.True(t, ok)
	assert.Equal(t, Shilling, s)

	assert.Equal(t, CrownsPerPound, Crown.RatioToLarger())
	assert.Equal(t, PencePerShilling, Shilling.RatioToSmaller())
	assert.Equal(t, 0, Pound.RatioToLarger())
	assert.Equal(t, 0, Farthing.RatioToSmaller())
}
