package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	st, err := ParseStrategy("row-first")
	require.NoError(t, err)
	assert.Equal(t, RowFirst, st)

	st, err = ParseStrategy("hour-first")
	require.NoError(t, err)
	assert.Equal(t, HourFirst, st)

	_, err = ParseStrategy("cheapest")
	assert.Error(t, err)
}

func TestStrategyDecode(t *testing.T) {
	var st Strategy
	require.NoError(t, st.Decode("hour-first"))
	assert.Equal(t, HourFirst, st)

	assert.Error(t, st.Decode(""))
	assert.Equal(t, HourFirst, st, "failed decode leaves the value untouched")
}

func TestStrategyOrder(t *testing.T) {
	// Court 1 only has 20:00, court 2 has the preferred 18:00.
	g := mustParse(t, renderGrid(
		court{name: "Tennis Ct 1", taken: []int{18, 19}},
		court{name: "Tennis Ct 2"},
	))
	hours := []int{18, 19, 20}

	slots, err := g.FindAvailable(hours)
	require.NoError(t, err)

	names := func(slots []Slot) []string {
		var out []string
		for _, s := range slots {
			out = append(out, s.String())
		}
		return out
	}

	assert.Equal(t,
		[]string{"Tennis Ct 1 @ 20:00", "Tennis Ct 2 @ 18:00", "Tennis Ct 2 @ 19:00", "Tennis Ct 2 @ 20:00"},
		names(RowFirst.Order(slots, hours)))
	assert.Equal(t,
		[]string{"Tennis Ct 2 @ 18:00", "Tennis Ct 2 @ 19:00", "Tennis Ct 1 @ 20:00", "Tennis Ct 2 @ 20:00"},
		names(HourFirst.Order(slots, hours)))

	// Order never mutates its input.
	assert.Equal(t, "Tennis Ct 1 @ 20:00", slots[0].String())
}

func TestPick(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Tennis Ct 1", taken: []int{18}},
		court{name: "Tennis Ct 2"},
	))
	hours := []int{18, 19}

	slots, err := g.FindAvailable(hours)
	require.NoError(t, err)

	best, err := Pick(slots, hours, RowFirst)
	require.NoError(t, err)
	assert.Equal(t, "Tennis Ct 1 @ 19:00", best.String())

	best, err = Pick(slots, hours, HourFirst)
	require.NoError(t, err)
	assert.Equal(t, "Tennis Ct 2 @ 18:00", best.String())
}

func TestPickNoAvailability(t *testing.T) {
	g := mustParse(t, renderGrid(court{name: "Tennis Ct 1", taken: []int{18, 19, 20}}))
	hours := []int{18, 19, 20}

	slots, err := g.FindAvailable(hours)
	require.NoError(t, err)
	require.Empty(t, slots)

	for _, st := range Strategies {
		best, err := Pick(slots, hours, st)
		assert.ErrorIs(t, err, ErrNoAvailability, string(st))
		assert.Equal(t, Slot{}, best)
	}
}
