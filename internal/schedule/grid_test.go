package schedule

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// court describes one rendered row: its name, how many slots it has and
// which hours are taken.
type court struct {
	name  string
	slots int
	taken []int
}

func renderGrid(courts ...court) string {
	var b strings.Builder
	b.WriteString(`<html><body><table role="grid"><tbody>`)
	for _, c := range courts {
		b.WriteString(`<tr role="row"><th><div class="resource-header-cell__name"><span>`)
		b.WriteString(c.name)
		b.WriteString(`</span></div></th>`)
		size := c.slots
		if size == 0 {
			size = 16
		}
		for i := 0; i < size; i++ {
			class := "reservation-cell"
			for _, h := range c.taken {
				if h == 6+i {
					class += " disabled"
				}
			}
			fmt.Fprintf(&b, `<td class="%s" data-hour="%d"></td>`, class, 6+i)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func mustParse(t *testing.T, html string, opts ...Option) *Grid {
	t.Helper()
	g, err := ParseHTML(html, opts...)
	require.NoError(t, err)
	return g
}

func TestRows(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Tennis Ct 1"},
		court{name: "  Pickleball\n  Ct 2 "},
		court{name: "Tennis Ct 3"},
	))

	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Tennis Ct 1", rows[0].Resource)
	assert.Equal(t, "Pickleball Ct 2", rows[1].Resource)
	assert.Equal(t, "Tennis Ct 3", rows[2].Resource)
	for i, row := range rows {
		assert.Equal(t, i, row.Position)
	}
}

func TestRowsAcrossGrids(t *testing.T) {
	html := `<html><body>
		<table role="grid"><tr role="row"><th><div class="resource-header-cell__name"><span>Tennis Ct 1</span></div></th><td></td></tr></table>
		<table><tr role="row"><th><div class="resource-header-cell__name"><span>Outside</span></div></th><td></td></tr></table>
		<table role="grid"><tr role="row"><th><div class="resource-header-cell__name"><span>Tennis Ct 2</span></div></th><td></td></tr></table>
	</body></html>`

	rows := mustParse(t, html).Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Tennis Ct 1", rows[0].Resource)
	assert.Equal(t, "Tennis Ct 2", rows[1].Resource)
	assert.Equal(t, 1, rows[1].Position)
}

func TestCellsPreserveOrder(t *testing.T) {
	g := mustParse(t, renderGrid(court{name: "Tennis Ct 1", taken: []int{7}}))

	cells := g.Rows()[0].Cells()
	require.Len(t, cells, 16)
	for i, cell := range cells {
		assert.Equal(t, i, cell.Index)
		assert.Equal(t, 6+i, cell.Hour)
		assert.Equal(t, "Tennis Ct 1", cell.Resource)
	}
	assert.True(t, cells[0].IsAvailable())
	assert.False(t, cells[1].IsAvailable(), "hour 7 is taken")

	assert.Equal(t, HourRange{Base: 6, Size: 16}, g.Rows()[0].Range())
}

func TestCellsIgnoreHeaderAndNestedCells(t *testing.T) {
	html := `<table role="grid"><tr role="row">
		<th><div class="resource-header-cell__name"><span>Tennis Ct 1</span></div></th>
		<td class="disabled"><table><tr><td>nested</td></tr></table></td>
		<td></td>
	</tr></table>`

	cells := mustParse(t, html).Rows()[0].Cells()
	require.Len(t, cells, 2)
	assert.False(t, cells[0].IsAvailable())
	assert.True(t, cells[1].IsAvailable())
}

func TestFindAvailableSkipsModifierDisabledCells(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<table role="grid">`)
	for _, name := range []string{"Tennis Ct 1", "Tennis Ct 2"} {
		fmt.Fprintf(&b, `<tr role="row"><th><div class="resource-header-cell__name"><span>%s</span></div></th>`, name)
		for hour := 6; hour < 22; hour++ {
			class := "an-grid-cell"
			if name == "Tennis Ct 1" && hour == 18 {
				class += " an-grid-cell--disabled"
			}
			fmt.Fprintf(&b, `<td class="%s"></td>`, class)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table>`)

	slots, err := mustParse(t, b.String()).FindAvailable([]int{18})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Tennis Ct 2 @ 18:00", slots[0].String())
}

func TestFingerprint(t *testing.T) {
	open := mustParse(t, renderGrid(court{name: "Tennis Ct 1"}, court{name: "Tennis Ct 2"}))
	same := mustParse(t, renderGrid(court{name: "Tennis Ct 1"}, court{name: "Tennis Ct 2"}))
	booked := mustParse(t, renderGrid(court{name: "Tennis Ct 1", taken: []int{18}}, court{name: "Tennis Ct 2"}))

	assert.NotEmpty(t, open.Fingerprint())
	assert.Equal(t, open.Fingerprint(), same.Fingerprint())
	assert.NotEqual(t, open.Fingerprint(), booked.Fingerprint())
	assert.Empty(t, mustParse(t, `<html><body><p>loading</p></body></html>`).Fingerprint())
}

func TestCourtsFilter(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Tennis Ct 1"},
		court{name: "tennis ct 2"},
		court{name: "Pickleball 1"},
		court{name: "Indoor Tennis Ct 4 (lights)"},
	))

	var names []string
	for _, row := range g.Courts() {
		names = append(names, row.Resource)
	}
	assert.Equal(t, []string{"Tennis Ct 1", "Indoor Tennis Ct 4 (lights)"}, names)
}

func TestCourtsCustomFilter(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Tennis Ct 1"},
		court{name: "Pickleball 1"},
	), WithResourceFilter("Pickleball"))

	courts := g.Courts()
	require.Len(t, courts, 1)
	assert.Equal(t, "Pickleball 1", courts[0].Resource)
	assert.Equal(t, 1, courts[0].Position)
}

func TestFindAvailable(t *testing.T) {
	tests := []struct {
		name   string
		courts []court
		hours  []int
		want   []string
	}{
		{
			name:   "grouped by row then hour preference",
			courts: []court{{name: "Tennis Ct 1"}, {name: "Tennis Ct 2"}},
			hours:  []int{19, 18},
			want:   []string{"Tennis Ct 1 @ 19:00", "Tennis Ct 1 @ 18:00", "Tennis Ct 2 @ 19:00", "Tennis Ct 2 @ 18:00"},
		},
		{
			name:   "taken slots are skipped",
			courts: []court{{name: "Tennis Ct 1", taken: []int{18, 19}}, {name: "Tennis Ct 2", taken: []int{20}}},
			hours:  []int{18, 19, 20},
			want:   []string{"Tennis Ct 1 @ 20:00", "Tennis Ct 2 @ 18:00", "Tennis Ct 2 @ 19:00"},
		},
		{
			name:   "non matching rows are never searched",
			courts: []court{{name: "Pickleball 1"}, {name: "Tennis Ct 2", taken: []int{18}}},
			hours:  []int{18, 19},
			want:   []string{"Tennis Ct 2 @ 19:00"},
		},
		{
			name:   "nothing available",
			courts: []court{{name: "Tennis Ct 1", taken: []int{18}}},
			hours:  []int{18},
			want:   nil,
		},
		{
			name:   "no courts at all",
			courts: []court{{name: "Pickleball 1"}},
			hours:  []int{18},
			want:   nil,
		},
		{
			name:   "first and last hour of the grid",
			courts: []court{{name: "Tennis Ct 1"}},
			hours:  []int{6, 21},
			want:   []string{"Tennis Ct 1 @ 06:00", "Tennis Ct 1 @ 21:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, renderGrid(tt.courts...))

			slots, err := g.FindAvailable(tt.hours)
			require.NoError(t, err)

			var got []string
			for _, s := range slots {
				got = append(got, s.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAvailableSlotPositions(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Pickleball 1"},
		court{name: "Tennis Ct 2"},
	))

	slots, err := g.FindAvailable([]int{20})
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, Slot{Resource: "Tennis Ct 2", Row: 1, Index: 14, Hour: 20, Class: "reservation-cell"}, slots[0])
	assert.Equal(t, `(//*[@role="grid"]//*[@role="row"])[2]/td[15]`, slots[0].Locator())
}

func TestFindAvailableOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		courts []court
		hours  []int
		bad    int
	}{
		{name: "past the last slot", courts: []court{{name: "Tennis Ct 1"}}, hours: []int{18, 22}, bad: 22},
		{name: "before the base hour", courts: []court{{name: "Tennis Ct 1"}}, hours: []int{5}, bad: 5},
		{name: "short row", courts: []court{{name: "Tennis Ct 1"}, {name: "Tennis Ct 2", slots: 10}}, hours: []int{18}, bad: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, renderGrid(tt.courts...))

			slots, err := g.FindAvailable(tt.hours)
			require.ErrorIs(t, err, ErrHourOutOfRange)
			assert.Nil(t, slots)

			var rangeErr *HourOutOfRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.bad, rangeErr.Hour)
		})
	}
}

func TestFindAvailableIgnoresShortNonCourtRows(t *testing.T) {
	g := mustParse(t, renderGrid(
		court{name: "Pickleball 1", slots: 3},
		court{name: "Tennis Ct 1"},
	))

	slots, err := g.FindAvailable([]int{20})
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestWithBaseHour(t *testing.T) {
	g := mustParse(t, renderGrid(court{name: "Tennis Ct 1", slots: 4}), WithBaseHour(8))

	slots, err := g.FindAvailable([]int{11, 8})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 3, slots[0].Index)
	assert.Equal(t, 0, slots[1].Index)

	_, err = g.FindAvailable([]int{12})
	assert.ErrorIs(t, err, ErrHourOutOfRange)
}
