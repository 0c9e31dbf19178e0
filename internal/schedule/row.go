package schedule

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const resourceNameSelector = "div.resource-header-cell__name > span"

// Row is one resource's day on the schedule grid.
type Row struct {
	// Resource is the display name with whitespace collapsed, the same form the
	// resource filter is matched against.
	Resource string
	// Position is the row's index among all grid rows in document order.
	Position int

	baseHour int
	sel      *goquery.Selection
}

func newRow(sel *goquery.Selection, position, baseHour int) *Row {
	return &Row{
		Resource: normalizeName(sel.Find(resourceNameSelector).First().Text()),
		Position: position,
		baseHour: baseHour,
		sel:      sel,
	}
}

// Cells returns the row's slots left to right. Index i is hour baseHour+i.
func (r *Row) Cells() []Slot {
	tds := r.sel.ChildrenFiltered("td")
	cells := make([]Slot, 0, tds.Length())
	tds.Each(func(i int, td *goquery.Selection) {
		class, _ := td.Attr("class")
		cells = append(cells, Slot{
			Resource: r.Resource,
			Row:      r.Position,
			Index:    i,
			Hour:     r.baseHour + i,
			Class:    class,
		})
	})
	return cells
}

// Range returns the hours this row has slots for.
func (r *Row) Range() HourRange {
	return HourRange{Base: r.baseHour, Size: r.sel.ChildrenFiltered("td").Length()}
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
