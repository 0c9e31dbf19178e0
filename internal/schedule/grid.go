// Package schedule reads the reservation site's schedule grid and decides
// which court to book.
//
// A Grid is a throwaway view over one rendering of the page: it is parsed from
// an HTML snapshot, queried, and discarded. Nothing here talks to the browser;
// slots carry a Locator that the caller clicks through its own driver.
package schedule

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/constants"
)

const rowsSelector = `[role="grid"] [role="row"]`

// Option configures a Grid.
type Option func(*Grid)

// WithBaseHour sets the hour rendered in the first slot of every row.
func WithBaseHour(hour int) Option {
	return func(g *Grid) { g.baseHour = hour }
}

// WithResourceFilter sets the substring a row's resource name must contain
// to be searched.
func WithResourceFilter(filter string) Option {
	return func(g *Grid) { g.filter = filter }
}

// Grid is the rendered schedule for one date.
type Grid struct {
	doc      *goquery.Document
	baseHour int
	filter   string
}

// Parse builds a Grid from an HTML document.
func Parse(r io.Reader, opts ...Option) (*Grid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse schedule")
	}
	g := &Grid{
		doc:      doc,
		baseHour: constants.BaseHour,
		filter:   constants.TennisCourt,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ParseHTML builds a Grid from an HTML string.
func ParseHTML(html string, opts ...Option) (*Grid, error) {
	return Parse(strings.NewReader(html), opts...)
}

// Rows returns every grid row in document order, unfiltered.
func (g *Grid) Rows() []*Row {
	sel := g.doc.Find(rowsSelector)
	rows := make([]*Row, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		rows = append(rows, newRow(s, i, g.baseHour))
	})
	return rows
}

// Fingerprint summarizes every rendered row and the classes of its slots.
// Two renderings of the same schedule compare equal. A page without a grid
// yields "".
func (g *Grid) Fingerprint() string {
	var b strings.Builder
	for _, row := range g.Rows() {
		b.WriteString(row.Resource)
		for _, cell := range row.Cells() {
			b.WriteByte('|')
			b.WriteString(cell.Class)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Courts returns the rows whose resource name contains the resource filter.
// The match is a case-sensitive substring test and keeps document order.
func (g *Grid) Courts() []*Row {
	var courts []*Row
	for _, row := range g.Rows() {
		if strings.Contains(row.Resource, g.filter) {
			courts = append(courts, row)
		}
	}
	return courts
}

// FindAvailable returns the bookable slots of every court at the acceptable
// hours. Results are grouped by row in document order and, within a row,
// follow the order of hours as given. Hours are not sorted.
//
// An hour with no slot in a court's row fails the whole search with an
// *HourOutOfRangeError before any slot of that row is read.
func (g *Grid) FindAvailable(hours []int) ([]Slot, error) {
	var available []Slot
	for _, row := range g.Courts() {
		rng := row.Range()
		indexes := make([]int, len(hours))
		for i, hour := range hours {
			idx, err := rng.Index(hour)
			if err != nil {
				return nil, &HourOutOfRangeError{Hour: hour, Range: rng, Resource: row.Resource}
			}
			indexes[i] = idx
		}

		cells := row.Cells()
		for _, idx := range indexes {
			if cells[idx].IsAvailable() {
				available = append(available, cells[idx])
			}
		}
	}
	return available, nil
}
