package schedule

import (
	"fmt"
	"strings"

	"github.com/julianstephens/courtbook/internal/constants"
)

// RowsXPath locates every resource row of the rendered schedule, in document
// order. Row positions and slot locators are relative to this query.
const RowsXPath = `//*[@role="grid"]//*[@role="row"]`

// Slot is one hour of one resource's day. It has no identity of its own:
// it is addressed by the position of its row and its index within that row.
type Slot struct {
	Resource string
	// Row is the position of the owning row among all grid rows.
	Row   int
	Index int
	Hour  int
	// Class is the raw class attribute of the slot element.
	Class string
}

// IsAvailable reports whether the slot can be booked. Any occurrence of
// "disabled" in the class attribute marks it as taken, so modifier classes
// such as "cell--disabled" count too. An empty or missing class is available.
func (s Slot) IsAvailable() bool {
	return !strings.Contains(s.Class, constants.DisabledMarker)
}

// Locator returns an XPath matching exactly this slot on the live page.
func (s Slot) Locator() string {
	return fmt.Sprintf("(%s)[%d]/td[%d]", RowsXPath, s.Row+1, s.Index+1)
}

// Time renders the slot's start hour, e.g. 18:00.
func (s Slot) Time() string {
	return fmt.Sprintf(constants.HourFormat, s.Hour)
}

func (s Slot) String() string {
	return fmt.Sprintf("%s @ %s", s.Resource, s.Time())
}
