package booking

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/schedule"
)

const dayFormat = "Mon Jan 2"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	firstStyle  = cellStyle.Foreground(lipgloss.Color("229")).Bold(true)
)

// BookCmd books and pays for the best available court.
type BookCmd struct{}

func (cmd *BookCmd) Run(ctx *cli.Context) error {
	session, err := ctx.StartSession()
	if err != nil {
		return err
	}
	defer session.Close()

	res, err := session.Booker.Run(ctx.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Booked %s on %s\n", res.Slot, res.Date.Format(dayFormat))
	return nil
}

// ScanCmd lists the available courts on the target date without booking.
type ScanCmd struct{}

func (cmd *ScanCmd) Run(ctx *cli.Context) error {
	session, err := ctx.StartSession()
	if err != nil {
		return err
	}
	defer session.Close()

	date, slots, err := session.Booker.Scan(ctx.Context())
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return errors.Wrapf(schedule.ErrNoAvailability, "nothing open on %s at %v", date.Format(dayFormat), ctx.Settings.AcceptableHours)
	}

	out := ctx.Stdout()
	fmt.Fprintf(out, "Available on %s (%s):\n", date.Format(dayFormat), ctx.Settings.Strategy)
	fmt.Fprintln(out, SlotTable(slots))
	return nil
}

// SlotTable renders slots in order, marking the one a booking would take.
func SlotTable(slots []schedule.Slot) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "COURT", "TIME").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0:
				return firstStyle
			default:
				return cellStyle
			}
		})
	for i, s := range slots {
		t.Row(strconv.Itoa(i+1), s.Resource, s.Time())
	}
	return t.Render()
}
