package schedule

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/constants"
)

var (
	// ErrHourOutOfRange is matched by every *HourOutOfRangeError.
	ErrHourOutOfRange = errors.New("hour outside schedule grid")
	// ErrNoAvailability is returned when no acceptable slot is bookable.
	ErrNoAvailability = errors.New("no acceptable court available")
)

// HourOutOfRangeError reports an hour that does not map onto a row's slots.
type HourOutOfRangeError struct {
	Hour     int
	Range    HourRange
	Resource string
}

func (e *HourOutOfRangeError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("hour %d outside %s for %q", e.Hour, e.Range, e.Resource)
	}
	return fmt.Sprintf("hour %d outside %s", e.Hour, e.Range)
}

func (e *HourOutOfRangeError) Is(target error) bool {
	return target == ErrHourOutOfRange
}

// HourRange maps hours of the day onto slot positions. Index 0 is Base and the
// range covers Size consecutive hours, so the half-open interval is
// [Base, Base+Size).
type HourRange struct {
	Base int
	Size int
}

// GridRange is the hour range rendered by the reservation site.
var GridRange = HourRange{
	Base: constants.ValidHourLower,
	Size: constants.ValidHourUpper - constants.ValidHourLower,
}

// End returns the first hour past the range.
func (r HourRange) End() int {
	return r.Base + r.Size
}

// Contains reports whether hour has a slot in the range.
func (r HourRange) Contains(hour int) bool {
	return hour >= r.Base && hour < r.End()
}

// Index returns the slot position for hour. Hours outside the range are
// rejected instead of clamped.
func (r HourRange) Index(hour int) (int, error) {
	if !r.Contains(hour) {
		return 0, &HourOutOfRangeError{Hour: hour, Range: r}
	}
	return hour - r.Base, nil
}

// Hour returns the hour rendered at slot position index.
func (r HourRange) Hour(index int) (int, error) {
	if index < 0 || index >= r.Size {
		return 0, &HourOutOfRangeError{Hour: r.Base + index, Range: r}
	}
	return r.Base + index, nil
}

func (r HourRange) String() string {
	return fmt.Sprintf("["+constants.HourFormat+", "+constants.HourFormat+")", r.Base, r.End())
}

// ValidateHours checks that every hour is inside r and listed once.
func ValidateHours(hours []int, r HourRange) error {
	if len(hours) == 0 {
		return errors.New("no acceptable hours given")
	}
	seen := make(map[int]bool, len(hours))
	for _, h := range hours {
		if _, err := r.Index(h); err != nil {
			return err
		}
		if seen[h] {
			return errors.Newf("hour %d listed more than once", h)
		}
		seen[h] = true
	}
	return nil
}
