package utils

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/now"

	"github.com/julianstephens/courtbook/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", timezone)
	}
	return loc, nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time %q (want HH:MM)", timeStr)
	}
	return t, nil
}

// TargetDate returns midnight of the day that lies days after t, in t's
// location.
func TargetDate(t time.Time, days int) time.Time {
	return now.With(t).BeginningOfDay().AddDate(0, 0, days)
}

// MonthsBetween returns how many calendar months b lies after a, in a's
// location. It is negative when b is in an earlier month.
func MonthsBetween(a, b time.Time) int {
	from := now.With(a).BeginningOfMonth()
	to := now.With(b.In(a.Location())).BeginningOfMonth()
	return (to.Year()*12 + int(to.Month())) - (from.Year()*12 + int(from.Month()))
}

// TimeOnDay returns t's calendar day at the clock time timeStr (HH:MM), in
// t's location.
func TimeOnDay(t time.Time, timeStr string) (time.Time, error) {
	tod, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	day := now.With(t).BeginningOfDay()
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, t.Location()), nil
}

// UntilTime returns how long to wait from t until timeStr on the same day.
// It is zero when that moment has already passed.
func UntilTime(t time.Time, timeStr string) (time.Duration, error) {
	at, err := TimeOnDay(t, timeStr)
	if err != nil {
		return 0, err
	}
	if d := at.Sub(t); d > 0 {
		return d, nil
	}
	return 0, nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
