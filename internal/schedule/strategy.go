package schedule

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Strategy decides which of the available slots is booked.
type Strategy string

const (
	// RowFirst keeps FindAvailable's order: the first court in document order
	// that has any acceptable hour wins, then the caller's hour preference
	// within that court.
	RowFirst Strategy = "row-first"
	// HourFirst prefers the caller's first acceptable hour on any court, then
	// the next hour, keeping document order among courts.
	HourFirst Strategy = "hour-first"
)

// Strategies lists every supported ordering.
var Strategies = []Strategy{RowFirst, HourFirst}

// ParseStrategy returns the strategy named s.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.Newf("unknown strategy %q (want %q or %q)", s, RowFirst, HourFirst)
}

// Decode implements envconfig.Decoder.
func (s *Strategy) Decode(value string) error {
	st, err := ParseStrategy(value)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Order returns a copy of slots sorted by the strategy. hours is the caller's
// preference list that produced slots.
func (s Strategy) Order(slots []Slot, hours []int) []Slot {
	ordered := slices.Clone(slots)
	if s != HourFirst {
		return ordered
	}

	rank := make(map[int]int, len(hours))
	for i, h := range hours {
		if _, ok := rank[h]; !ok {
			rank[h] = i
		}
	}
	slices.SortStableFunc(ordered, func(a, b Slot) int {
		return rank[a.Hour] - rank[b.Hour]
	})
	return ordered
}

// Pick returns the slot to book, or ErrNoAvailability when slots is empty.
func Pick(slots []Slot, hours []int, strategy Strategy) (Slot, error) {
	ordered := strategy.Order(slots, hours)
	if len(ordered) == 0 {
		return Slot{}, errors.WithStack(ErrNoAvailability)
	}
	return ordered[0], nil
}
