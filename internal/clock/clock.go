// Package clock abstracts wall time so the sign-in gate can be tested
// without sleeping.
package clock

import "time"

// Clock reports the current time and blocks for a duration.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the system clock.
type RealClock struct{}

// NewRealClock returns the system clock.
func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock never blocks; Sleep advances the current time and records the
// requested duration.
type MockClock struct {
	currentTime time.Time
	slept       []time.Duration
}

// NewMockClock returns a MockClock reading t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	if d > 0 {
		c.currentTime = c.currentTime.Add(d)
	}
}

// Set moves the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

// Add moves the clock forward by d without recording a sleep.
func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// Slept returns every duration passed to Sleep, in call order.
func (c *MockClock) Slept() []time.Duration {
	return c.slept
}
