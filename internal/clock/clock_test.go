package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClockSleepAdvances(t *testing.T) {
	start := time.Date(2026, 3, 30, 6, 59, 0, 0, time.UTC)
	c := NewMockClock(start)

	c.Sleep(45 * time.Second)
	c.Sleep(0)

	assert.Equal(t, start.Add(45*time.Second), c.Now())
	assert.Equal(t, []time.Duration{45 * time.Second, 0}, c.Slept())
}

func TestMockClockSetAndAdd(t *testing.T) {
	c := NewMockClock(time.Time{})
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.Set(at)
	c.Add(time.Hour)

	assert.Equal(t, at.Add(time.Hour), c.Now())
	assert.Empty(t, c.Slept())
}

func TestRealClockNow(t *testing.T) {
	c := NewRealClock()
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before))
}
