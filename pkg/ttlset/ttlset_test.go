package ttlset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestSetContainsWithinTTL(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(5*time.Minute, clock.Now)

	s.Add("k")
	assert.True(t, s.Contains("k"))

	clock.Advance(4 * time.Minute)
	assert.True(t, s.Contains("k"))
}

func TestSetExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(5*time.Minute, clock.Now)

	s.Add("k")
	clock.Advance(5 * time.Minute)

	assert.False(t, s.Contains("k"))
	assert.Equal(t, 0, s.Len(), "expired entry should be dropped on access")
}

func TestAddResetsExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(5*time.Minute, clock.Now)

	s.Add("k")
	clock.Advance(4 * time.Minute)
	s.Add("k")
	clock.Advance(4 * time.Minute)

	assert.True(t, s.Contains("k"))
}

func TestRemove(t *testing.T) {
	s := New(5 * time.Minute)
	s.Add("k")
	s.Remove("k")
	assert.False(t, s.Contains("k"))
}

func TestSweep(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(5*time.Minute, clock.Now)

	s.Add("old")
	clock.Advance(3 * time.Minute)
	s.Add("fresh")
	clock.Advance(2 * time.Minute)

	removed := s.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("fresh"))
}
