package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestGuardAdmitsFirstDispatch(t *testing.T) {
	g := NewGuard(DefaultDedupTTL)
	assert.True(t, g.ShouldDispatch("k"))
}

func TestGuardSuppressesWhileInProgress(t *testing.T) {
	g := NewGuard(DefaultDedupTTL)

	assert.True(t, g.ShouldDispatch("k"))
	assert.False(t, g.ShouldDispatch("k"))
}

func TestGuardSuppressesAfterReleaseUntilTTL(t *testing.T) {
	clock := newManualClock()
	g := NewGuardWithClock(5*time.Minute, clock.Now)

	assert.True(t, g.ShouldDispatch("k"))
	g.Release("k")

	// in-progress entry is gone, but recentlySent still suppresses
	assert.False(t, g.ShouldDispatch("k"))

	clock.Advance(5 * time.Minute)
	assert.True(t, g.ShouldDispatch("k"), "key must be re-admitted after the TTL window")
}

func TestGuardClearReadmitsImmediately(t *testing.T) {
	g := NewGuard(DefaultDedupTTL)

	assert.True(t, g.ShouldDispatch("k"))
	g.Clear("k")
	assert.True(t, g.ShouldDispatch("k"))
}

func TestGuardAdmitsExactlyOnceUnderContention(t *testing.T) {
	g := NewGuard(DefaultDedupTTL)

	const n = 32
	admitted := make(chan bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admitted <- g.ShouldDispatch("k")
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for ok := range admitted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count, "only one concurrent caller may win admission")
}
