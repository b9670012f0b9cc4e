package notification

import (
	"sync"
	"time"

	"github.com/trackaexpense/notify/pkg/ttlset"
)

// DefaultDedupTTL is how long a dispatched key suppresses repeats.
const DefaultDedupTTL = 5 * time.Minute

// Guard suppresses duplicate dispatches of the same dedup key. It tracks
// keys currently being dispatched and keys sent within the trailing TTL
// window. The guard is owned exclusively by the Dispatcher; nothing else
// mutates it.
type Guard struct {
	mu           sync.Mutex
	inProgress   *ttlset.Set
	recentlySent *ttlset.Set
}

// NewGuard creates a Guard with the given suppression window.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		inProgress:   ttlset.New(ttl),
		recentlySent: ttlset.New(ttl),
	}
}

// NewGuardWithClock creates a Guard reading time from now, for tests.
func NewGuardWithClock(ttl time.Duration, now func() time.Time) *Guard {
	return &Guard{
		inProgress:   ttlset.NewWithClock(ttl, now),
		recentlySent: ttlset.NewWithClock(ttl, now),
	}
}

// ShouldDispatch reports whether a dispatch for key may proceed. On
// admission the key is inserted into both the in-progress and
// recently-sent sets before returning, so two near-simultaneous calls for
// the same key can never both pass: the check and the insert happen under
// one lock. recentlySent is marked at admission time rather than
// completion time for the same reason.
func (g *Guard) ShouldDispatch(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.recentlySent.Contains(key) {
		return false
	}
	if g.inProgress.Contains(key) {
		return false
	}

	g.inProgress.Add(key)
	g.recentlySent.Add(key)
	return true
}

// Release removes key from the in-progress set once its dispatch has
// finished, successfully or not. The recently-sent entry stays until TTL
// expiry so immediate re-sends remain suppressed.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inProgress.Remove(key)
}

// Clear drops key from both sets, re-admitting it immediately.
func (g *Guard) Clear(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inProgress.Remove(key)
	g.recentlySent.Remove(key)
}
