package relay

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/trackaexpense/notify/pkg/ttlset"
)

// DefaultIdempotencyTTL is the relay's own suppression window. It is
// independent of the client-side dedup guard: the two run in different
// processes with different lifetimes and must not be collapsed.
const DefaultIdempotencyTTL = 5 * time.Minute

// IdempotencyGuard remembers recently handled batches so that client
// retries or crash-resend loops do not push the same notification twice.
type IdempotencyGuard struct {
	mu   sync.Mutex
	seen *ttlset.Set
}

// NewIdempotencyGuard creates a guard with the given window.
func NewIdempotencyGuard(ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{seen: ttlset.New(ttl)}
}

// NewIdempotencyGuardWithClock creates a guard reading time from now, for
// tests.
func NewIdempotencyGuardWithClock(ttl time.Duration, now func() time.Time) *IdempotencyGuard {
	return &IdempotencyGuard{seen: ttlset.NewWithClock(ttl, now)}
}

// FirstSeen reports whether this key is new within the window, marking it
// seen in the same critical section.
func (g *IdempotencyGuard) FirstSeen(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen.Contains(key) {
		return false
	}
	g.seen.Add(key)
	return true
}

// BatchKey derives the idempotency key for one send request: title, body,
// and the sorted token list, so token order does not defeat the check.
func BatchKey(title, body string, tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return title + "_" + body + "_" + strings.Join(sorted, ",")
}
