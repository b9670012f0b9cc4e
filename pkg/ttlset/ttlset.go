// Package ttlset provides a set whose members expire after a fixed TTL.
//
// Expiry is checked lazily on access and can also be forced with Sweep, so
// behavior is deterministic under an injected clock instead of depending on
// background timers.
package ttlset

import (
	"time"
)

// Set holds keys with a per-entry expiry timestamp. It is not safe for
// concurrent use; callers that share a Set across goroutines must serialize
// access themselves.
type Set struct {
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// New creates a Set whose entries live for ttl.
func New(ttl time.Duration) *Set {
	return &Set{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// NewWithClock creates a Set that reads time from now. Used by tests to
// drive expiry deterministically.
func NewWithClock(ttl time.Duration, now func() time.Time) *Set {
	s := New(ttl)
	s.now = now
	return s
}

// Add inserts key, resetting its expiry to now+ttl if already present.
func (s *Set) Add(key string) {
	s.entries[key] = s.now().Add(s.ttl)
}

// Contains reports whether key is present and not expired. An expired entry
// is removed on the spot.
func (s *Set) Contains(key string) bool {
	expiry, ok := s.entries[key]
	if !ok {
		return false
	}
	if !s.now().Before(expiry) {
		delete(s.entries, key)
		return false
	}
	return true
}

// Remove deletes key regardless of its expiry.
func (s *Set) Remove(key string) {
	delete(s.entries, key)
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Set) Sweep() int {
	now := s.now()
	removed := 0
	for key, expiry := range s.entries {
		if !now.Before(expiry) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including any that have expired but
// not yet been swept.
func (s *Set) Len() int {
	return len(s.entries)
}
