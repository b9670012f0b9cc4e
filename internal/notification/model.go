package notification

import (
	"sort"
	"strings"
	"time"
)

// Kind identifies what a notification is about. Values match the wire
// constants the mobile clients switch on when routing a tap.
type Kind string

const (
	KindSplitCreated Kind = "split_created"
	KindSplitUpdated Kind = "split_updated"
	KindSplitDeleted Kind = "split_deleted"
	KindSplitInvite  Kind = "split_invite"
	KindSettlement   Kind = "settlement_made"
	KindGroupCreated Kind = "group_created"
	KindGroupUpdated Kind = "group_updated"
	KindGroupDeleted Kind = "group_deleted"
	KindUserJoined   Kind = "user_joined_group"
	KindUserLeft     Kind = "user_left_group"
	KindReminder     Kind = "reminder"
	KindFun          Kind = "fun_notification"
	KindAchievement  Kind = "achievement"
	KindTest         Kind = "test"
)

// Priority hints at delivery urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Payload is one notification, immutable once constructed. Data values are
// strings because the push transport serializes everything as strings.
type Payload struct {
	Kind     Kind              `json:"type"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Icon     string            `json:"icon,omitempty"`
	Priority Priority          `json:"priority,omitempty"`
}

// CorrelationID returns the domain entity id this payload concerns, used to
// scope deduplication. Splits take precedence over groups; payloads with
// neither (broadcasts) return "".
func (p Payload) CorrelationID() string {
	if id := p.Data["splitId"]; id != "" {
		return id
	}
	return p.Data["groupId"]
}

// EndpointRecord is a user's current push endpoint.
type EndpointRecord struct {
	UserID      string
	Token       string
	LastUpdated time.Time
}

// InboxEntry is a notification persisted to a user's inbox, either as push
// fallback or as history.
type InboxEntry struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Icon      string            `json:"icon,omitempty"`
	Priority  Priority          `json:"priority,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Read      bool              `json:"read"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
}

// DedupKey derives the stable key that identifies one logical dispatch:
// kind, correlation id (may be empty, which coarsens the key to
// kind+recipients), and the canonical recipient list. Parts are joined
// with "|", which appears in none of them, so distinct inputs cannot
// collapse into the same key.
func DedupKey(kind Kind, correlationID string, recipients []string) string {
	parts := []string{string(kind)}
	if correlationID != "" {
		parts = append(parts, correlationID)
	}
	parts = append(parts, strings.Join(canonicalRecipients(recipients), ","))
	return strings.Join(parts, "|")
}

// canonicalRecipients dedupes, drops empties, and sorts so that the same
// set always hashes the same regardless of caller order.
func canonicalRecipients(recipients []string) []string {
	seen := make(map[string]bool, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
