package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/trackaexpense/notify/internal/docstore"
)

// UsersCollection is where user documents (including push tokens) live.
const UsersCollection = "users"

// EndpointResolver looks up the current push endpoint for a set of users.
type EndpointResolver struct {
	store docstore.Store
}

// NewEndpointResolver creates a resolver over the given store.
func NewEndpointResolver(store docstore.Store) *EndpointResolver {
	return &EndpointResolver{store: store}
}

// Resolve returns one endpoint per user that has a usable token. Users
// without a token are silently skipped; when a user has several records
// only the most recently updated one survives; identical raw tokens are
// returned once. An empty result is not an error, it means nothing to
// deliver.
func (r *EndpointResolver) Resolve(ctx context.Context, identifiers []string) ([]EndpointRecord, error) {
	ids := canonicalRecipients(identifiers)
	if len(ids) == 0 {
		return nil, nil
	}

	docs, err := r.store.Query(ctx, UsersCollection, "email", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user endpoints: %w", err)
	}

	latest := make(map[string]EndpointRecord)
	for _, doc := range docs {
		token, _ := doc.Data["fcmToken"].(string)
		if token == "" {
			continue
		}
		email, _ := doc.Data["email"].(string)
		updated := parseDocTime(doc.Data["lastTokenUpdate"])

		current, ok := latest[email]
		if !ok || updated.After(current.LastUpdated) {
			latest[email] = EndpointRecord{UserID: email, Token: token, LastUpdated: updated}
		}
	}

	seenTokens := make(map[string]bool, len(latest))
	records := make([]EndpointRecord, 0, len(latest))
	for _, id := range ids {
		rec, ok := latest[id]
		if !ok || seenTokens[rec.Token] {
			continue
		}
		seenTokens[rec.Token] = true
		records = append(records, rec)
	}
	return records, nil
}

// parseDocTime reads an RFC 3339 string field; absent or malformed values
// become the zero time, which always loses the "latest record" comparison.
func parseDocTime(v any) time.Time {
	s, _ := v.(string)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
