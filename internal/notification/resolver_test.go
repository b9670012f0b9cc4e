package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackaexpense/notify/internal/docstore"
)

func seedUser(store *docstore.MemoryStore, id, email, token string, updated time.Time) {
	data := map[string]any{"email": email}
	if token != "" {
		data["fcmToken"] = token
	}
	if !updated.IsZero() {
		data["lastTokenUpdate"] = updated.UTC().Format(time.RFC3339Nano)
	}
	store.Seed(UsersCollection, id, data)
}

func TestResolveReturnsEndpoints(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(store, "u1", "a@x.com", "token-a", time.Now())
	seedUser(store, "u2", "b@x.com", "token-b", time.Now())

	r := NewEndpointResolver(store)
	records, err := r.Resolve(context.Background(), []string{"a@x.com", "b@x.com"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	tokens := []string{records[0].Token, records[1].Token}
	assert.ElementsMatch(t, []string{"token-a", "token-b"}, tokens)
}

func TestResolveSkipsUsersWithoutToken(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(store, "u1", "a@x.com", "token-a", time.Now())
	seedUser(store, "u2", "b@x.com", "", time.Time{})

	r := NewEndpointResolver(store)
	records, err := r.Resolve(context.Background(), []string{"a@x.com", "b@x.com"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a@x.com", records[0].UserID)
}

func TestResolveKeepsLatestRecordPerUser(t *testing.T) {
	store := docstore.NewMemoryStore()
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	seedUser(store, "u1-old", "a@x.com", "token-old", older)
	seedUser(store, "u1-new", "a@x.com", "token-new", newer)

	r := NewEndpointResolver(store)
	records, err := r.Resolve(context.Background(), []string{"a@x.com"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "token-new", records[0].Token)
}

func TestResolveDeduplicatesIdenticalTokens(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(store, "u1", "a@x.com", "shared-token", time.Now())
	seedUser(store, "u2", "b@x.com", "shared-token", time.Now())

	r := NewEndpointResolver(store)
	records, err := r.Resolve(context.Background(), []string{"a@x.com", "b@x.com"})

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestResolveEmptyIsNotAnError(t *testing.T) {
	store := docstore.NewMemoryStore()

	r := NewEndpointResolver(store)
	records, err := r.Resolve(context.Background(), []string{"nobody@x.com"})

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResolveIsIdempotent(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(store, "u1", "a@x.com", "token-a", time.Now())

	r := NewEndpointResolver(store)
	first, err := r.Resolve(context.Background(), []string{"a@x.com"})
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), []string{"a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
