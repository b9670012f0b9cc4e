package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreQueryByField(t *testing.T) {
	s := NewMemoryStore()
	s.Seed("users", "u1", map[string]any{"email": "a@x.com"})
	s.Seed("users", "u2", map[string]any{"email": "b@x.com"})
	s.Seed("users", "u3", map[string]any{"email": "c@x.com"})

	docs, err := s.Query(context.Background(), "users", "email", []string{"a@x.com", "c@x.com"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemoryStoreBatchPutIsAtomicallyVisible(t *testing.T) {
	s := NewMemoryStore()

	ids, err := s.BatchPut(context.Background(), []Write{
		{Collection: "inbox/a", Data: map[string]any{"title": "one", "createdAt": "2025-01-01T00:00:00Z"}},
		{Collection: "inbox/a", Data: map[string]any{"title": "two", "createdAt": "2025-01-02T00:00:00Z"}},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	docs, err := s.List(context.Background(), "inbox/a", "createdAt", 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "two", docs[0].Data["title"], "list is descending by order field")
}

func TestMemoryStoreListLimit(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 5; i++ {
		s.Seed("c", string(rune('a'+i)), map[string]any{"createdAt": "2025-01-01T00:00:00Z"})
	}

	docs, err := s.List(context.Background(), "c", "createdAt", 3)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update(context.Background(), "c", "missing", map[string]any{"read": true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteAll(t *testing.T) {
	s := NewMemoryStore()
	s.Seed("c", "d1", map[string]any{"x": "1"})
	s.Seed("other", "d2", map[string]any{"x": "2"})

	require.NoError(t, s.DeleteAll(context.Background(), "c"))

	docs, err := s.List(context.Background(), "c", "x", 10)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = s.List(context.Background(), "other", "x", 10)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
