package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

// Query returns documents in collection whose field matches any of values.
func (s *MemoryStore) Query(_ context.Context, collection, field string, values []string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(values))
	for _, v := range values {
		wanted[v] = true
	}

	var docs []Document
	for id, data := range s.collections[collection] {
		if v, ok := data[field].(string); ok && wanted[v] {
			docs = append(docs, Document{ID: id, Data: copyData(data)})
		}
	}
	return docs, nil
}

// List returns up to limit documents ordered by orderField descending.
func (s *MemoryStore) List(_ context.Context, collection, orderField string, limit int) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for id, data := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: copyData(data)})
	}
	sort.Slice(docs, func(i, j int) bool {
		a, _ := docs[i].Data[orderField].(string)
		b, _ := docs[j].Data[orderField].(string)
		return a > b
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// BatchPut creates every write atomically under the store lock.
func (s *MemoryStore) BatchPut(_ context.Context, writes []Write) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(writes))
	for _, w := range writes {
		id := uuid.New().String()
		if s.collections[w.Collection] == nil {
			s.collections[w.Collection] = make(map[string]map[string]any)
		}
		s.collections[w.Collection][id] = copyData(w.Data)
		ids = append(ids, id)
	}
	return ids, nil
}

// Update merges fields into an existing document.
func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// DeleteAll removes every document in collection.
func (s *MemoryStore) DeleteAll(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, collection)
	return nil
}

// Seed inserts a document with a fixed id, bypassing id generation. Test
// helper for collections whose ids matter (e.g. user documents).
func (s *MemoryStore) Seed(collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	s.collections[collection][id] = copyData(data)
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
