package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackaexpense/notify/internal/docstore"
	mw "github.com/trackaexpense/notify/pkg/middleware"
)

func newTestAPI(t *testing.T) (*docstore.MemoryStore, http.Handler) {
	t.Helper()

	store := docstore.NewMemoryStore()
	guard := NewGuard(DefaultDedupTTL)
	inbox := NewInbox(store)
	dispatcher := NewDispatcher(guard, NewEndpointResolver(store), NewRelayClient("", 0), inbox)
	handler := NewHandler(NewService(dispatcher, inbox))

	return store, mw.Identity(handler.Routes())
}

func doRequest(h http.Handler, method, path, email string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if email != "" {
		req.Header.Set("X-User-Email", email)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListRequiresIdentity(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListReturnsInboxEntries(t *testing.T) {
	store, h := newTestAPI(t)
	inbox := NewInbox(store)
	require.NoError(t, inbox.Store(context.Background(), []string{"a@x.com"}, testPayload()))

	rec := doRequest(h, http.MethodGet, "/", "a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    []InboxEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, KindSplitCreated, resp.Data[0].Kind)
}

func TestUnreadCount(t *testing.T) {
	store, h := newTestAPI(t)
	inbox := NewInbox(store)
	ctx := context.Background()
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, testPayload()))
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, Reminder(ReminderGeneral)))

	entries, err := inbox.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, inbox.MarkRead(ctx, "a@x.com", entries[0].ID))

	rec := doRequest(h, http.MethodGet, "/unread-count", "a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data["unread_count"])
}

func TestMarkReadEndpoint(t *testing.T) {
	store, h := newTestAPI(t)
	inbox := NewInbox(store)
	ctx := context.Background()
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, testPayload()))

	entries, err := inbox.List(ctx, "a@x.com")
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/"+entries[0].ID+"/read", "a@x.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	entries, err = inbox.List(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, entries[0].Read)
}

func TestMarkReadUnknownEntryReturns404(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(h, http.MethodPost, "/missing/read", "a@x.com", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkAllReadEndpoint(t *testing.T) {
	store, h := newTestAPI(t)
	inbox := NewInbox(store)
	ctx := context.Background()
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, testPayload()))
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, Reminder(ReminderGeneral)))

	rec := doRequest(h, http.MethodPost, "/read-all", "a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := inbox.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.Read)
	}
}

func TestClearAllEndpoint(t *testing.T) {
	store, h := newTestAPI(t)
	inbox := NewInbox(store)
	ctx := context.Background()
	require.NoError(t, inbox.Store(ctx, []string{"a@x.com"}, testPayload()))

	rec := doRequest(h, http.MethodDelete, "/", "a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := inbox.List(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSplitEventAccepted(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(h, http.MethodPost, "/events/split", "a@x.com", SplitEventRequest{
		Action:     "created",
		Split:      SplitDTO{ID: "S1", Title: "Dinner", Amount: "120"},
		Group:      GroupDTO{ID: "G1", Name: "Trip", Members: []string{"a@x.com", "b@x.com"}},
		ActorName:  "Jane",
		ActorEmail: "a@x.com",
	})
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSplitEventRejectsUnknownAction(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(h, http.MethodPost, "/events/split", "a@x.com", SplitEventRequest{Action: "exploded"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDirectEventRequiresRecipient(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(h, http.MethodPost, "/events/reminder", "a@x.com", DirectEventRequest{Topic: "expense"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReminderEventDeliversToInbox(t *testing.T) {
	store, h := newTestAPI(t)
	seedUser(store, "u1", "b@x.com", "token-b", time.Now())

	rec := doRequest(h, http.MethodPost, "/events/reminder", "a@x.com", DirectEventRequest{
		Recipient: "b@x.com",
		Topic:     "expense",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	// dispatch runs on its own goroutine; poll the inbox briefly
	inbox := NewInbox(store)
	deadline := time.Now().Add(2 * time.Second)
	for {
		entries, err := inbox.List(context.Background(), "b@x.com")
		require.NoError(t, err)
		if len(entries) == 1 {
			assert.Equal(t, KindReminder, entries[0].Kind)
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("reminder never reached the inbox")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
