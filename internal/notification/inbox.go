package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trackaexpense/notify/internal/docstore"
)

// InboxLimit caps how many entries a single List call returns.
const InboxLimit = 50

// Inbox persists per-user notification lists: the fallback channel when
// push delivery is unavailable and the history the app shows on demand.
type Inbox struct {
	store docstore.Store
	now   func() time.Time
}

// NewInbox creates an inbox adapter over the given store.
func NewInbox(store docstore.Store) *Inbox {
	return &Inbox{store: store, now: time.Now}
}

// NewInboxWithClock creates an inbox reading time from now, for tests.
func NewInboxWithClock(store docstore.Store, now func() time.Time) *Inbox {
	return &Inbox{store: store, now: now}
}

// inboxCollection addresses a user's notification subcollection. Email
// identifiers have "@" replaced so they are usable as document keys.
func inboxCollection(userID string) string {
	return "users/" + sanitizeUserID(userID) + "/notifications"
}

func sanitizeUserID(userID string) string {
	return strings.ReplaceAll(userID, "@", "_at_")
}

// Store writes one unread entry per recipient as a single atomic batch.
func (i *Inbox) Store(ctx context.Context, recipients []string, payload Payload) error {
	recipients = canonicalRecipients(recipients)
	if len(recipients) == 0 {
		return nil
	}

	createdAt := i.now().UTC().Format(time.RFC3339Nano)
	writes := make([]docstore.Write, 0, len(recipients))
	for _, recipient := range recipients {
		data := make(map[string]any, len(payload.Data))
		for k, v := range payload.Data {
			data[k] = v
		}
		writes = append(writes, docstore.Write{
			Collection: inboxCollection(recipient),
			Data: map[string]any{
				"type":      string(payload.Kind),
				"title":     payload.Title,
				"body":      payload.Body,
				"data":      data,
				"icon":      payload.Icon,
				"priority":  string(payload.Priority),
				"createdAt": createdAt,
				"read":      false,
			},
		})
	}

	if _, err := i.store.BatchPut(ctx, writes); err != nil {
		return fmt.Errorf("failed to store inbox entries: %w", err)
	}
	return nil
}

// List returns the user's entries, most recent first, capped at InboxLimit.
func (i *Inbox) List(ctx context.Context, userID string) ([]InboxEntry, error) {
	docs, err := i.store.List(ctx, inboxCollection(userID), "createdAt", InboxLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox entries: %w", err)
	}

	entries := make([]InboxEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, entryFromDoc(doc))
	}
	return entries, nil
}

// MarkRead flips one entry to read and stamps readAt. Listing still
// returns read entries; only ClearAll removes them.
func (i *Inbox) MarkRead(ctx context.Context, userID, entryID string) error {
	err := i.store.Update(ctx, inboxCollection(userID), entryID, map[string]any{
		"read":   true,
		"readAt": i.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to mark inbox entry read: %w", err)
	}
	return nil
}

// MarkAllRead flips every unread entry to read, including any beyond the
// List cap. Already-read entries keep their original readAt.
func (i *Inbox) MarkAllRead(ctx context.Context, userID string) error {
	collection := inboxCollection(userID)
	docs, err := i.store.List(ctx, collection, "createdAt", 0)
	if err != nil {
		return fmt.Errorf("failed to list inbox entries: %w", err)
	}

	readAt := i.now().UTC().Format(time.RFC3339Nano)
	for _, doc := range docs {
		if read, _ := doc.Data["read"].(bool); read {
			continue
		}
		if err := i.store.Update(ctx, collection, doc.ID, map[string]any{
			"read":   true,
			"readAt": readAt,
		}); err != nil {
			return fmt.Errorf("failed to mark inbox entry read: %w", err)
		}
	}
	return nil
}

// ClearAll removes every entry for the user.
func (i *Inbox) ClearAll(ctx context.Context, userID string) error {
	if err := i.store.DeleteAll(ctx, inboxCollection(userID)); err != nil {
		return fmt.Errorf("failed to clear inbox: %w", err)
	}
	return nil
}

func entryFromDoc(doc docstore.Document) InboxEntry {
	entry := InboxEntry{
		ID:       doc.ID,
		Kind:     Kind(stringField(doc.Data, "type")),
		Title:    stringField(doc.Data, "title"),
		Body:     stringField(doc.Data, "body"),
		Icon:     stringField(doc.Data, "icon"),
		Priority: Priority(stringField(doc.Data, "priority")),
	}
	entry.CreatedAt = parseDocTime(doc.Data["createdAt"])
	entry.Read, _ = doc.Data["read"].(bool)
	if readAt := parseDocTime(doc.Data["readAt"]); !readAt.IsZero() {
		entry.ReadAt = &readAt
	}
	if raw, ok := doc.Data["data"].(map[string]any); ok && len(raw) > 0 {
		data := make(map[string]string, len(raw))
		for k, v := range raw {
			data[k] = fmt.Sprintf("%v", v)
		}
		entry.Data = data
	}
	return entry
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
