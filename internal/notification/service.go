package notification

import (
	"context"
)

// Service is the entry point the HTTP layer talks to. Dispatching is
// fire-and-forget: the triggering user action never waits on, or fails
// because of, notification delivery.
type Service struct {
	dispatcher *Dispatcher
	inbox      *Inbox
}

// NewService creates the notification service.
func NewService(dispatcher *Dispatcher, inbox *Inbox) *Service {
	return &Service{dispatcher: dispatcher, inbox: inbox}
}

// DispatchAsync hands payload to the dispatcher on a fresh goroutine with
// its own context, so the caller's request lifecycle does not bound
// delivery or fallback writes.
func (s *Service) DispatchAsync(recipients []string, payload Payload) {
	go s.dispatcher.Dispatch(context.Background(), recipients, payload)
}

// Dispatch runs the pipeline synchronously. Tests and background jobs use
// this; request handlers use DispatchAsync.
func (s *Service) Dispatch(ctx context.Context, recipients []string, payload Payload) {
	s.dispatcher.Dispatch(ctx, recipients, payload)
}

// List returns the user's inbox, most recent first.
func (s *Service) List(ctx context.Context, userID string) ([]InboxEntry, error) {
	return s.inbox.List(ctx, userID)
}

// UnreadCount returns how many listed entries are unread.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	entries, err := s.inbox.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one inbox entry as read.
func (s *Service) MarkRead(ctx context.Context, userID, entryID string) error {
	return s.inbox.MarkRead(ctx, userID, entryID)
}

// MarkAllRead marks every unread inbox entry as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.inbox.MarkAllRead(ctx, userID)
}

// ClearAll removes every inbox entry for the user.
func (s *Service) ClearAll(ctx context.Context, userID string) error {
	return s.inbox.ClearAll(ctx, userID)
}
