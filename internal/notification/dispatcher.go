package notification

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Dispatcher decides whether a notification goes out and by which channel:
// relay push when available, the persisted inbox otherwise. Notifications
// are best-effort: Dispatch never returns an error to the triggering
// action; every failure is logged and absorbed here.
type Dispatcher struct {
	guard    *Guard
	resolver *EndpointResolver
	relay    *RelayClient
	inbox    *Inbox
}

// NewDispatcher wires the dispatch pipeline. The guard is owned by the
// dispatcher and must not be shared.
func NewDispatcher(guard *Guard, resolver *EndpointResolver, relay *RelayClient, inbox *Inbox) *Dispatcher {
	return &Dispatcher{
		guard:    guard,
		resolver: resolver,
		relay:    relay,
		inbox:    inbox,
	}
}

// Dispatch sends payload to recipients. For an accepted key at most one of
// relay attempt or inbox fallback happens; neither does when no recipient
// has a usable endpoint.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []string, payload Payload) {
	key := DedupKey(payload.Kind, payload.CorrelationID(), recipients)
	log := logrus.WithFields(logrus.Fields{
		"kind": payload.Kind,
		"key":  key,
	})

	if !d.guard.ShouldDispatch(key) {
		log.Debug("duplicate dispatch suppressed")
		return
	}
	defer d.guard.Release(key)

	endpoints, err := d.resolver.Resolve(ctx, recipients)
	if err != nil {
		log.WithError(err).Error("endpoint resolution failed")
		endpoints = nil
	}
	if len(endpoints) == 0 {
		log.Debug("no endpoints resolved, nothing to deliver")
		return
	}

	resolved := make([]string, 0, len(endpoints))
	tokens := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		resolved = append(resolved, e.UserID)
		tokens = append(tokens, e.Token)
	}

	if d.relay.Configured() {
		err := d.relay.Send(ctx, tokens, payload)
		if err == nil {
			log.WithField("tokens", len(tokens)).Info("notification relayed")
			return
		}
		log.WithError(err).Warn("relay delivery failed, falling back to inbox")
	}

	if err := d.inbox.Store(ctx, resolved, payload); err != nil {
		log.WithError(err).Error("inbox fallback write failed, notification dropped")
		return
	}
	log.WithField("recipients", len(resolved)).Info("notification stored to inbox")
}
