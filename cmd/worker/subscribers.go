package main

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/restock/pkg/app"
	"github.com/ghuser/restock/pkg/cache"
	"github.com/ghuser/restock/pkg/events"
	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/pkg/telemetry"
	restockEvents "github.com/ghuser/restock/services/restock/domain/events"
)

// sessionEvictor drops a cached session so the next read goes to Postgres.
type sessionEvictor interface {
	Delete(ctx context.Context, userID, sessionID string) error
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	var ttl = cache.DefaultSessionCacheTTL
	if a.Config != nil {
		ttl = a.Config.SessionCacheTTL
	}
	sessionCache := cache.NewSessionCache(a.Redis, ttl)

	handlers := map[string]events.Handler{
		restockEvents.TopicSessionCreated:       handleSessionCreated(a.Logger),
		restockEvents.TopicSessionStatusChanged: handleSessionStatusChanged(sessionCache, a.Logger),
	}

	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, h)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(ctx, err, map[string]string{"topic": topic})
			}
		}()
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

func handleSessionCreated(log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[restockEvents.SessionCreatedEvent](msg)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "restock session created",
			"session_id", evt.SessionID, "user_id", evt.UserID, "event_id", evt.EventID)
		return nil
	}
}

// handleSessionStatusChanged evicts the cached copy of the session. The API
// writes through on save, but a session completed by the dispatch workflow
// may have been saved by a process without Redis access.
// Handlers must be idempotent; EventBus retries up to 3 times on failure.
func handleSessionStatusChanged(c sessionEvictor, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[restockEvents.SessionStatusChangedEvent](msg)
		if err != nil {
			return err
		}
		if err := c.Delete(ctx, evt.UserID, evt.SessionID); err != nil {
			return err
		}
		log.InfoContext(ctx, "restock session status changed",
			"session_id", evt.SessionID,
			"user_id", evt.UserID,
			"from", evt.FromStatus,
			"to", evt.ToStatus,
			"items", evt.ItemCount,
		)
		return nil
	}
}
