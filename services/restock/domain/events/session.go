package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicSessionCreated is the Watermill topic published when a session is first saved.
	TopicSessionCreated = "restock.session.created"

	// TopicSessionStatusChanged is published whenever a saved session changes status.
	TopicSessionStatusChanged = "restock.session.status_changed"
)

// SessionCreatedEvent is published after a new RestockSession is persisted.
type SessionCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SessionStatusChangedEvent is published when a save moves a session to a new status.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicSessionStatusChanged).
type SessionStatusChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
