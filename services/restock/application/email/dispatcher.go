package email

import (
	"context"
	"fmt"
)

// CompleteFunc marks a session sent once its emails are out.
type CompleteFunc func(ctx context.Context, userID, sessionID string) error

// DispatchResult reports how a batch was handed off.
type DispatchResult struct {
	Sent      int    `json:"sent"`
	Async     bool   `json:"async"`
	Reference string `json:"reference,omitempty"` // workflow id when Async
}

// Dispatcher sends a session's emails and then completes the session, either
// inline or in the background.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, sessionID string, msgs []Rendered) (DispatchResult, error)
}

// SyncDispatcher sends every email in the request goroutine and completes the
// session only if all of them went out.
type SyncDispatcher struct {
	mailer   Mailer
	complete CompleteFunc
}

func NewSyncDispatcher(mailer Mailer, complete CompleteFunc) *SyncDispatcher {
	return &SyncDispatcher{mailer: mailer, complete: complete}
}

func (d *SyncDispatcher) Dispatch(ctx context.Context, userID, sessionID string, msgs []Rendered) (DispatchResult, error) {
	var res DispatchResult
	for _, m := range msgs {
		if err := d.mailer.Send(ctx, m); err != nil {
			return res, fmt.Errorf("send to %s: %w", m.To, err)
		}
		res.Sent++
	}
	if err := d.complete(ctx, userID, sessionID); err != nil {
		return res, fmt.Errorf("complete session: %w", err)
	}
	return res, nil
}
