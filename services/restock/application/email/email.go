// Package email turns supplier email drafts into deliverable messages and
// hands them to a mailer.
package email

import (
	"context"

	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/services/restock/domain/models"
)

// Rendered is a supplier email ready to be sent.
type Rendered struct {
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	To           string `json:"to"`
	ReplyTo      string `json:"reply_to,omitempty"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

// Renderer produces the subject and body for a draft. Implementations may be
// templates or an external text-generation service.
type Renderer interface {
	Render(ctx context.Context, draft models.EmailDraft) (Rendered, error)
}

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, msg Rendered) error
}

// RenderAll renders every draft in order, stopping at the first failure.
func RenderAll(ctx context.Context, r Renderer, drafts []models.EmailDraft) ([]Rendered, error) {
	out := make([]Rendered, 0, len(drafts))
	for _, d := range drafts {
		msg, err := r.Render(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

// LogMailer writes outgoing mail to the structured log instead of an SMTP relay.
type LogMailer struct {
	log logger.Logger
}

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Rendered) error {
	m.log.InfoContext(ctx, "supplier email sent",
		"supplier_id", msg.SupplierID,
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.Body),
	)
	return nil
}
