package services

import (
	"fmt"

	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
)

// Sender identifies the store placing the order. All fields are optional.
type Sender struct {
	StoreName   string
	SenderName  string
	SenderEmail string
}

// GenerateEmailDrafts groups the items of an email_generated session by
// supplier, one draft per SupplierID. Drafts appear in the order each supplier
// is first seen in session.Items; items keep their session order.
func (s *SessionService) GenerateEmailDrafts(session models.RestockSession, sender Sender) ([]models.EmailDraft, error) {
	if session.Status != models.StatusEmailGenerated {
		return nil, &domain.Error{
			Kind:    domain.ErrInvalidState,
			Message: fmt.Sprintf("Emails can only be drafted for a session in %s status (status: %s)", models.StatusEmailGenerated, session.Status),
		}
	}
	return GroupItemsBySupplier(session.Items, sender), nil
}

// GroupItemsBySupplier builds one draft per distinct SupplierID in first-seen order.
func GroupItemsBySupplier(items []models.RestockItem, sender Sender) []models.EmailDraft {
	drafts := make([]models.EmailDraft, 0)
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.SupplierID]
		if !ok {
			i = len(drafts)
			index[it.SupplierID] = i
			drafts = append(drafts, models.EmailDraft{
				SupplierID:    it.SupplierID,
				SupplierName:  it.SupplierName,
				SupplierEmail: it.SupplierEmail,
				StoreName:     sender.StoreName,
				SenderName:    sender.SenderName,
				SenderEmail:   sender.SenderEmail,
			})
		}
		drafts[i].Items = append(drafts[i].Items, models.EmailDraftItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Notes:       it.Notes,
		})
	}
	return drafts
}

// SessionsByStatus partitions sessions into one bucket per status.
type SessionsByStatus struct {
	Draft          []models.RestockSession
	EmailGenerated []models.RestockSession
	Sent           []models.RestockSession
}

// Len returns the total number of sessions across all buckets.
func (g SessionsByStatus) Len() int {
	return len(g.Draft) + len(g.EmailGenerated) + len(g.Sent)
}

// GroupSessionsByStatus partitions sessions by status, preserving relative
// order inside each bucket. Buckets are never nil. The input is not modified.
// Sessions with a status outside the known set are dropped.
func GroupSessionsByStatus(sessions []models.RestockSession) SessionsByStatus {
	out := SessionsByStatus{
		Draft:          []models.RestockSession{},
		EmailGenerated: []models.RestockSession{},
		Sent:           []models.RestockSession{},
	}
	for _, s := range sessions {
		switch s.Status {
		case models.StatusDraft:
			out.Draft = append(out.Draft, s)
		case models.StatusEmailGenerated:
			out.EmailGenerated = append(out.EmailGenerated, s)
		case models.StatusSent:
			out.Sent = append(out.Sent, s)
		}
	}
	return out
}
