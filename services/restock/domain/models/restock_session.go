package models

import (
	"strings"
	"time"

	"github.com/ghuser/restock/services/restock/domain"
)

// RestockSession is the aggregate for a restock cart. It is a value: every
// operation returns a new session and leaves the receiver untouched, so callers
// always hold an explicit before/after pair.
//
// Items holds at most one entry per ProductID, in insertion order.
type RestockSession struct {
	ID        string
	UserID    string // tenant scope: always filter by this in queries
	Name      string
	Status    Status
	Items     []RestockItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRestockSession constructs an empty draft session.
func NewRestockSession(id, userID, name string, now time.Time) (RestockSession, error) {
	if id == "" {
		return RestockSession{}, domain.NewValidationError("id", "Session id must be set")
	}
	if userID == "" {
		return RestockSession{}, domain.NewValidationError("user_id", "Session user id must be set")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return RestockSession{}, domain.NewValidationError("name", "Session name is required")
	}
	return RestockSession{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Status:    StatusDraft,
		Items:     []RestockItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsEditable reports whether items may still be added, removed or updated.
func (s RestockSession) IsEditable() bool {
	return s.Status == StatusDraft
}

// HasProduct reports whether the session already has a line for productID.
func (s RestockSession) HasProduct(productID string) bool {
	_, ok := s.FindItem(productID)
	return ok
}

// FindItem returns the line item for productID.
func (s RestockSession) FindItem(productID string) (RestockItem, bool) {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return RestockItem{}, false
}

// ItemCount returns the number of line items.
func (s RestockSession) ItemCount() int {
	return len(s.Items)
}

// TotalQuantity sums the quantities of every line item.
func (s RestockSession) TotalQuantity() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

// AddItem appends item to a draft session.
func (s RestockSession) AddItem(item RestockItem) (RestockSession, error) {
	if !s.IsEditable() {
		return s, domain.NewSessionClosedError(s.Status)
	}
	if item.Quantity <= 0 {
		return s, domain.NewValidationError("quantity", "Quantity must be greater than 0")
	}
	if s.HasProduct(item.ProductID) {
		return s, domain.NewDuplicateProductError(item.ProductName)
	}
	next := s.clone()
	next.Items = append(next.Items, item)
	return next, nil
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (s RestockSession) RemoveItem(productID string) (RestockSession, error) {
	if !s.IsEditable() {
		return s, domain.NewSessionClosedError(s.Status)
	}
	next := s.clone()
	next.Items = next.Items[:0]
	for _, it := range s.Items {
		if it.ProductID != productID {
			next.Items = append(next.Items, it)
		}
	}
	return next, nil
}

// UpdateItem applies patch to the line for productID.
func (s RestockSession) UpdateItem(productID string, patch ItemPatch) (RestockSession, error) {
	if !s.IsEditable() {
		return s, domain.NewSessionClosedError(s.Status)
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return s, domain.NewValidationError("quantity", "Quantity must be greater than 0")
	}
	idx := -1
	for i, it := range s.Items {
		if it.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, domain.NewItemNotFoundError(productID)
	}
	next := s.clone()
	next.Items[idx] = patch.apply(next.Items[idx])
	return next, nil
}

// SetName renames the session. The name is stored trimmed.
func (s RestockSession) SetName(name string) (RestockSession, error) {
	if s.Status.IsTerminal() {
		return s, domain.NewSessionClosedError(s.Status)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, domain.NewValidationError("name", "Session name is required")
	}
	next := s.clone()
	next.Name = name
	return next, nil
}

// GenerateEmails moves a non-empty draft to StatusEmailGenerated.
func (s RestockSession) GenerateEmails() (RestockSession, error) {
	if !s.Status.CanTransitionTo(StatusEmailGenerated) {
		return s, domain.NewInvalidStateError(s.Status, StatusEmailGenerated)
	}
	if len(s.Items) == 0 {
		return s, domain.NewEmptySessionError()
	}
	next := s.clone()
	next.Status = StatusEmailGenerated
	return next, nil
}

// MarkCompleted moves an email_generated session to StatusSent.
func (s RestockSession) MarkCompleted() (RestockSession, error) {
	if !s.Status.CanTransitionTo(StatusSent) {
		return s, domain.NewInvalidStateError(s.Status, StatusSent)
	}
	next := s.clone()
	next.Status = StatusSent
	return next, nil
}

// Touch returns a copy with UpdatedAt set to at.
func (s RestockSession) Touch(at time.Time) RestockSession {
	next := s.clone()
	next.UpdatedAt = at
	return next
}

// clone copies the session with its own Items backing array.
func (s RestockSession) clone() RestockSession {
	next := s
	next.Items = make([]RestockItem, len(s.Items), len(s.Items)+1)
	copy(next.Items, s.Items)
	return next
}
