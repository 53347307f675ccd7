package models

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ghuser/restock/services/restock/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newDraft(t *testing.T) RestockSession {
	t.Helper()
	s, err := NewRestockSession("s1", "u1", "Weekly", fixedNow)
	if err != nil {
		t.Fatalf("NewRestockSession: %v", err)
	}
	return s
}

func item(productID, supplierID string, qty int) RestockItem {
	return RestockItem{
		ProductID:     productID,
		ProductName:   "Product " + productID,
		Quantity:      qty,
		SupplierID:    supplierID,
		SupplierName:  "Supplier " + supplierID,
		SupplierEmail: supplierID + "@example.com",
	}
}

func sameItems(a, b []RestockItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustAdd(t *testing.T, s RestockSession, it RestockItem) RestockSession {
	t.Helper()
	next, err := s.AddItem(it)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return next
}

func sentSession(t *testing.T) RestockSession {
	t.Helper()
	s := mustAdd(t, newDraft(t), item("p1", "sup1", 3))
	s, err := s.GenerateEmails()
	if err != nil {
		t.Fatalf("GenerateEmails: %v", err)
	}
	s, err = s.MarkCompleted()
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	return s
}

func TestNewRestockSession(t *testing.T) {
	t.Run("valid session is an empty draft", func(t *testing.T) {
		s := newDraft(t)
		if s.Status != StatusDraft {
			t.Fatalf("expected draft, got %v", s.Status)
		}
		if len(s.Items) != 0 {
			t.Fatalf("expected no items, got %d", len(s.Items))
		}
		if !s.CreatedAt.Equal(fixedNow) || !s.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("expected timestamps %v, got %v / %v", fixedNow, s.CreatedAt, s.UpdatedAt)
		}
	})

	t.Run("name is trimmed", func(t *testing.T) {
		s, err := NewRestockSession("s1", "u1", "  Monday  ", fixedNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Name != "Monday" {
			t.Fatalf("expected %q, got %q", "Monday", s.Name)
		}
	})

	for _, tc := range []struct{ name, id, user, title string }{
		{"missing id", "", "u1", "x"},
		{"missing user", "s1", "", "x"},
		{"blank name", "s1", "u1", "   "},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRestockSession(tc.id, tc.user, tc.title, fixedNow)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	t.Run("appends and leaves receiver untouched", func(t *testing.T) {
		before := newDraft(t)
		after := mustAdd(t, before, item("p1", "sup1", 2))
		if len(before.Items) != 0 {
			t.Fatalf("receiver mutated: %d items", len(before.Items))
		}
		if len(after.Items) != 1 || after.Items[0].ProductID != "p1" {
			t.Fatalf("unexpected items: %+v", after.Items)
		}
	})

	t.Run("duplicate product fails regardless of quantity and notes", func(t *testing.T) {
		s := mustAdd(t, newDraft(t), item("p1", "sup1", 2))
		dup := item("p1", "sup2", 9)
		dup.Notes = "different"
		_, err := s.AddItem(dup)
		if !errors.Is(err, domain.ErrDuplicateProduct) {
			t.Fatalf("expected ErrDuplicateProduct, got %v", err)
		}
		if err.Error() != `Product "Product p1" is already in this session` {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("non-positive quantity fails", func(t *testing.T) {
		_, err := newDraft(t).AddItem(item("p1", "sup1", 0))
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("appending to a copy does not alias the original", func(t *testing.T) {
		base := mustAdd(t, newDraft(t), item("p1", "sup1", 1))
		a := mustAdd(t, base, item("p2", "sup1", 1))
		b := mustAdd(t, base, item("p3", "sup1", 1))
		if a.Items[1].ProductID != "p2" || b.Items[1].ProductID != "p3" {
			t.Fatalf("sibling sessions share storage: %+v / %+v", a.Items, b.Items)
		}
	})
}

func TestAddThenRemove_RoundTrip(t *testing.T) {
	original := mustAdd(t, mustAdd(t, newDraft(t), item("p1", "sup1", 1)), item("p2", "sup2", 4))
	added := mustAdd(t, original, item("p3", "sup1", 7))
	removed, err := added.RemoveItem("p3")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !sameItems(removed.Items, original.Items) {
		t.Fatalf("expected %+v, got %+v", original.Items, removed.Items)
	}
}

func TestRemoveItem(t *testing.T) {
	t.Run("absent product is a no-op", func(t *testing.T) {
		s := mustAdd(t, newDraft(t), item("p1", "sup1", 1))
		next, err := s.RemoveItem("missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sameItems(next.Items, s.Items) {
			t.Fatalf("expected unchanged items, got %+v", next.Items)
		}
	})

	t.Run("preserves order of remaining items", func(t *testing.T) {
		s := newDraft(t)
		for _, id := range []string{"a", "b", "c"} {
			s = mustAdd(t, s, item(id, "sup1", 1))
		}
		next, err := s.RemoveItem("b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(next.Items) != 2 || next.Items[0].ProductID != "a" || next.Items[1].ProductID != "c" {
			t.Fatalf("unexpected items: %+v", next.Items)
		}
		if len(s.Items) != 3 || s.Items[1].ProductID != "b" {
			t.Fatalf("receiver mutated: %+v", s.Items)
		}
	})
}

func TestUpdateItem(t *testing.T) {
	s := mustAdd(t, newDraft(t), item("p1", "sup1", 1))

	t.Run("applies partial fields", func(t *testing.T) {
		qty := 12
		next, err := s.UpdateItem("p1", ItemPatch{Quantity: &qty})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Items[0].Quantity != 12 {
			t.Fatalf("expected quantity 12, got %d", next.Items[0].Quantity)
		}
		if s.Items[0].Quantity != 1 {
			t.Fatalf("receiver mutated: %d", s.Items[0].Quantity)
		}

		notes := "rush"
		next, err = next.UpdateItem("p1", ItemPatch{Notes: &notes})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Items[0].Notes != "rush" || next.Items[0].Quantity != 12 {
			t.Fatalf("unexpected item: %+v", next.Items[0])
		}
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := s.UpdateItem("missing", ItemPatch{})
		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		zero := 0
		_, err := s.UpdateItem("p1", ItemPatch{Quantity: &zero})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestSetName(t *testing.T) {
	s := newDraft(t)

	next, err := s.SetName("  Friday order ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Name != "Friday order" {
		t.Fatalf("expected trimmed name, got %q", next.Name)
	}
	if s.Name != "Weekly" {
		t.Fatalf("receiver mutated: %q", s.Name)
	}

	if _, err := s.SetName(" \t "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGenerateEmails(t *testing.T) {
	t.Run("empty session", func(t *testing.T) {
		_, err := newDraft(t).GenerateEmails()
		if !errors.Is(err, domain.ErrEmptySession) {
			t.Fatalf("expected ErrEmptySession, got %v", err)
		}
		if err.Error() != "Cannot generate emails for a session with no items" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("draft with items", func(t *testing.T) {
		s := mustAdd(t, newDraft(t), item("p1", "sup1", 1))
		next, err := s.GenerateEmails()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Status != StatusEmailGenerated {
			t.Fatalf("expected email_generated, got %v", next.Status)
		}
		if s.Status != StatusDraft {
			t.Fatalf("receiver mutated: %v", s.Status)
		}
	})

	t.Run("twice fails", func(t *testing.T) {
		s, _ := mustAdd(t, newDraft(t), item("p1", "sup1", 1)).GenerateEmails()
		if _, err := s.GenerateEmails(); !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})
}

func TestMarkCompleted(t *testing.T) {
	t.Run("from draft fails", func(t *testing.T) {
		_, err := mustAdd(t, newDraft(t), item("p1", "sup1", 1)).MarkCompleted()
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("from email_generated succeeds", func(t *testing.T) {
		if s := sentSession(t); s.Status != StatusSent {
			t.Fatalf("expected sent, got %v", s.Status)
		}
	})
}

func TestSentSession_RejectsEveryMutation(t *testing.T) {
	s := sentSession(t)
	snapshot := s.clone()
	qty := 5

	ops := map[string]func() (RestockSession, error){
		"AddItem":        func() (RestockSession, error) { return s.AddItem(item("p9", "sup1", 1)) },
		"AddDuplicate":   func() (RestockSession, error) { return s.AddItem(item("p1", "sup1", 1)) },
		"RemoveItem":     func() (RestockSession, error) { return s.RemoveItem("p1") },
		"UpdateItem":     func() (RestockSession, error) { return s.UpdateItem("p1", ItemPatch{Quantity: &qty}) },
		"SetName":        func() (RestockSession, error) { return s.SetName("renamed") },
		"GenerateEmails": func() (RestockSession, error) { return s.GenerateEmails() },
		"MarkCompleted":  func() (RestockSession, error) { return s.MarkCompleted() },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			_, err := op()
			if !errors.Is(err, domain.ErrSessionClosed) && !errors.Is(err, domain.ErrInvalidState) {
				t.Fatalf("expected ErrSessionClosed or ErrInvalidState, got %v", err)
			}
			if !reflect.DeepEqual(s, snapshot) {
				t.Fatalf("session altered by failed %s", name)
			}
		})
	}
}

func TestEmailGeneratedSession_RejectsItemMutation(t *testing.T) {
	s, err := mustAdd(t, newDraft(t), item("p1", "sup1", 1)).GenerateEmails()
	if err != nil {
		t.Fatalf("GenerateEmails: %v", err)
	}
	if _, err := s.AddItem(item("p2", "sup1", 1)); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.RemoveItem("p1"); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.SetName("still allowed"); err != nil {
		t.Fatalf("rename should be allowed before sending, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	s := mustAdd(t, mustAdd(t, newDraft(t), item("p1", "sup1", 2)), item("p2", "sup1", 5))
	if s.ItemCount() != 2 {
		t.Fatalf("expected 2 items, got %d", s.ItemCount())
	}
	if s.TotalQuantity() != 7 {
		t.Fatalf("expected total 7, got %d", s.TotalQuantity())
	}
}
