package services

import (
	"errors"
	"testing"

	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
)

func readySession(t *testing.T, svc *SessionService, reqs ...AddItemRequest) models.RestockSession {
	t.Helper()
	s := newSession(t, svc)
	var products []models.Product
	var suppliers []models.Supplier
	for _, r := range reqs {
		res, err := svc.AddItemToSession(s, r, products, suppliers)
		if err != nil {
			t.Fatalf("AddItemToSession(%s): %v", r.ProductName, err)
		}
		s = res.Session
		if res.NewProduct != nil {
			products = append(products, *res.NewProduct)
		}
		if res.NewSupplier != nil {
			suppliers = append(suppliers, *res.NewSupplier)
		}
	}
	ready, err := svc.MarkSessionReadyForEmails(s)
	if err != nil {
		t.Fatalf("MarkSessionReadyForEmails: %v", err)
	}
	return ready
}

// Scenario 5.
func TestGenerateEmailDrafts_TwoSuppliers(t *testing.T) {
	svc := newTestService()
	s := readySession(t, svc,
		AddItemRequest{ProductName: "Flour", Quantity: 10, SupplierName: "Acme", SupplierEmail: "a@acme.com"},
		AddItemRequest{ProductName: "Milk", Quantity: 6, SupplierName: "Dairy Co", SupplierEmail: "orders@dairy.co"},
	)

	drafts, err := svc.GenerateEmailDrafts(s, Sender{StoreName: "Corner Shop", SenderName: "Sam", SenderEmail: "sam@corner.shop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].SupplierName != "Acme" || len(drafts[0].Items) != 1 || drafts[0].Items[0].ProductName != "Flour" {
		t.Fatalf("unexpected first draft: %+v", drafts[0])
	}
	if drafts[1].SupplierName != "Dairy Co" || len(drafts[1].Items) != 1 || drafts[1].Items[0].ProductName != "Milk" {
		t.Fatalf("unexpected second draft: %+v", drafts[1])
	}
	for _, d := range drafts {
		if d.StoreName != "Corner Shop" || d.SenderName != "Sam" || d.SenderEmail != "sam@corner.shop" {
			t.Fatalf("sender not propagated: %+v", d)
		}
	}
}

func TestGenerateEmailDrafts_FirstSeenOrderAndTotals(t *testing.T) {
	svc := newTestService()
	s := readySession(t, svc,
		AddItemRequest{ProductName: "Yeast", Quantity: 2, SupplierName: "Zeta", SupplierEmail: "z@zeta.io"},
		AddItemRequest{ProductName: "Flour", Quantity: 10, SupplierName: "Acme", SupplierEmail: "a@acme.com"},
		AddItemRequest{ProductName: "Salt", Quantity: 3, SupplierName: "Zeta", SupplierEmail: "z@zeta.io", Notes: "coarse"},
		AddItemRequest{ProductName: "Sugar", Quantity: 4, SupplierName: "Acme", SupplierEmail: "a@acme.com"},
	)

	drafts, err := svc.GenerateEmailDrafts(s, Sender{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].SupplierName != "Zeta" || drafts[1].SupplierName != "Acme" {
		t.Fatalf("expected first-seen supplier order Zeta, Acme; got %s, %s", drafts[0].SupplierName, drafts[1].SupplierName)
	}
	if drafts[0].Items[0].ProductName != "Yeast" || drafts[0].Items[1].ProductName != "Salt" || drafts[0].Items[1].Notes != "coarse" {
		t.Fatalf("unexpected Zeta items: %+v", drafts[0].Items)
	}

	want := map[string]int{}
	for _, it := range s.Items {
		want[it.SupplierID] += it.Quantity
	}
	for _, d := range drafts {
		if d.TotalQuantity() != want[d.SupplierID] {
			t.Fatalf("supplier %s: expected total %d, got %d", d.SupplierID, want[d.SupplierID], d.TotalQuantity())
		}
	}
}

func TestGenerateEmailDrafts_RequiresEmailGenerated(t *testing.T) {
	svc := newTestService()
	if _, err := svc.GenerateEmailDrafts(newSession(t, svc), Sender{}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for draft, got %v", err)
	}

	sent, err := svc.MarkSessionCompleted(readySession(t, svc, flourRequest()))
	if err != nil {
		t.Fatalf("MarkSessionCompleted: %v", err)
	}
	if _, err := svc.GenerateEmailDrafts(sent, Sender{}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for sent, got %v", err)
	}
}

func TestGroupSessionsByStatus(t *testing.T) {
	mk := func(id string, st models.Status) models.RestockSession {
		return models.RestockSession{ID: id, Status: st}
	}

	t.Run("empty input", func(t *testing.T) {
		g := GroupSessionsByStatus(nil)
		if g.Len() != 0 {
			t.Fatalf("expected no sessions, got %d", g.Len())
		}
		if g.Draft == nil || g.EmailGenerated == nil || g.Sent == nil {
			t.Fatal("buckets must not be nil")
		}
	})

	t.Run("partition preserves relative order", func(t *testing.T) {
		in := []models.RestockSession{
			mk("a", models.StatusSent),
			mk("b", models.StatusDraft),
			mk("c", models.StatusEmailGenerated),
			mk("d", models.StatusDraft),
			mk("e", models.StatusSent),
		}
		g := GroupSessionsByStatus(in)

		ids := func(ss []models.RestockSession) string {
			out := ""
			for _, s := range ss {
				out += s.ID
			}
			return out
		}
		if got := ids(g.Draft); got != "bd" {
			t.Fatalf("draft: expected bd, got %s", got)
		}
		if got := ids(g.EmailGenerated); got != "c" {
			t.Fatalf("email_generated: expected c, got %s", got)
		}
		if got := ids(g.Sent); got != "ae" {
			t.Fatalf("sent: expected ae, got %s", got)
		}
		if g.Len() != len(in) {
			t.Fatalf("expected %d sessions, got %d", len(in), g.Len())
		}
		if in[0].ID != "a" || in[1].ID != "b" {
			t.Fatal("input modified")
		}
	})

	t.Run("unknown status is dropped", func(t *testing.T) {
		in := []models.RestockSession{mk("a", models.StatusDraft), mk("x", models.Status(7))}
		g := GroupSessionsByStatus(in)
		if g.Len() != 1 {
			t.Fatalf("expected 1 session, got %d", g.Len())
		}
		if len(g.Draft) != 1 || g.Draft[0].ID != "a" {
			t.Fatalf("unexpected draft bucket: %+v", g.Draft)
		}
	})
}
