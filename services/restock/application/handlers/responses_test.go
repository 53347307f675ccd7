package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghuser/restock/pkg/auth"
	"github.com/ghuser/restock/services/restock/application/email"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
	"github.com/ghuser/restock/services/restock/domain/models"
	domainsvcs "github.com/ghuser/restock/services/restock/domain/services"
)

func TestUserID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		if _, ok := userID(w, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
			t.Fatal("expected failure without a user in context")
		}
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(auth.WithUserID(r.Context(), "u-1"))
		id, ok := userID(httptest.NewRecorder(), r)
		if !ok || id != "u-1" {
			t.Fatalf("expected u-1, got %q (%v)", id, ok)
		}
	})
}

func TestToSessionResponse(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s := models.RestockSession{
		ID: "s-1", Name: "Weekly", Status: models.StatusEmailGenerated,
		Items: []models.RestockItem{
			{ProductID: "p-1", ProductName: "Flour", Quantity: 10, SupplierID: "a"},
			{ProductID: "p-2", ProductName: "Salt", Quantity: 2, SupplierID: "a"},
		},
		CreatedAt: at, UpdatedAt: at,
	}
	got := toSessionResponse(s)
	if got.Status != "email_generated" || got.ItemCount != 2 || got.TotalQuantity != 12 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.Items[1].ProductName != "Salt" {
		t.Fatalf("expected item order preserved, got %+v", got.Items)
	}
}

func TestToSessionListResponse_EmptyBucketsAreArrays(t *testing.T) {
	got := toSessionListResponse(domainsvcs.GroupSessionsByStatus(nil))
	if got.Draft == nil || got.EmailGenerated == nil || got.Sent == nil {
		t.Fatal("expected empty slices so JSON renders [] not null")
	}
}

func TestToEmailsResponse(t *testing.T) {
	res := appsvcs.EmailsResult{
		Drafts: []models.EmailDraft{{
			SupplierID: "a",
			Items:      []models.EmailDraftItem{{ProductName: "Flour", Quantity: 10}, {ProductName: "Salt", Quantity: 2}},
		}},
		Emails: []email.Rendered{{SupplierID: "a", To: "a@acme.com", Subject: "Restock order"}},
	}
	got := toEmailsResponse(res)
	if len(got.Emails) != 1 || got.Emails[0].ItemCount != 2 || got.Emails[0].TotalQuantity != 12 {
		t.Fatalf("unexpected emails: %+v", got.Emails)
	}
}
