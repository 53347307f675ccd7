package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/restock/migrations/restock"
	"github.com/ghuser/restock/pkg/config"
	"github.com/ghuser/restock/pkg/database"
	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/pkg/migrator"
	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/postgres/db"
)

func TestItemsJSON(t *testing.T) {
	items := []models.RestockItem{
		{ProductID: "p-1", ProductName: "Flour", Quantity: 10, SupplierID: "s-1", SupplierName: "Acme", SupplierEmail: "a@acme.com"},
		{ProductID: "p-2", ProductName: "Salt", Quantity: 2, SupplierID: "s-1", SupplierName: "Acme", SupplierEmail: "a@acme.com", Notes: "coarse"},
	}
	raw, err := encodeItems(items)
	if err != nil {
		t.Fatalf("encodeItems: %v", err)
	}

	var fields []map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields[0]["notes"]; ok {
		t.Error("expected empty notes to be omitted")
	}
	if fields[1]["supplier_email"] != "a@acme.com" {
		t.Errorf("expected supplier_email field, got %v", fields[1])
	}

	back, err := decodeItems(raw)
	if err != nil {
		t.Fatalf("decodeItems: %v", err)
	}
	if len(back) != 2 || back[0] != items[0] || back[1] != items[1] {
		t.Fatalf("expected %+v, got %+v", items, back)
	}
}

func TestDecodeItems_Empty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`[]`)} {
		items, err := decodeItems(raw)
		if err != nil {
			t.Fatalf("decodeItems(%q): %v", raw, err)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", items)
		}
	}
}

func TestRowToSession_RejectsUnknownStatus(t *testing.T) {
	_, err := rowToSession(db.RestockSession{ID: "s-1", Status: "archived", Items: json.RawMessage(`[]`)})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestRepositoriesIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	if err := migrator.RunMigrations(url, restock.FS); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := database.NewPool(ctx, url, logger.New(&config.Config{LogLevel: "error"}))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()

	sessions := NewSessionRepository(pool, nil)
	products := NewProductRepository(pool)
	suppliers := NewSupplierRepository(pool)

	userID := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	sup, err := models.NewSupplier(uuid.NewString(), userID, "Acme", "a@acme.com", "", "", now)
	if err != nil {
		t.Fatalf("NewSupplier: %v", err)
	}
	prod, err := models.NewProduct(uuid.NewString(), userID, "Flour", 10, sup.ID, "", now)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	t.Run("catalog round trip", func(t *testing.T) {
		if err := suppliers.Save(ctx, sup); err != nil {
			t.Fatalf("save supplier: %v", err)
		}
		if err := products.Save(ctx, prod); err != nil {
			t.Fatalf("save product: %v", err)
		}
		got, err := products.FindByID(ctx, userID, prod.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.DefaultSupplierID != sup.ID || got.DefaultQuantity != 10 {
			t.Fatalf("unexpected product: %+v", got)
		}
		if _, err := products.FindByID(ctx, uuid.NewString(), prod.ID); !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound for another user, got %v", err)
		}
	})

	t.Run("duplicate product name conflicts", func(t *testing.T) {
		dup := prod
		dup.ID = uuid.NewString()
		if err := products.Save(ctx, dup); !errors.Is(err, domain.ErrSessionConflict) {
			t.Fatalf("expected ErrSessionConflict, got %v", err)
		}
	})

	t.Run("session lifecycle", func(t *testing.T) {
		s, err := models.NewRestockSession(uuid.NewString(), userID, "Weekly", now)
		if err != nil {
			t.Fatalf("NewRestockSession: %v", err)
		}
		if err := sessions.Save(ctx, s); err != nil {
			t.Fatalf("insert: %v", err)
		}
		s, err = s.AddItem(models.NewRestockItem(prod, sup, 4, "fine"))
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		s, err = s.GenerateEmails()
		if err != nil {
			t.Fatalf("GenerateEmails: %v", err)
		}
		if err := sessions.Save(ctx, s.Touch(now.Add(time.Minute))); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := sessions.FindByID(ctx, userID, s.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Status != models.StatusEmailGenerated || got.ItemCount() != 1 || got.Items[0].Notes != "fine" {
			t.Fatalf("unexpected session: %+v", got)
		}

		list, err := sessions.FindByUserID(ctx, userID)
		if err != nil || len(list) != 1 {
			t.Fatalf("expected 1 session, got %d (%v)", len(list), err)
		}

		stolen := s
		stolen.UserID = uuid.NewString()
		if err := sessions.Save(ctx, stolen); !errors.Is(err, domain.ErrSessionConflict) {
			t.Fatalf("expected ErrSessionConflict for foreign id, got %v", err)
		}

		if err := sessions.Delete(ctx, userID, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := sessions.Delete(ctx, userID, s.ID); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}
