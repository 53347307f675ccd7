package restock

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFS_ContainsOrderedMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{
		"00001_create_suppliers.sql",
		"00002_create_products.sql",
		"00003_create_restock_sessions.sql",
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d migrations, got %v", len(want), names)
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, name)
		}
		body, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
			t.Errorf("%s: expected goose Up and Down sections", name)
		}
	}
}
