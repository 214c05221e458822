package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if v, err := SchemaVersion(db); err != nil || v != "" {
		t.Fatalf("expected empty version on fresh db, got %q %v", v, err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if v, err := SchemaVersion(db); err != nil || v != "0001_documents" {
		t.Fatalf("unexpected version after up: %q %v", v, err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if v, err := SchemaVersion(db); err != nil || v != "" {
		t.Fatalf("expected no version after down, got %q %v", v, err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	// applied versions are skipped
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeat migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.PutDocument(t.Context(), Document{
		Key:       KeyProfile,
		Body:      []byte(`{"wallet":3}`),
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetDocument(t.Context(), KeyProfile)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if string(got.Body) != `{"wallet":3}` {
		t.Fatalf("unexpected body after roundtrip: %q", got.Body)
	}
}
