package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	tables := []string{
		"symptom_categories",
		"symptoms",
		"life_stages",
		"responses",
		"response_symptoms",
		"specialists",
		"symptom_specialist_map",
		"symptom_cooccurrences",
	}
	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			var name string
			err := db.Conn().QueryRow(
				`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
			if err != nil {
				t.Fatalf("table %s missing after migration: %v", table, err)
			}
		})
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// reopening an already-migrated database must not fail
	db, err = Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	db.Close()
}

func TestWithTxCommit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO symptom_categories (category_name, display_order, icon) VALUES (?, ?, ?)`,
			"Test", 1, "x")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	var count int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM symptom_categories`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d categories after commit, want 1", count)
	}
}

func TestWithTxRollbackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO symptom_categories (category_name, display_order, icon) VALUES (?, ?, ?)`,
			"Test", 1, "x"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	var count int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM symptom_categories`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("got %d categories after rollback, want 0", count)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Conn().Exec(
		`INSERT INTO symptoms (symptom_name, category_id, description) VALUES (?, ?, ?)`,
		"Orphan", 999, "")
	if err == nil {
		t.Fatal("expected foreign key violation inserting symptom with unknown category")
	}
}
