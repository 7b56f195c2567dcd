package migration

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_SortsAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;\n")},
		"README.md":      {Data: []byte("not a migration")},
		"v3__lower.sql":  {Data: []byte("SELECT 3;")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed SQL, got %q", migs[0].SQL)
	}
	if migs[0].Name != "first" || migs[0].Checksum == "" {
		t.Fatalf("unexpected migration %+v", migs[0])
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := Load(src); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__a.sql": {Data: []byte("  \n")}}
	if _, err := Load(src); err == nil {
		t.Fatalf("expected error for empty migration")
	}
}

func TestPendingMigrations(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Checksum: "x"},
		{Version: 2, Name: "b", Checksum: "y"},
	}

	out, err := pendingMigrations(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "x"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Version != 2 {
		t.Fatalf("expected only version 2 pending, got %+v", out)
	}

	_, err = pendingMigrations(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "changed"}})
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	migs, err := Load(src)
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	if !strings.Contains(migs[0].SQL, "CREATE TABLE IF NOT EXISTS jobs") {
		t.Fatalf("expected first migration to create jobs table")
	}
}

func TestRun_NilDB(t *testing.T) {
	if err := (Runner{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
