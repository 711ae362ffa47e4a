package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApply_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);")},
		"002_title.sql": {Data: []byte("ALTER TABLE notes ADD COLUMN title TEXT;")},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// The migrated schema is usable.
	if _, err := db.Exec("INSERT INTO notes (body, title) VALUES ('x', 'y')"); err != nil {
		t.Errorf("migrated schema rejects inserts: %v", err)
	}
}

func TestApply_Idempotent(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
	}

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply ran %d migrations, want 0", applied)
	}
}

func TestApply_FailedMigrationKeepsVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply(nil)
	if err == nil {
		t.Fatal("expected the malformed migration to fail")
	}
	if applied != 1 {
		t.Errorf("applied %d migrations before failing, want 1", applied)
	}

	version, verr := runner.CurrentVersion()
	if verr != nil {
		t.Fatalf("CurrentVersion failed: %v", verr)
	}
	if version != 1 {
		t.Errorf("failed migration moved version to %d, want 1", version)
	}
}

func TestApply_NewerDatabaseRejected(t *testing.T) {
	db := openTestDB(t)
	full := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"002_more.sql": {Data: []byte("ALTER TABLE notes ADD COLUMN body TEXT;")},
	}
	if _, err := NewRunner(db, full).Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// An older binary shipping only migration 001 must refuse this database.
	older := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
	}
	if _, err := NewRunner(db, older).Apply(nil); err == nil {
		t.Error("expected Apply to reject a newer database schema")
	}
	if err := NewRunner(db, older).ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to reject a newer database schema")
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
	}
	runner := NewRunner(db, fsys)

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected an error before migrations run")
	}
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed on an up-to-date schema: %v", err)
	}
}

func TestReadMigrations_BadFilenames(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name string
		file string
	}{
		{"no underscore", "001.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{tc.file: {Data: []byte("SELECT 1;")}}
			if _, err := NewRunner(db, fsys).Apply(nil); err == nil {
				t.Errorf("expected an error for filename %s", tc.file)
			}
		})
	}
}

func TestReadMigrations_DuplicateVersions(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"001_second.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := NewRunner(db, fsys).Apply(nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected a duplicate version error, got %v", err)
	}
}

func TestReadMigrations_IgnoresNonSQLFiles(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"README.md":    {Data: []byte("not a migration")},
	}
	applied, err := NewRunner(db, fsys).Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied %d migrations, want 1", applied)
	}
}
