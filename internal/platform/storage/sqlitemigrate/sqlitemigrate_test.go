package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRunsMigrationsOnce(t *testing.T) {
	t.Parallel()

	sqlDB := openTempDB(t)
	migrations := fstest.MapFS{
		"0001_widgets.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);"),
		},
	}

	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := sqlDB.Exec("INSERT INTO widgets (name) VALUES ('one')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}

	// A second pass must skip the already-applied file.
	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("reapply migrations: %v", err)
	}

	var applied int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied migrations = %d, want 1", applied)
	}
}

func TestApplyOrdersFilesLexically(t *testing.T) {
	t.Parallel()

	sqlDB := openTempDB(t)
	migrations := fstest.MapFS{
		"0002_add_column.sql": &fstest.MapFile{
			Data: []byte("ALTER TABLE widgets ADD COLUMN color TEXT;"),
		},
		"0001_widgets.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY);"),
		},
	}

	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := sqlDB.Exec("INSERT INTO widgets (color) VALUES ('red')"); err != nil {
		t.Fatalf("insert using second migration column: %v", err)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	t.Parallel()

	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected nil db error")
	}
}

func openTempDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("close sqlite db: %v", err)
		}
	})
	return sqlDB
}
