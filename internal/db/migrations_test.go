package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"gorm.io/gorm"
)

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "stash-idempotent.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstVersions := loadMigrationVersions(t, first)
	firstSQLDB, err := first.DB()
	if err != nil {
		t.Fatalf("first sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	second := openSQLiteForTest(t, databasePath)
	secondVersions := loadMigrationVersions(t, second)

	if len(firstVersions) == 0 {
		t.Fatal("expected at least one applied migration")
	}
	if !reflect.DeepEqual(firstVersions, secondVersions) {
		t.Fatalf("expected migration records unchanged between boots, before=%v after=%v", firstVersions, secondVersions)
	}
}

func TestLoadEmbeddedMigrationsOrdersByVersion(t *testing.T) {
	files := fstest.MapFS{
		"0010_later.sql":  {Data: []byte("SELECT 1;")},
		"0002_second.sql": {Data: []byte("SELECT 2;")},
		"README.md":       {Data: []byte("ignored")},
	}

	migrations, err := loadEmbeddedMigrations(files)
	if err != nil {
		t.Fatalf("loadEmbeddedMigrations() unexpected error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected two migrations, got %d", len(migrations))
	}
	if migrations[0].Name != "0002_second.sql" || migrations[1].Name != "0010_later.sql" {
		t.Fatalf("unexpected migration order: %s, %s", migrations[0].Name, migrations[1].Name)
	}
}

func TestLoadEmbeddedMigrationsRejectsDuplicateVersions(t *testing.T) {
	files := fstest.MapFS{
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"0001_b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadEmbeddedMigrations(files); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestSplitSQLStatementsDropsBlankParts(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INT);\n\n ;CREATE TABLE b (id INT);")
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %#v", statements)
	}
}

func loadMigrationVersions(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version`).Scan(&versions).Error; err != nil {
		t.Fatalf("load migration versions: %v", err)
	}
	return versions
}
