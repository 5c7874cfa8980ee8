package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
)

func TestStoreConfigPrefersYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  type: sqlite\n  file: data.db\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config := &Config{
		DatabaseURL:  "root:password@tcp(localhost:3306)/app",
		DatabaseType: "mysql",
		ConfigFile:   path,
	}

	storeType, connStr := config.storeConfig()
	if storeType != db.StoreTypeSQLite {
		t.Errorf("store type = %q, want sqlite", storeType)
	}
	if connStr != "data.db" {
		t.Errorf("conn = %q, want data.db", connStr)
	}
}

func TestStoreConfigFallsBackToEnv(t *testing.T) {
	config := &Config{
		DatabaseURL:  "root:password@tcp(localhost:3306)/app",
		DatabaseType: "mysql",
		ConfigFile:   filepath.Join(t.TempDir(), "missing.yaml"),
	}

	storeType, connStr := config.storeConfig()
	if storeType != db.StoreTypeMySQL {
		t.Errorf("store type = %q, want mysql", storeType)
	}
	if connStr != config.DatabaseURL {
		t.Errorf("conn = %q, want env DSN", connStr)
	}
}
