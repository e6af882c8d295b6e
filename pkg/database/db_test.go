package database

import (
	"path/filepath"
	"testing"
)

func TestConnectSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.db")

	db, err := Connect(Options{Driver: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		t.Fatalf("select: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected 1, got %d", one)
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := Connect(Options{Driver: "oracle"}); err == nil {
		t.Fatalf("expected unknown driver to fail")
	}
}
