package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Chidesigner/Expense-tracker/internal/config"
	"github.com/Chidesigner/Expense-tracker/internal/log"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func TestOpenMemory(t *testing.T) {
	col, closeCol, err := Open(&config.Config{DataBackend: "memory"}, quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeCol()
	if col == nil {
		t.Fatal("expected a collection")
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "expenses.db"),
	}
	col, closeCol, err := Open(cfg, quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeCol()

	docs, err := col.QueryByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, _, err := Open(&config.Config{DataBackend: "sheets"}, quietLogger()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
