// Package backend selects and opens the persistence collaborator named by
// the configuration.
package backend

import (
	"fmt"

	"github.com/Chidesigner/Expense-tracker/internal/config"
	"github.com/Chidesigner/Expense-tracker/internal/docstore"
	"github.com/Chidesigner/Expense-tracker/internal/docstore/memory"
	"github.com/Chidesigner/Expense-tracker/internal/docstore/postgres"
	"github.com/Chidesigner/Expense-tracker/internal/docstore/sqlite"
	"github.com/Chidesigner/Expense-tracker/internal/log"
)

// Type identifies a persistence backend.
type Type string

const (
	Memory   Type = "memory"
	SQLite   Type = "sqlite"
	Postgres Type = "postgres"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Postgres:
		return true
	}
	return false
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{Memory, SQLite, Postgres}
}

// Open creates the collection named by cfg.DataBackend. The returned close
// function releases whatever the backend holds; for memory it is a no-op.
func Open(cfg *config.Config, logger *log.Logger) (docstore.Collection, func() error, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, nil, fmt.Errorf("unknown backend %q, valid types: %v", cfg.DataBackend, Types())
	}

	logger = logger.WithComponent(log.ComponentDocstore)
	switch t {
	case SQLite:
		col, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", log.FieldBackend, string(t), "path", cfg.SQLiteDBPath)
		return col, col.Close, nil

	case Postgres:
		col, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres backend: %w", err)
		}
		logger.Info("Initialized postgres backend", log.FieldBackend, string(t))
		return col, col.Close, nil

	default:
		logger.Info("Initialized memory backend", log.FieldBackend, string(t))
		return memory.New(), func() error { return nil }, nil
	}
}
