// Package sqlite implements the document collection on an embedded SQLite
// database, for single-host deployments that want durable local storage.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Chidesigner/Expense-tracker/internal/docstore"
)

// Collection is a document collection backed by a SQLite table.
type Collection struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at dbPath and runs
// pending migrations.
func Open(dbPath string) (*Collection, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Collection{db: db}, nil
}

// Close closes the underlying database.
func (c *Collection) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Insert implements docstore.Collection.
func (c *Collection) Insert(ctx context.Context, doc docstore.Document) (docstore.Document, error) {
	doc.ID = uuid.NewString()
	doc.CreatedAt = time.Now().UTC()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO expenses (id, owner_id, title, amount_cents, category, date, notes, created_at, arrival)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(arrival), 0) + 1 FROM expenses))`,
		doc.ID, doc.OwnerID, doc.Title, doc.AmountCents, doc.Category, doc.Date, doc.Notes,
		doc.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return docstore.Document{}, fmt.Errorf("insert expense: %w", err)
	}
	return doc, nil
}

// Get implements docstore.Collection.
func (c *Collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	var doc docstore.Document
	var createdAt string
	err := c.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, amount_cents, category, date, notes, created_at
		FROM expenses WHERE id = ?`, id).
		Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.AmountCents,
			&doc.Category, &doc.Date, &doc.Notes, &createdAt)
	if err == sql.ErrNoRows {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("get expense %s: %w", id, err)
	}
	doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return doc, nil
}

// QueryByOwner implements docstore.Collection. Rows come back in arrival
// order; presentation ordering is the caller's concern.
func (c *Collection) QueryByOwner(ctx context.Context, ownerID string) ([]docstore.Document, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, owner_id, title, amount_cents, category, date, notes, created_at
		FROM expenses WHERE owner_id = ? ORDER BY arrival`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query expenses by owner: %w", err)
	}
	defer rows.Close()

	var out []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.AmountCents,
			&doc.Category, &doc.Date, &doc.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}

// Update implements docstore.Collection.
func (c *Collection) Update(ctx context.Context, id string, fields docstore.Fields) error {
	if err := docstore.ValidateFields(fields); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for name, value := range fields {
		sets = append(sets, name+" = ?")
		args = append(args, value)
	}
	args = append(args, id)

	res, err := c.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update expense %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// Delete implements docstore.Collection.
func (c *Collection) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
