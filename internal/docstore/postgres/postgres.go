// Package postgres implements the document collection on PostgreSQL for
// shared deployments.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Chidesigner/Expense-tracker/internal/docstore"
)

// Collection is a document collection backed by a PostgreSQL table.
type Collection struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
    id UUID PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    category TEXT NOT NULL,
    date TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    arrival BIGSERIAL
);
CREATE INDEX IF NOT EXISTS idx_expenses_owner ON expenses (owner_id, arrival);`

// Open connects to the database named by connStr and ensures the schema
// exists.
func Open(connStr string) (*Collection, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure expenses table: %w", err)
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
		INSERT INTO expenses (id, owner_id, title, amount_cents, category, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.OwnerID, doc.Title, doc.AmountCents, doc.Category, doc.Date, doc.Notes, doc.CreatedAt)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("insert expense: %w", err)
	}
	return doc, nil
}

// Get implements docstore.Collection.
func (c *Collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	var doc docstore.Document
	err := c.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, amount_cents, category, date, notes, created_at
		FROM expenses WHERE id = $1`, id).
		Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.AmountCents,
			&doc.Category, &doc.Date, &doc.Notes, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("get expense %s: %w", id, err)
	}
	return doc, nil
}

// QueryByOwner implements docstore.Collection.
func (c *Collection) QueryByOwner(ctx context.Context, ownerID string) ([]docstore.Document, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, owner_id, title, amount_cents, category, date, notes, created_at
		FROM expenses WHERE owner_id = $1 ORDER BY arrival`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query expenses by owner: %w", err)
	}
	defer rows.Close()

	var out []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.AmountCents,
			&doc.Category, &doc.Date, &doc.Notes, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
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
		sets = append(sets, fmt.Sprintf("%s = $%d", name, len(args)+1))
		args = append(args, value)
	}
	args = append(args, id)

	res, err := c.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE expenses SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)), args...)
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
	res, err := c.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
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
