package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Chidesigner/Expense-tracker/internal/docstore"
)

func openTestCollection(t *testing.T) *Collection {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func doc(owner, title string) docstore.Document {
	return docstore.Document{
		OwnerID:     owner,
		Title:       title,
		AmountCents: 100,
		Category:    "Food",
		Date:        "2024-01-10",
	}
}

func TestInsertAssignsIdentity(t *testing.T) {
	c := openTestCollection(t)
	inserted, err := c.Insert(context.Background(), doc("a", "Lunch"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if inserted.ID == "" {
		t.Fatal("expected assigned id")
	}
	if inserted.CreatedAt.IsZero() {
		t.Fatal("expected assigned created_at")
	}
}

func TestGetRoundtrip(t *testing.T) {
	c := openTestCollection(t)
	ctx := context.Background()
	inserted, _ := c.Insert(ctx, doc("a", "Lunch"))

	got, err := c.Get(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Lunch" || got.OwnerID != "a" || got.AmountCents != 100 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(inserted.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, inserted.CreatedAt)
	}

	if _, err := c.Get(ctx, "nope"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryByOwnerScopesAndKeepsArrivalOrder(t *testing.T) {
	c := openTestCollection(t)
	ctx := context.Background()
	c.Insert(ctx, doc("a", "first"))
	c.Insert(ctx, doc("b", "other owner"))
	c.Insert(ctx, doc("a", "second"))

	docs, err := c.QueryByOwner(ctx, "a")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].Title != "first" || docs[1].Title != "second" {
		t.Fatalf("arrival order broken: %s, %s", docs[0].Title, docs[1].Title)
	}
}

func TestUpdate(t *testing.T) {
	c := openTestCollection(t)
	ctx := context.Background()
	inserted, _ := c.Insert(ctx, doc("a", "Lunch"))

	err := c.Update(ctx, inserted.ID, docstore.Fields{
		docstore.FieldTitle:       "Dinner",
		docstore.FieldAmountCents: int64(2500),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := c.Get(ctx, inserted.ID)
	if got.Title != "Dinner" || got.AmountCents != 2500 {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ID != inserted.ID || !got.CreatedAt.Equal(inserted.CreatedAt) {
		t.Fatal("identity fields changed")
	}
}

func TestUpdateRejectsImmutableFields(t *testing.T) {
	c := openTestCollection(t)
	ctx := context.Background()
	inserted, _ := c.Insert(ctx, doc("a", "Lunch"))

	err := c.Update(ctx, inserted.ID, docstore.Fields{"owner_id": "b"})
	if !errors.Is(err, docstore.ErrImmutableField) {
		t.Fatalf("expected ErrImmutableField, got %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	c := openTestCollection(t)
	err := c.Update(context.Background(), "nope", docstore.Fields{docstore.FieldTitle: "x"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	c := openTestCollection(t)
	ctx := context.Background()
	inserted, _ := c.Insert(ctx, doc("a", "Lunch"))

	if err := c.Delete(ctx, inserted.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docs, _ := c.QueryByOwner(ctx, "a")
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
	if err := c.Delete(ctx, inserted.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.db")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	inserted, _ := c.Insert(context.Background(), doc("a", "Lunch"))
	c.Close()

	// reopening runs migrations again and must find them already applied
	c2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer c2.Close()
	if _, err := c2.Get(context.Background(), inserted.ID); err != nil {
		t.Fatalf("data lost across reopen: %v", err)
	}
}
