// Package memory provides an in-memory document collection, used as the
// default backend and as the collaborator double in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Chidesigner/Expense-tracker/internal/docstore"
)

// Collection is a mutex-guarded in-memory document collection. Documents
// keep arrival order per owner, like a real collection scan would.
type Collection struct {
	mu    sync.Mutex
	docs  map[string]docstore.Document
	order []string // ids in arrival order

	now func() time.Time
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{
		docs: make(map[string]docstore.Document),
		now:  time.Now,
	}
}

// NewWithClock creates a collection with a fixed clock for tests.
func NewWithClock(now func() time.Time) *Collection {
	c := New()
	c.now = now
	return c
}

// Insert implements docstore.Collection.
func (c *Collection) Insert(_ context.Context, doc docstore.Document) (docstore.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc.ID = uuid.NewString()
	doc.CreatedAt = c.now().UTC()
	c.docs[doc.ID] = doc
	c.order = append(c.order, doc.ID)
	return doc, nil
}

// Get implements docstore.Collection.
func (c *Collection) Get(_ context.Context, id string) (docstore.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return doc, nil
}

// QueryByOwner implements docstore.Collection.
func (c *Collection) QueryByOwner(_ context.Context, ownerID string) ([]docstore.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []docstore.Document
	for _, id := range c.order {
		if doc, ok := c.docs[id]; ok && doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Update implements docstore.Collection.
func (c *Collection) Update(_ context.Context, id string, fields docstore.Fields) error {
	if err := docstore.ValidateFields(fields); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	for name, value := range fields {
		switch name {
		case docstore.FieldTitle:
			doc.Title = value.(string)
		case docstore.FieldAmountCents:
			doc.AmountCents = value.(int64)
		case docstore.FieldCategory:
			doc.Category = value.(string)
		case docstore.FieldDate:
			doc.Date = value.(string)
		case docstore.FieldNotes:
			doc.Notes = value.(string)
		}
	}
	c.docs[id] = doc
	return nil
}

// Delete implements docstore.Collection.
func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(c.docs, id)
	for i, ordered := range c.order {
		if ordered == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of documents held, across all owners.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
