// Package docstore defines the document-collection port the expense store
// persists through, and the decode boundary that converts external
// documents into typed domain entities.
//
// Implementations (memory, sqlite, postgres) assign ids and creation
// timestamps on insert and return an owner's documents in arrival order;
// ordering for presentation is the store's job.
package docstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an update or delete targets an id the
// collection does not hold.
var ErrNotFound = errors.New("document not found")

// Document is the wire shape of a persisted expense record.
type Document struct {
	ID          string
	OwnerID     string
	Title       string
	AmountCents int64
	Category    string
	Date        string // YYYY-MM-DD
	Notes       string
	CreatedAt   time.Time
}

// Fields is a partial update: field name to new value. Only the mutable
// fields (title, amount_cents, category, date, notes) are accepted;
// id, owner_id and created_at are never patchable.
type Fields map[string]any

// Mutable field names accepted by Update.
const (
	FieldTitle       = "title"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldNotes       = "notes"
)

// ErrImmutableField is returned when a patch names a field that is set once
// at creation.
var ErrImmutableField = errors.New("field is immutable")

// Collection is the persistence collaborator: a single document collection
// keyed by id and filterable by owner.
type Collection interface {
	// Insert persists a new document, assigning ID and CreatedAt.
	Insert(ctx context.Context, doc Document) (Document, error)

	// Get returns a single document by id, or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// QueryByOwner returns every document owned by ownerID, in arrival order.
	QueryByOwner(ctx context.Context, ownerID string) ([]Document, error)

	// Update patches a single document by id.
	Update(ctx context.Context, id string, fields Fields) error

	// Delete removes a single document by id.
	Delete(ctx context.Context, id string) error
}

// ValidateFields rejects patches that name unknown or immutable fields.
func ValidateFields(fields Fields) error {
	for name := range fields {
		switch name {
		case FieldTitle, FieldAmountCents, FieldCategory, FieldDate, FieldNotes:
		default:
			return ErrImmutableField
		}
	}
	return nil
}
