package docstore

import (
	"fmt"

	"github.com/Chidesigner/Expense-tracker/internal/core"
)

// Decode converts an external document into a typed expense. Malformed
// documents are rejected here so undefined fields never propagate into the
// mirror.
func Decode(doc Document) (core.Expense, error) {
	date, err := core.ParseDate(doc.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("document %s: bad date %q: %w", doc.ID, doc.Date, err)
	}
	e := core.Expense{
		ID:        doc.ID,
		Title:     doc.Title,
		Amount:    core.Money{Cents: doc.AmountCents},
		Category:  core.Category(doc.Category),
		Date:      date,
		Notes:     doc.Notes,
		OwnerID:   doc.OwnerID,
		CreatedAt: doc.CreatedAt,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	return e, nil
}

// Encode builds the document for a validated expense about to be created.
// ID and CreatedAt stay empty; the collection assigns them.
func Encode(ownerID string, v core.ValidExpense) Document {
	return Document{
		OwnerID:     ownerID,
		Title:       v.Title,
		AmountCents: v.Amount.Cents,
		Category:    string(v.Category),
		Date:        v.Date.String(),
		Notes:       v.Notes,
	}
}

// PatchFields builds the partial update for an edited expense. Identity
// fields are deliberately absent.
func PatchFields(v core.ValidExpense) Fields {
	return Fields{
		FieldTitle:       v.Title,
		FieldAmountCents: v.Amount.Cents,
		FieldCategory:    string(v.Category),
		FieldDate:        v.Date.String(),
		FieldNotes:       v.Notes,
	}
}
