package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chidesigner/Expense-tracker/internal/core"
)

func goodDoc() Document {
	return Document{
		ID:          "doc-1",
		OwnerID:     "user-a",
		Title:       "Lunch",
		AmountCents: 1500,
		Category:    "Food",
		Date:        "2024-01-10",
		Notes:       "team outing",
		CreatedAt:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestDecode(t *testing.T) {
	e, err := Decode(goodDoc())
	require.NoError(t, err)
	assert.Equal(t, "doc-1", e.ID)
	assert.Equal(t, "user-a", e.OwnerID)
	assert.Equal(t, "Lunch", e.Title)
	assert.Equal(t, int64(1500), e.Amount.Cents)
	assert.Equal(t, core.Category("Food"), e.Category)
	assert.Equal(t, "2024-01-10", e.Date.String())
}

// Malformed documents are rejected at the boundary, never propagated.
func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Document)
	}{
		{"bad date", func(d *Document) { d.Date = "10/01/2024" }},
		{"empty date", func(d *Document) { d.Date = "" }},
		{"zero amount", func(d *Document) { d.AmountCents = 0 }},
		{"negative amount", func(d *Document) { d.AmountCents = -5 }},
		{"empty title", func(d *Document) { d.Title = "  " }},
		{"missing owner", func(d *Document) { d.OwnerID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := goodDoc()
			tc.mutate(&d)
			_, err := Decode(d)
			assert.Error(t, err)
		})
	}
}

func TestEncode(t *testing.T) {
	v := core.ValidExpense{
		Title:    "Lunch",
		Amount:   core.Money{Cents: 1500},
		Category: "Food",
		Date:     core.NewDate(2024, 1, 10),
		Notes:    "n",
	}
	d := Encode("user-a", v)
	assert.Equal(t, Document{
		OwnerID:     "user-a",
		Title:       "Lunch",
		AmountCents: 1500,
		Category:    "Food",
		Date:        "2024-01-10",
		Notes:       "n",
	}, d)
	assert.Empty(t, d.ID, "collection assigns the id")
	assert.True(t, d.CreatedAt.IsZero(), "collection assigns created_at")
}

func TestPatchFieldsOmitsIdentity(t *testing.T) {
	fields := PatchFields(core.ValidExpense{
		Title:    "Dinner",
		Amount:   core.Money{Cents: 2500},
		Category: "Food",
		Date:     core.NewDate(2024, 1, 11),
	})
	require.NoError(t, ValidateFields(fields))
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "owner_id")
	assert.NotContains(t, fields, "created_at")
}

func TestValidateFields(t *testing.T) {
	assert.NoError(t, ValidateFields(Fields{FieldTitle: "x", FieldNotes: ""}))
	assert.ErrorIs(t, ValidateFields(Fields{"owner_id": "b"}), ErrImmutableField)
	assert.ErrorIs(t, ValidateFields(Fields{"created_at": time.Now()}), ErrImmutableField)
}
