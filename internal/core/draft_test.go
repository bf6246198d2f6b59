package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDraft(t *testing.T) {
	d := NewDraft("Food")
	assert.Equal(t, Draft{Category: "Food"}, d)
}

func TestReduceSetFields(t *testing.T) {
	d := NewDraft("Food")
	d = Reduce(d, SetTitle{Value: "Lunch"})
	d = Reduce(d, SetAmount{Value: "15.00"})
	d = Reduce(d, SetDate{Value: "2024-01-10"})
	d = Reduce(d, SetCategory{Value: "Bills"})
	d = Reduce(d, SetNotes{Value: "team outing"})

	assert.Equal(t, Draft{
		Title:    "Lunch",
		Amount:   "15.00",
		Date:     "2024-01-10",
		Category: "Bills",
		Notes:    "team outing",
	}, d)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := NewDraft("Food")
	_ = Reduce(before, SetTitle{Value: "changed"})
	assert.Empty(t, before.Title)
}

func TestReduceStartEdit(t *testing.T) {
	e := Expense{
		ID:       "abc",
		Title:    "Cinema",
		Amount:   Money{Cents: 2000},
		Category: "Entertainment",
		Date:     NewDate(2024, 2, 3),
		Notes:    "date night",
	}
	d := Reduce(NewDraft("Food"), StartEdit{Expense: e})
	assert.Equal(t, Draft{
		Title:     "Cinema",
		Amount:    "20.00",
		Date:      "2024-02-03",
		Category:  "Entertainment",
		Notes:     "date night",
		EditingID: "abc",
	}, d)
}

func TestReduceReset(t *testing.T) {
	d := Reduce(NewDraft("Food"), StartEdit{Expense: Expense{ID: "abc", Title: "x", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}})
	d = Reduce(d, Reset{DefaultCategory: "Food"})
	assert.Equal(t, NewDraft("Food"), d)
	assert.Empty(t, d.EditingID)
}

func TestDraftCandidate(t *testing.T) {
	d := Draft{Title: "Lunch", Amount: "15", Date: "2024-01-10", Category: "Food", Notes: "n", EditingID: "x"}
	c := d.Candidate()
	assert.Equal(t, Candidate{Title: "Lunch", Amount: "15", Date: "2024-01-10", Category: "Food", Notes: "n"}, c)
}
