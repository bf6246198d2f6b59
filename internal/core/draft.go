package core

// Draft is the transient candidate expense being edited in a form. It is an
// immutable value: every transition goes through Reduce, which returns a new
// draft and never mutates the old one. EditingID is empty for a new expense
// and carries the record id while editing an existing one.
type Draft struct {
	Title     string
	Amount    string
	Date      string
	Category  string
	Notes     string
	EditingID string
}

// DraftAction is a single form transition.
type DraftAction interface {
	apply(Draft) Draft
}

// SetTitle, SetAmount, SetDate, SetCategory and SetNotes replace one field.
type (
	SetTitle    struct{ Value string }
	SetAmount   struct{ Value string }
	SetDate     struct{ Value string }
	SetCategory struct{ Value string }
	SetNotes    struct{ Value string }

	// StartEdit loads an existing expense into the form.
	StartEdit struct{ Expense Expense }

	// Reset clears the form back to its defaults.
	Reset struct{ DefaultCategory Category }
)

func (a SetTitle) apply(d Draft) Draft    { d.Title = a.Value; return d }
func (a SetAmount) apply(d Draft) Draft   { d.Amount = a.Value; return d }
func (a SetDate) apply(d Draft) Draft     { d.Date = a.Value; return d }
func (a SetCategory) apply(d Draft) Draft { d.Category = a.Value; return d }
func (a SetNotes) apply(d Draft) Draft    { d.Notes = a.Value; return d }

func (a StartEdit) apply(Draft) Draft {
	e := a.Expense
	return Draft{
		Title:     e.Title,
		Amount:    e.Amount.String(),
		Date:      e.Date.String(),
		Category:  string(e.Category),
		Notes:     e.Notes,
		EditingID: e.ID,
	}
}

func (a Reset) apply(Draft) Draft {
	return NewDraft(a.DefaultCategory)
}

// NewDraft returns an empty draft with the default category preselected.
func NewDraft(defaultCategory Category) Draft {
	return Draft{Category: string(defaultCategory)}
}

// Reduce applies one action to a draft and returns the next draft.
func Reduce(d Draft, a DraftAction) Draft {
	return a.apply(d)
}

// Candidate converts the draft to the raw candidate the validator consumes.
func (d Draft) Candidate() Candidate {
	return Candidate{
		Title:    d.Title,
		Amount:   d.Amount,
		Date:     d.Date,
		Category: d.Category,
		Notes:    d.Notes,
	}
}
