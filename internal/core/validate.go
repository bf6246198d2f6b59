package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Candidate carries raw form input for a new or edited expense. All fields
// are strings exactly as the user typed them.
type Candidate struct {
	Title    string
	Amount   string
	Date     string
	Category string
	Notes    string
}

// FieldError names a single field that failed validation and why.
type FieldError struct {
	Field  string
	Reason error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e FieldError) Unwrap() error {
	return e.Reason
}

// ValidationErrors collects every failed rule for a candidate. Rules are
// evaluated independently; nothing short-circuits.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field reports whether any collected error names the given field.
func (v ValidationErrors) Field(name string) bool {
	for _, e := range v {
		if e.Field == name {
			return true
		}
	}
	return false
}

// Rules configures candidate validation.
type Rules struct {
	Categories     []Category
	RetentionYears int
	Now            func() time.Time
}

// DefaultRules returns the standard rule set: default categories and a
// 100-year retention horizon.
func DefaultRules() Rules {
	return Rules{
		Categories:     DefaultCategories,
		RetentionYears: 100,
		Now:            time.Now,
	}
}

// ValidExpense is a candidate that passed every rule, with fields sanitized
// and parsed. It has no identity yet; the store assigns ID, OwnerID and
// CreatedAt on create.
type ValidExpense struct {
	Title    string
	Amount   Money
	Category Category
	Date     Date
	Notes    string
}

// Validate sanitizes and checks a candidate, collecting every failure.
// A non-empty error slice means the candidate must not reach the store.
func (r Rules) Validate(c Candidate) (ValidExpense, ValidationErrors) {
	var errs ValidationErrors
	var valid ValidExpense

	title := Sanitize(c.Title)
	switch {
	case title == "":
		errs = append(errs, FieldError{Field: "title", Reason: ErrEmptyTitle})
	case utf8.RuneCountInString(title) > MaxTitleLen:
		errs = append(errs, FieldError{Field: "title", Reason: ErrTitleTooLong})
	default:
		valid.Title = title
	}

	amount, err := ParseAmount(c.Amount)
	if err != nil {
		errs = append(errs, FieldError{Field: "amount", Reason: err})
	} else {
		valid.Amount = amount
	}

	if date, err := ParseDate(c.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Reason: err})
	} else {
		today := DateOf(r.Now())
		horizon := Date{Time: today.AddDate(-r.RetentionYears, 0, 0)}
		switch {
		case date.After(today.Time):
			errs = append(errs, FieldError{Field: "date", Reason: ErrFutureDate})
		case date.Before(horizon.Time):
			errs = append(errs, FieldError{Field: "date", Reason: ErrDateTooOld})
		default:
			valid.Date = date
		}
	}

	category := Category(strings.TrimSpace(c.Category))
	if !ValidCategory(category, r.Categories) {
		errs = append(errs, FieldError{Field: "category", Reason: ErrUnknownCategory})
	} else {
		valid.Category = category
	}

	notes := Sanitize(c.Notes)
	if utf8.RuneCountInString(notes) > MaxNotesLen {
		errs = append(errs, FieldError{Field: "notes", Reason: ErrNotesTooLong})
	} else {
		valid.Notes = notes
	}

	if len(errs) > 0 {
		return ValidExpense{}, errs
	}
	return valid, nil
}
