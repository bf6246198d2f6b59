package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is one of the fixed expense categories configured at startup.
type Category string

// DefaultCategories is the standard category set.
var DefaultCategories = []Category{
	"Food",
	"Shopping",
	"Transportation",
	"Entertainment",
	"Bills",
	"Healthcare",
	"Other",
}

// CompactCategories is the reduced set used by the lightweight configuration.
var CompactCategories = []Category{
	"Food",
	"Transport",
	"Shopping",
	"Bills",
	"Entertainment",
	"Other",
}

// Field length limits applied after sanitization.
const (
	MaxTitleLen = 100
	MaxNotesLen = 500
)

type (
	// Date is a calendar date with the time component zeroed.
	Date struct {
		time.Time
	}

	// Expense is a single spending record owned by one identity.
	//
	// ID, OwnerID and CreatedAt are assigned by the persistence layer on
	// create and never change afterwards.
	Expense struct {
		ID        string
		Title     string
		Amount    Money
		Category  Category
		Date      Date
		Notes     string
		OwnerID   string
		CreatedAt time.Time
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 100 characters)")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum")
	ErrInvalidDate     = errors.New("invalid date")
	ErrFutureDate      = errors.New("date cannot be in the future")
	ErrDateTooOld      = errors.New("date is before the retention horizon")
	ErrNotesTooLong    = errors.New("notes too long (max 500 characters)")
	ErrUnknownCategory = errors.New("unknown category")
	ErrMissingOwner    = errors.New("missing owner")
)

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// String renders the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthLabel renders the month the date falls in, e.g. "Jan 2024".
func (d Date) MonthLabel() string {
	return d.Format("Jan 2006")
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// InMonth reports whether the date falls within the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && int(d.Month()) == month
}

// Validate checks the invariants every stored expense must hold. It is
// applied at the persistence decode boundary so malformed documents never
// reach the mirror.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(e.Title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.OwnerID) == "" {
		return ErrMissingOwner
	}
	return nil
}

// ValidCategory reports whether c is a member of the configured set.
func ValidCategory(c Category, set []Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}
