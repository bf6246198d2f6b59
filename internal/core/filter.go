package core

import (
	"sort"
	"strings"
)

// FilterAll is the sentinel meaning "no constraint on this dimension".
const FilterAll = "All"

// Query restricts an expense collection. Zero-value dimensions and the
// FilterAll sentinel both mean unconstrained; all set dimensions must match.
type Query struct {
	Text     string // case-insensitive substring of title or category
	Category string // exact category, or FilterAll
	Month    string // month label ("Jan 2024"), or FilterAll
}

// IsUnconstrained reports whether the query matches every expense. Callers
// use this to distinguish "no data at all" from "no matches".
func (q Query) IsUnconstrained() bool {
	return q.Text == "" &&
		(q.Category == "" || q.Category == FilterAll) &&
		(q.Month == "" || q.Month == FilterAll)
}

// Filter derives the subset of expenses matching the query, preserving the
// relative order of the input. The input slice is never mutated.
func Filter(expenses []Expense, q Query) []Expense {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Title), text) &&
			!strings.Contains(strings.ToLower(string(e.Category)), text) {
			continue
		}
		if q.Category != "" && q.Category != FilterAll && string(e.Category) != q.Category {
			continue
		}
		if q.Month != "" && q.Month != FilterAll && e.Date.MonthLabel() != q.Month {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MonthsOf returns the distinct month labels present in the collection,
// newest first. Used to populate the month filter dropdown.
func MonthsOf(expenses []Expense) []string {
	seen := make(map[string]Date)
	for _, e := range expenses {
		label := e.Date.MonthLabel()
		if first, ok := seen[label]; !ok || e.Date.Before(first.Time) {
			seen[label] = e.Date
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return seen[labels[i]].After(seen[labels[j]].Time)
	})
	return labels
}
