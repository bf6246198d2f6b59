package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregations are pure functions over an expense collection. Empty input
// is always a defined case: zero, empty slice or nil, never an error.

// CategoryAmount is an amount summed for one category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// DayPoint is one day of a weekly spending series.
type DayPoint struct {
	Date   Date
	Label  string // short weekday name, e.g. "Mon"
	Amount Money
}

// MonthPoint is one month of a monthly trend series.
type MonthPoint struct {
	Month  string // month label, e.g. "Jan 2024"
	Amount Money
}

// Total sums every amount in the collection.
func Total(expenses []Expense) Money {
	var sum Money
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// TotalForMonth sums the amounts dated within the given calendar month.
func TotalForMonth(expenses []Expense, year, month int) Money {
	var sum Money
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// ByCategory sums amounts grouped by category, in first-encountered order.
func ByCategory(expenses []Expense) []CategoryAmount {
	index := make(map[Category]int)
	var out []CategoryAmount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryAmount{Category: e.Category})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// CategoryBreakdown returns per-category sums ordered by amount descending,
// the shape chart panels want. Ties keep first-encountered order.
func CategoryBreakdown(expenses []Expense) []CategoryAmount {
	out := ByCategory(expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// WeeklySeries returns exactly 7 entries for the 7 consecutive days ending
// at reference inclusive, oldest first. Days without expenses carry zero.
func WeeklySeries(expenses []Expense, reference Date) []DayPoint {
	series := make([]DayPoint, 7)
	for i := 0; i < 7; i++ {
		day := reference.AddDays(i - 6)
		point := DayPoint{Date: day, Label: day.Format("Mon")}
		for _, e := range expenses {
			if e.Date.Equal(day.Time) {
				point.Amount = point.Amount.Add(e.Amount)
			}
		}
		series[i] = point
	}
	return series
}

// MonthlySeries returns one entry per distinct month label present in the
// data, chronologically ascending.
func MonthlySeries(expenses []Expense) []MonthPoint {
	totals := make(map[string]Money)
	firstOf := make(map[string]Date)
	for _, e := range expenses {
		label := e.Date.MonthLabel()
		totals[label] = totals[label].Add(e.Amount)
		if first, ok := firstOf[label]; !ok || e.Date.Before(first.Time) {
			firstOf[label] = e.Date
		}
	}
	out := make([]MonthPoint, 0, len(totals))
	for label, amount := range totals {
		out = append(out, MonthPoint{Month: label, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return firstOf[out[i].Month].Before(firstOf[out[j].Month].Time)
	})
	return out
}

// Average returns total/count rounded to whole cents, or zero when empty.
func Average(expenses []Expense) Money {
	if len(expenses) == 0 {
		return Money{}
	}
	total := decimal.NewFromInt(Total(expenses).Cents)
	avg := total.DivRound(decimal.NewFromInt(int64(len(expenses))), 0)
	return Money{Cents: avg.IntPart()}
}

// Largest returns the expense with the maximum amount, or nil when empty.
// Ties keep the first-encountered record.
func Largest(expenses []Expense) *Expense {
	var max *Expense
	for i := range expenses {
		if max == nil || expenses[i].Amount.Cents > max.Amount.Cents {
			max = &expenses[i]
		}
	}
	return max
}

// TopCategory returns the category with the maximum summed amount, or nil
// when empty. Ties keep the first grouping key that attains the maximum.
func TopCategory(expenses []Expense) *CategoryAmount {
	sums := ByCategory(expenses)
	var top *CategoryAmount
	for i := range sums {
		if top == nil || sums[i].Amount.Cents > top.Amount.Cents {
			top = &sums[i]
		}
	}
	return top
}

// RecentN returns the n most recent expenses by date, newest first. The
// input is not mutated; ties keep input order.
func RecentN(expenses []Expense, n int) []Expense {
	out := append([]Expense(nil), expenses...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
