package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(8500), Total(sample()).Cents)
	assert.Equal(t, int64(0), Total(nil).Cents)
}

func TestTotalForMonth(t *testing.T) {
	assert.Equal(t, int64(2000), TotalForMonth(sample(), 2024, 1).Cents)
	assert.Equal(t, int64(6500), TotalForMonth(sample(), 2024, 2).Cents)
	assert.Equal(t, int64(0), TotalForMonth(sample(), 2023, 1).Cents)
}

func TestByCategory(t *testing.T) {
	sums := ByCategory(sample())
	require.Len(t, sums, 3)
	// first-encountered order
	assert.Equal(t, CategoryAmount{Category: "Food", Amount: Money{Cents: 6000}}, sums[0])
	assert.Equal(t, CategoryAmount{Category: "Transportation", Amount: Money{Cents: 500}}, sums[1])
	assert.Equal(t, CategoryAmount{Category: "Entertainment", Amount: Money{Cents: 2000}}, sums[2])
}

// Summing the per-category sums recovers the grand total.
func TestByCategorySumsEqualTotal(t *testing.T) {
	var sum Money
	for _, ca := range ByCategory(sample()) {
		sum = sum.Add(ca.Amount)
	}
	assert.Equal(t, Total(sample()), sum)
}

func TestCategoryBreakdown(t *testing.T) {
	breakdown := CategoryBreakdown(sample())
	require.Len(t, breakdown, 3)
	assert.Equal(t, Category("Food"), breakdown[0].Category)
	assert.Equal(t, Category("Entertainment"), breakdown[1].Category)
	assert.Equal(t, Category("Transportation"), breakdown[2].Category)
}

func TestWeeklySeries(t *testing.T) {
	ref := NewDate(2024, 1, 10)
	expenses := []Expense{
		{Title: "a", Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 10)},
		{Title: "b", Amount: Money{Cents: 200}, Date: NewDate(2024, 1, 10)},
		{Title: "c", Amount: Money{Cents: 300}, Date: NewDate(2024, 1, 4)},
		{Title: "d", Amount: Money{Cents: 999}, Date: NewDate(2024, 1, 3)}, // outside the window
	}
	series := WeeklySeries(expenses, ref)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-01-04", series[0].Date.String())
	assert.Equal(t, "2024-01-10", series[6].Date.String())
	assert.Equal(t, "Thu", series[0].Label)
	assert.Equal(t, int64(300), series[0].Amount.Cents)
	assert.Equal(t, int64(300), series[6].Amount.Cents)
	for i := 1; i < 6; i++ {
		assert.Zero(t, series[i].Amount.Cents, "day %d should be empty", i)
	}
}

func TestWeeklySeriesAlwaysSevenEntries(t *testing.T) {
	ref := NewDate(2024, 1, 10)
	var big []Expense
	for i := 0; i < 1000; i++ {
		big = append(big, Expense{
			Title:  fmt.Sprintf("e%d", i),
			Amount: Money{Cents: 1},
			Date:   NewDate(2024, 1, 1+(i%28)),
		})
	}
	for _, expenses := range [][]Expense{nil, {big[0]}, big} {
		assert.Len(t, WeeklySeries(expenses, ref), 7)
	}
}

func TestMonthlySeries(t *testing.T) {
	series := MonthlySeries(sample())
	require.Len(t, series, 2)
	assert.Equal(t, MonthPoint{Month: "Jan 2024", Amount: Money{Cents: 2000}}, series[0])
	assert.Equal(t, MonthPoint{Month: "Feb 2024", Amount: Money{Cents: 6500}}, series[1])
	assert.Empty(t, MonthlySeries(nil))
}

func TestMonthlySeriesSpansYears(t *testing.T) {
	expenses := []Expense{
		{Title: "a", Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 5)},
		{Title: "b", Amount: Money{Cents: 200}, Date: NewDate(2023, 12, 20)},
	}
	series := MonthlySeries(expenses)
	require.Len(t, series, 2)
	assert.Equal(t, "Dec 2023", series[0].Month)
	assert.Equal(t, "Jan 2024", series[1].Month)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, int64(2125), Average(sample()).Cents)
	assert.Equal(t, int64(0), Average(nil).Cents)

	// 100/3 rounds to whole cents
	thirds := []Expense{
		{Amount: Money{Cents: 50}},
		{Amount: Money{Cents: 25}},
		{Amount: Money{Cents: 25}},
	}
	assert.Equal(t, int64(33), Average(thirds).Cents)
}

func TestLargest(t *testing.T) {
	largest := Largest(sample())
	require.NotNil(t, largest)
	assert.Equal(t, "Groceries", largest.Title)
	assert.Nil(t, Largest(nil))

	// tie keeps the first-encountered record
	tied := []Expense{
		{Title: "first", Amount: Money{Cents: 100}},
		{Title: "second", Amount: Money{Cents: 100}},
	}
	assert.Equal(t, "first", Largest(tied).Title)
}

func TestTopCategory(t *testing.T) {
	top := TopCategory(sample())
	require.NotNil(t, top)
	assert.Equal(t, Category("Food"), top.Category)
	assert.Equal(t, int64(6000), top.Amount.Cents)
	assert.Nil(t, TopCategory(nil))

	// tie keeps the first grouping key attaining the maximum
	tied := []Expense{
		{Category: "Bills", Amount: Money{Cents: 100}},
		{Category: "Food", Amount: Money{Cents: 100}},
	}
	assert.Equal(t, Category("Bills"), TopCategory(tied).Category)
}

func TestRecentN(t *testing.T) {
	recent := RecentN(sample(), 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "4", recent[0].ID)
	assert.Equal(t, "3", recent[1].ID)

	// n larger than the collection returns everything
	assert.Len(t, RecentN(sample(), 10), 4)
	assert.Empty(t, RecentN(nil, 5))
}

// The worked scenario: lunch and a bus ride on the same day.
func TestLunchAndBusScenario(t *testing.T) {
	expenses := []Expense{
		{Title: "Lunch", Amount: Money{Cents: 1500}, Category: "Food", Date: NewDate(2024, 1, 10)},
		{Title: "Bus", Amount: Money{Cents: 500}, Category: "Transportation", Date: NewDate(2024, 1, 10)},
	}
	assert.Equal(t, int64(2000), Total(expenses).Cents)

	sums := ByCategory(expenses)
	require.Len(t, sums, 2)
	assert.Equal(t, CategoryAmount{Category: "Food", Amount: Money{Cents: 1500}}, sums[0])
	assert.Equal(t, CategoryAmount{Category: "Transportation", Amount: Money{Cents: 500}}, sums[1])

	assert.Equal(t, "Lunch", Largest(expenses).Title)
	assert.Equal(t, Category("Food"), TopCategory(expenses).Category)
}
