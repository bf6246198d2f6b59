package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Expense {
	return []Expense{
		{ID: "1", Title: "Lunch", Amount: Money{Cents: 1500}, Category: "Food", Date: NewDate(2024, 1, 10)},
		{ID: "2", Title: "Bus ticket", Amount: Money{Cents: 500}, Category: "Transportation", Date: NewDate(2024, 1, 10)},
		{ID: "3", Title: "Cinema", Amount: Money{Cents: 2000}, Category: "Entertainment", Date: NewDate(2024, 2, 3)},
		{ID: "4", Title: "Groceries", Amount: Money{Cents: 4500}, Category: "Food", Date: NewDate(2024, 2, 14)},
	}
}

func ids(expenses []Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func TestFilter_IdentityQuery(t *testing.T) {
	in := sample()
	out := Filter(in, Query{Text: "", Category: FilterAll, Month: FilterAll})
	assert.Equal(t, in, out)
}

func TestFilter_Text(t *testing.T) {
	out := Filter(sample(), Query{Text: "lun"})
	assert.Equal(t, []string{"1"}, ids(out))

	// text also matches the category
	out = Filter(sample(), Query{Text: "transport"})
	assert.Equal(t, []string{"2"}, ids(out))
}

func TestFilter_Category(t *testing.T) {
	out := Filter(sample(), Query{Category: "Food"})
	assert.Equal(t, []string{"1", "4"}, ids(out))
}

func TestFilter_Month(t *testing.T) {
	out := Filter(sample(), Query{Month: "Feb 2024"})
	assert.Equal(t, []string{"3", "4"}, ids(out))
}

func TestFilter_PredicatesAreANDed(t *testing.T) {
	out := Filter(sample(), Query{Text: "g", Category: "Food", Month: "Feb 2024"})
	assert.Equal(t, []string{"4"}, ids(out))
}

func TestFilter_NoMatches(t *testing.T) {
	out := Filter(sample(), Query{Text: "yacht"})
	assert.Empty(t, out)
	assert.NotNil(t, out) // empty result, not absent data
}

func TestFilter_EmptySource(t *testing.T) {
	assert.Empty(t, Filter(nil, Query{Text: "lunch"}))
	assert.Empty(t, Filter([]Expense{}, Query{}))
}

func TestFilter_Idempotent(t *testing.T) {
	q := Query{Text: "u", Category: FilterAll, Month: "Jan 2024"}
	once := Filter(sample(), q)
	twice := Filter(once, q)
	assert.Equal(t, once, twice)
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	in := sample()
	// reverse the input; the filter must not re-sort
	rev := []Expense{in[3], in[2], in[1], in[0]}
	out := Filter(rev, Query{Category: "Food"})
	assert.Equal(t, []string{"4", "1"}, ids(out))
}

func TestQueryIsUnconstrained(t *testing.T) {
	assert.True(t, Query{}.IsUnconstrained())
	assert.True(t, Query{Category: FilterAll, Month: FilterAll}.IsUnconstrained())
	assert.False(t, Query{Text: "x"}.IsUnconstrained())
	assert.False(t, Query{Category: "Food"}.IsUnconstrained())
	assert.False(t, Query{Month: "Jan 2024"}.IsUnconstrained())
}

func TestMonthsOf(t *testing.T) {
	months := MonthsOf(sample())
	require.Equal(t, []string{"Feb 2024", "Jan 2024"}, months)
	assert.Empty(t, MonthsOf(nil))
}
