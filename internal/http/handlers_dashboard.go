package http

import (
	"net/http"

	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/identity"
)

// loadedExpenses resolves the session and returns its mirror, retrying the
// collaborator load if no successful load has happened yet.
func (s *Server) loadedExpenses(w http.ResponseWriter, r *http.Request) ([]core.Expense, bool) {
	id, _ := identity.FromContext(r.Context())
	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.store.Loaded() {
		if _, err := sess.store.Load(r.Context()); err != nil {
			respondError(w, err)
			return nil, false
		}
	}
	return sess.store.Expenses(), true
}

type dashboardResponse struct {
	Total      amountView    `json:"total"`
	MonthTotal amountView    `json:"month_total"`
	Count      int           `json:"count"`
	Recent     []expenseView `json:"recent"`
}

// handleDashboard summarizes the collection: lifetime total, current-month
// total, record count and the five most recent expenses.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	expenses, ok := s.loadedExpenses(w, r)
	if !ok {
		return
	}

	now := s.rules.Now()
	writeJSON(w, http.StatusOK, dashboardResponse{
		Total:      s.amount(core.Total(expenses)),
		MonthTotal: s.amount(core.TotalForMonth(expenses, now.Year(), int(now.Month()))),
		Count:      len(expenses),
		Recent:     s.viewsOf(core.RecentN(expenses, 5)),
	})
}

type categoryAmountView struct {
	Category string     `json:"category"`
	Amount   amountView `json:"amount"`
}

type monthPointView struct {
	Month  string     `json:"month"`
	Amount amountView `json:"amount"`
}

type analyticsResponse struct {
	Average     amountView           `json:"average"`
	Largest     *expenseView         `json:"largest,omitempty"`
	TopCategory *categoryAmountView  `json:"top_category,omitempty"`
	Breakdown   []categoryAmountView `json:"breakdown"`
	Monthly     []monthPointView     `json:"monthly"`
}

// handleAnalytics returns the insight aggregates and the chart series. An
// empty collection yields zero values and empty series, never an error.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	expenses, ok := s.loadedExpenses(w, r)
	if !ok {
		return
	}

	resp := analyticsResponse{
		Average:   s.amount(core.Average(expenses)),
		Breakdown: make([]categoryAmountView, 0),
		Monthly:   make([]monthPointView, 0),
	}
	if largest := core.Largest(expenses); largest != nil {
		v := s.viewOf(*largest)
		resp.Largest = &v
	}
	if top := core.TopCategory(expenses); top != nil {
		resp.TopCategory = &categoryAmountView{
			Category: string(top.Category),
			Amount:   s.amount(top.Amount),
		}
	}
	for _, row := range core.CategoryBreakdown(expenses) {
		resp.Breakdown = append(resp.Breakdown, categoryAmountView{
			Category: string(row.Category),
			Amount:   s.amount(row.Amount),
		})
	}
	for _, point := range core.MonthlySeries(expenses) {
		resp.Monthly = append(resp.Monthly, monthPointView{
			Month:  point.Month,
			Amount: s.amount(point.Amount),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type dayPointView struct {
	Date   string     `json:"date"`
	Label  string     `json:"label"`
	Amount amountView `json:"amount"`
}

// handleWeeklySeries returns the last seven days of spending, oldest first,
// always exactly seven entries.
func (s *Server) handleWeeklySeries(w http.ResponseWriter, r *http.Request) {
	expenses, ok := s.loadedExpenses(w, r)
	if !ok {
		return
	}

	reference := core.DateOf(s.rules.Now())
	if v := r.URL.Query().Get("reference"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reference date, want YYYY-MM-DD")
			return
		}
		reference = parsed
	}

	series := core.WeeklySeries(expenses, reference)
	out := make([]dayPointView, len(series))
	for i, point := range series {
		out[i] = dayPointView{
			Date:   point.Date.String(),
			Label:  point.Label,
			Amount: s.amount(point.Amount),
		}
	}
	writeJSON(w, http.StatusOK, map[string][]dayPointView{"days": out})
}

// handleMonths lists the distinct month labels in the collection, newest
// first, for the month filter dropdown.
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	expenses, ok := s.loadedExpenses(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"months": core.MonthsOf(expenses)})
}
