package http

import (
	"net/http"

	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/identity"
)

type expenseRequest struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

func (req expenseRequest) candidate() core.Candidate {
	return core.Candidate{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Notes:    req.Notes,
	}
}

type expenseListResponse struct {
	Expenses []expenseView `json:"expenses"`
	Total    amountView    `json:"total"`
	Count    int           `json:"count"`
}

// handleListExpenses returns the session mirror, optionally narrowed by the
// text/category/month query dimensions.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())
	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.store.Loaded() {
		if _, err := sess.store.Load(r.Context()); err != nil {
			respondError(w, err)
			return
		}
	}

	q := core.Query{
		Text:     r.URL.Query().Get("text"),
		Category: r.URL.Query().Get("category"),
		Month:    r.URL.Query().Get("month"),
	}
	matched := core.Filter(sess.store.Expenses(), q)

	writeJSON(w, http.StatusOK, expenseListResponse{
		Expenses: s.viewsOf(matched),
		Total:    s.amount(core.Total(matched)),
		Count:    len(matched),
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	valid, verrs := s.rules.Validate(req.candidate())
	if verrs != nil {
		writeValidationErrors(w, verrs)
		return
	}

	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	created, err := sess.store.Create(r.Context(), valid)
	sess.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.viewOf(created))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())
	expenseID := r.PathValue("id")

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	valid, verrs := s.rules.Validate(req.candidate())
	if verrs != nil {
		writeValidationErrors(w, verrs)
		return
	}

	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	updated, err := sess.store.Update(r.Context(), expenseID, valid)
	sess.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewOf(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())
	expenseID := r.PathValue("id")

	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	err := sess.store.Delete(r.Context(), expenseID)
	sess.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	err := sess.store.ClearAll(r.Context())
	sess.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
