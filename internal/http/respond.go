package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/identity"
	"github.com/Chidesigner/Expense-tracker/internal/store"
)

// errorBody is the single error shape every failure returns. Validation
// failures carry the full field list, not just the first hit.
type errorBody struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeValidationErrors(w http.ResponseWriter, errs core.ValidationErrors) {
	body := errorBody{Error: "validation failed"}
	for _, e := range errs {
		body.Fields = append(body.Fields, fieldError{Field: e.Field, Reason: e.Reason.Error()})
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

// respondError maps domain errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	var verrs core.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeValidationErrors(w, verrs)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "expense not found")
	case errors.Is(err, store.ErrNotOwner):
		writeError(w, http.StatusForbidden, "expense belongs to another account")
	case errors.Is(err, identity.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, identity.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, identity.ErrWeakPassword):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, identity.ErrUnknownIdentity):
		writeError(w, http.StatusNotFound, "unknown account")
	case errors.Is(err, identity.ErrBadResetToken):
		writeError(w, http.StatusUnprocessableEntity, "invalid or expired reset token")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a small JSON body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// expenseView is the JSON rendering of one expense.
type expenseView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Amount    string `json:"amount"`
	Display   string `json:"display"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) viewOf(e core.Expense) expenseView {
	return expenseView{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount.String(),
		Display:   s.formatter.Format(e.Amount),
		Category:  string(e.Category),
		Date:      e.Date.String(),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) viewsOf(expenses []core.Expense) []expenseView {
	out := make([]expenseView, len(expenses))
	for i, e := range expenses {
		out[i] = s.viewOf(e)
	}
	return out
}

// amountView pairs a machine amount with its display rendering.
type amountView struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

func (s *Server) amount(m core.Money) amountView {
	return amountView{Amount: m.String(), Display: s.formatter.Format(m)}
}
