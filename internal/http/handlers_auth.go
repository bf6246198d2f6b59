package http

import (
	"net/http"

	"github.com/Chidesigner/Expense-tracker/internal/identity"
	"github.com/Chidesigner/Expense-tracker/internal/log"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func sessionOf(sess identity.Session) sessionResponse {
	return sessionResponse{
		ID:    sess.Identity.ID,
		Email: sess.Identity.Email,
		Token: sess.Token,
	}
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, err := s.provider.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionOf(sess))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, err := s.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionOf(sess))
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	// resolve the identity first so its mirror can be dropped with it
	if id, err := s.provider.Verify(r.Context(), token); err == nil {
		s.dropSession(id.ID)
	}
	if err := s.provider.SignOut(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Whether the email exists is never revealed; delivery of the token is
	// the mail collaborator's concern and out of band here.
	if _, err := s.provider.SendPasswordReset(r.Context(), req.Email); err != nil {
		s.logger.WarnContext(r.Context(), "Password reset request failed",
			log.FieldEmail, req.Email, log.FieldError, err)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "reset email sent if the account exists",
	})
}

type resetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.provider.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleChangePassword requires a fresh credential check before the switch;
// a stolen token alone must not be enough.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.provider.Reauthenticate(r.Context(), id.Email, req.CurrentPassword); err != nil {
		respondError(w, err)
		return
	}
	if err := s.provider.ChangePassword(r.Context(), id.ID, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// handleDeleteAccount clears every expense the identity holds, then removes
// the identity itself. The clear must succeed first: an account must not
// disappear leaving orphaned records behind.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req deleteAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.provider.Reauthenticate(r.Context(), id.Email, req.Password); err != nil {
		respondError(w, err)
		return
	}

	sess := s.sessionFor(r.Context(), id)
	sess.mu.Lock()
	err := sess.store.ClearAll(r.Context())
	sess.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.provider.DeleteIdentity(r.Context(), id.ID); err != nil {
		respondError(w, err)
		return
	}
	s.dropSession(id.ID)
	s.logger.InfoContext(r.Context(), "Account deleted", log.FieldOwnerID, id.ID)
	w.WriteHeader(http.StatusNoContent)
}
