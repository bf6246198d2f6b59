// Package http exposes the expense tracker as a JSON API: authentication,
// owner-scoped expense CRUD, filtering and the dashboard/analytics reads.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/docstore"
	"github.com/Chidesigner/Expense-tracker/internal/identity"
	"github.com/Chidesigner/Expense-tracker/internal/log"
	"github.com/Chidesigner/Expense-tracker/internal/store"
)

// Server serves the JSON API. It embeds http.Server so callers get
// ListenAndServe for free and our Shutdown can layer cleanup on top.
type Server struct {
	http.Server

	provider  identity.Provider
	gate      *identity.Gate
	col       docstore.Collection
	publisher store.Publisher
	logger    *log.Logger

	rules     core.Rules
	formatter core.Formatter

	rateLimiter *rateLimiter

	// one session per authenticated identity, created on first use
	mu       sync.Mutex
	sessions map[string]*session

	shutdownOnce sync.Once
}

// session serializes access to one identity's store. The store itself is
// not safe for concurrent use; requests for the same identity take turns.
type session struct {
	mu    sync.Mutex
	store *store.Store
}

// Options carries the collaborators a Server needs.
type Options struct {
	Addr      string
	Provider  identity.Provider
	Col       docstore.Collection
	Publisher store.Publisher
	Logger    *log.Logger
	Rules     core.Rules
	Formatter core.Formatter
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		provider:    opts.Provider,
		gate:        identity.NewGate(opts.Provider),
		col:         opts.Col,
		publisher:   opts.Publisher,
		logger:      opts.Logger.WithComponent(log.ComponentHTTP),
		rules:       opts.Rules,
		formatter:   opts.Formatter,
		rateLimiter: newRateLimiter(),
		sessions:    make(map[string]*session),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/auth/signup", s.wrap(s.handleSignUp))
	mux.HandleFunc("POST /api/auth/signin", s.wrap(s.handleSignIn))
	mux.HandleFunc("POST /api/auth/signout", s.wrap(s.handleSignOut))
	mux.HandleFunc("POST /api/auth/reset", s.wrap(s.handleResetRequest))
	mux.HandleFunc("POST /api/auth/reset/confirm", s.wrap(s.handleResetConfirm))
	mux.HandleFunc("POST /api/auth/password", s.wrap(s.requireAuth(s.handleChangePassword)))
	mux.HandleFunc("DELETE /api/auth/account", s.wrap(s.requireAuth(s.handleDeleteAccount)))

	mux.HandleFunc("GET /api/expenses", s.wrap(s.requireAuth(s.handleListExpenses)))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.requireAuth(s.handleCreateExpense)))
	mux.HandleFunc("PUT /api/expenses/{id}", s.wrap(s.requireAuth(s.handleUpdateExpense)))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.requireAuth(s.handleDeleteExpense)))
	mux.HandleFunc("DELETE /api/expenses", s.wrap(s.requireAuth(s.handleClearExpenses)))

	mux.HandleFunc("GET /api/dashboard", s.wrap(s.requireAuth(s.handleDashboard)))
	mux.HandleFunc("GET /api/analytics", s.wrap(s.requireAuth(s.handleAnalytics)))
	mux.HandleFunc("GET /api/analytics/weekly", s.wrap(s.requireAuth(s.handleWeeklySeries)))
	mux.HandleFunc("GET /api/months", s.wrap(s.requireAuth(s.handleMonths)))

	return s
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// sessionFor returns the identity's session, creating and loading its store
// on first use. The initial load failure is tolerated: the store starts
// empty and the next operation retries against the collaborator.
func (s *Server) sessionFor(ctx context.Context, id identity.Identity) *session {
	s.mu.Lock()
	sess, ok := s.sessions[id.ID]
	if !ok {
		sess = &session{store: store.New(id.ID, s.col, s.publisher, s.logger)}
		s.sessions[id.ID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.store.Loaded() {
		if _, err := sess.store.Load(ctx); err != nil {
			s.logger.WarnContext(ctx, "Initial session load failed",
				log.FieldOwnerID, id.ID, log.FieldError, err)
		}
	}
	return sess
}

// dropSession forgets an identity's mirror, after sign-out or account
// deletion.
func (s *Server) dropSession(identityID string) {
	s.mu.Lock()
	delete(s.sessions, identityID)
	s.mu.Unlock()
}

// wrap adds request logging, a request id and security headers; auth
// endpoints are additionally rate limited per client.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if isAuthPath(r.URL.Path) && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// requireAuth resolves the bearer token through the session gate and puts
// the identity on the request context. No token, no handler.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.gate.Require(r.Context(), bearerToken(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
	}
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

type requestIDKey struct{}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// probing a well-known missing id exercises the collaborator roundtrip
	status, httpStatus := "ready", http.StatusOK
	if _, err := s.col.Get(ctx, "readyz-probe"); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]string{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
