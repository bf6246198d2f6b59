// Package local implements the identity provider with bcrypt password
// hashes and HS256 session tokens, backed by an in-process registry. It
// stands in for a managed identity service in single-host deployments and
// in tests.
package local

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chidesigner/Expense-tracker/internal/identity"
	"github.com/Chidesigner/Expense-tracker/internal/log"
)

type user struct {
	id    string
	email string
	hash  []byte
}

type resetToken struct {
	email     string
	expiresAt time.Time
}

// Provider is an in-process identity provider.
type Provider struct {
	secret   []byte
	tokenTTL time.Duration
	resetTTL time.Duration
	logger   *log.Logger
	now      func() time.Time

	mu      sync.Mutex
	byEmail map[string]*user
	byID    map[string]*user
	revoked map[string]time.Time // token id -> expiry, pruned on access
	resets  map[string]resetToken
}

// New creates a provider signing tokens with secret.
func New(secret string, tokenTTL time.Duration, logger *log.Logger) *Provider {
	return &Provider{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		resetTTL: time.Hour,
		logger:   logger.WithComponent(log.ComponentIdentity),
		now:      time.Now,
		byEmail:  make(map[string]*user),
		byID:     make(map[string]*user),
		revoked:  make(map[string]time.Time),
		resets:   make(map[string]resetToken),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp implements identity.Provider.
func (p *Provider) SignUp(ctx context.Context, email, password string) (identity.Session, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return identity.Session{}, identity.ErrInvalidCredentials
	}
	if len(password) < identity.MinPasswordLen {
		return identity.Session{}, identity.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return identity.Session{}, err
	}

	p.mu.Lock()
	if _, exists := p.byEmail[email]; exists {
		p.mu.Unlock()
		return identity.Session{}, identity.ErrEmailTaken
	}
	u := &user{id: uuid.NewString(), email: email, hash: hash}
	p.byEmail[email] = u
	p.byID[u.id] = u
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "Identity created",
		log.FieldOperation, log.OpSignUp, log.FieldEmail, email)
	return p.issue(u)
}

// SignIn implements identity.Provider.
func (p *Provider) SignIn(ctx context.Context, email, password string) (identity.Session, error) {
	u, err := p.check(normalizeEmail(email), password)
	if err != nil {
		return identity.Session{}, err
	}
	p.logger.InfoContext(ctx, "Identity signed in",
		log.FieldOperation, log.OpSignIn, log.FieldEmail, u.email)
	return p.issue(u)
}

// SignOut implements identity.Provider. The token is revoked until it
// would have expired anyway.
func (p *Provider) SignOut(_ context.Context, token string) error {
	claims, err := p.parse(token)
	if err != nil {
		return identity.ErrUnauthenticated
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return identity.ErrUnauthenticated
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked[jti] = p.now().Add(p.tokenTTL)
	return nil
}

// SendPasswordReset implements identity.Provider.
func (p *Provider) SendPasswordReset(_ context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[email]; !exists {
		return "", identity.ErrUnknownIdentity
	}
	token := uuid.NewString()
	p.resets[token] = resetToken{email: email, expiresAt: p.now().Add(p.resetTTL)}
	return token, nil
}

// ResetPassword implements identity.Provider.
func (p *Provider) ResetPassword(_ context.Context, token, newPassword string) error {
	if len(newPassword) < identity.MinPasswordLen {
		return identity.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	rt, ok := p.resets[token]
	if !ok || p.now().After(rt.expiresAt) {
		return identity.ErrBadResetToken
	}
	delete(p.resets, token)
	u, ok := p.byEmail[rt.email]
	if !ok {
		return identity.ErrUnknownIdentity
	}
	u.hash = hash
	return nil
}

// Reauthenticate implements identity.Provider.
func (p *Provider) Reauthenticate(_ context.Context, email, password string) error {
	_, err := p.check(normalizeEmail(email), password)
	return err
}

// ChangePassword implements identity.Provider.
func (p *Provider) ChangePassword(_ context.Context, id, newPassword string) error {
	if len(newPassword) < identity.MinPasswordLen {
		return identity.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.byID[id]
	if !ok {
		return identity.ErrUnknownIdentity
	}
	u.hash = hash
	return nil
}

// DeleteIdentity implements identity.Provider.
func (p *Provider) DeleteIdentity(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.byID[id]
	if !ok {
		return identity.ErrUnknownIdentity
	}
	delete(p.byID, id)
	delete(p.byEmail, u.email)
	return nil
}

// Verify implements identity.Provider.
func (p *Provider) Verify(_ context.Context, token string) (identity.Identity, error) {
	claims, err := p.parse(token)
	if err != nil {
		return identity.Identity{}, identity.ErrUnauthenticated
	}

	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if jti == "" || sub == "" {
		return identity.Identity{}, identity.ErrUnauthenticated
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if expiry, ok := p.revoked[jti]; ok {
		if p.now().After(expiry) {
			delete(p.revoked, jti)
		}
		return identity.Identity{}, identity.ErrUnauthenticated
	}
	if _, ok := p.byID[sub]; !ok {
		return identity.Identity{}, identity.ErrUnauthenticated
	}
	return identity.Identity{ID: sub, Email: email}, nil
}

func (p *Provider) check(email, password string) (*user, error) {
	p.mu.Lock()
	u, ok := p.byEmail[email]
	p.mu.Unlock()
	if !ok {
		return nil, identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, identity.ErrInvalidCredentials
	}
	return u, nil
}

func (p *Provider) issue(u *user) (identity.Session, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"sub":   u.id,
		"email": u.email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return identity.Session{}, err
	}
	return identity.Session{
		Identity: identity.Identity{ID: u.id, Email: u.email},
		Token:    token,
	}, nil
}

func (p *Provider) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, identity.ErrUnauthenticated
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return p.now() }))
	if err != nil || !parsed.Valid {
		return nil, identity.ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, identity.ErrUnauthenticated
	}
	return claims, nil
}
