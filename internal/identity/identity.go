// Package identity defines the identity collaborator port and the session
// gate. The core consumes only "current identity or none"; every provider
// call is an atomic, fallible remote operation.
package identity

import (
	"context"
	"errors"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

var (
	// ErrInvalidCredentials is returned for any bad email/password pair.
	// Deliberately vague: it never says which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when signing up an email that exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWeakPassword is returned for passwords under MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrUnauthenticated means no valid session token was presented.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnknownIdentity means the referenced identity does not exist.
	ErrUnknownIdentity = errors.New("unknown identity")

	// ErrBadResetToken means a password reset token is invalid or spent.
	ErrBadResetToken = errors.New("invalid or expired reset token")
)

// Identity is the authenticated principal: an opaque id plus email.
type Identity struct {
	ID    string
	Email string
}

// Session is a signed-in identity together with its bearer token.
type Session struct {
	Identity Identity
	Token    string
}

// Provider is the identity collaborator.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error

	// SendPasswordReset issues a single-use reset token for the email.
	// Delivering the token to the user is the caller's concern.
	SendPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword redeems a reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// Reauthenticate re-checks credentials for sensitive flows.
	Reauthenticate(ctx context.Context, email, password string) error

	// ChangePassword replaces the password for an authenticated identity.
	ChangePassword(ctx context.Context, id, newPassword string) error

	// DeleteIdentity removes the identity entirely.
	DeleteIdentity(ctx context.Context, id string) error

	// Verify resolves a bearer token to its identity, or
	// ErrUnauthenticated.
	Verify(ctx context.Context, token string) (Identity, error)
}

type ctxKey struct{}

// WithIdentity returns a context carrying the authenticated identity. The
// identity is always threaded explicitly; nothing reads ambient globals.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the identity placed by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Gate fronts every expense operation with a session check.
type Gate struct {
	provider Provider
}

// NewGate creates a session gate over the provider.
func NewGate(provider Provider) *Gate {
	return &Gate{provider: provider}
}

// Require resolves the bearer token or fails with ErrUnauthenticated.
func (g *Gate) Require(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	return g.provider.Verify(ctx, token)
}
