package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Well-known token scopes. A scope separates independent workflows that
// share the tokens table; tokens in different scopes are unrelated even
// when every other field matches.
const (
	ScopePasswordReset  = "password_reset"
	ScopeUserRegistered = "user_registered"
)

// Token represents a single-use, time-bounded credential token owned by
// exactly one workflow scope
type Token struct {
	Value     string    `json:"value"`
	Username  string    `json:"username"`
	Scope     string    `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"consumed"`
	Revoked   bool      `json:"revoked"`
}

// NewToken creates a new active token for the given user and scope.
// The value is a random UUID; callers never pick their own.
func NewToken(username, scope string, now time.Time, validity time.Duration) *Token {
	return &Token{
		Value:     uuid.NewString(),
		Username:  username,
		Scope:     scope,
		CreatedAt: now,
		ExpiresAt: now.Add(validity),
	}
}

// ExpiredAt reports whether the token is past its expiration at the given instant
func (t *Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenStore defines the token operations a workflow service uses. Each
// store instance is bound to one scope and one validity duration.
type TokenStore interface {
	// Issue creates and persists a new token for the user, returning its value
	Issue(ctx context.Context, username string) (string, error)

	// Validate checks that the token is usable under the store's scope.
	// It has no side effects.
	Validate(ctx context.Context, value string) error

	// Consume marks the token as spent. It only guards against double
	// spending; callers are expected to Validate first.
	Consume(ctx context.Context, value string) error

	// Username returns the owner of the token within the store's scope
	Username(ctx context.Context, value string) (string, error)

	// RevokeAll revokes every not-yet-revoked token the user holds in
	// the store's scope
	RevokeAll(ctx context.Context, username string) error
}

// TokenRepository defines the interface for token persistence
type TokenRepository interface {
	// FindByValue finds a token by its value alone, regardless of scope
	FindByValue(ctx context.Context, value string) (*Token, error)

	// FindByValueAndScope finds a token by its value within a scope
	FindByValueAndScope(ctx context.Context, value, scope string) (*Token, error)

	// FindUnrevokedByUserAndScope lists a user's not-yet-revoked tokens in a scope
	FindUnrevokedByUserAndScope(ctx context.Context, username, scope string) ([]*Token, error)

	// Save inserts or updates a token record
	Save(ctx context.Context, token *Token) error

	// SaveAll inserts or updates a batch of token records
	SaveAll(ctx context.Context, tokens []*Token) error

	// MarkConsumed flips consumed on a not-yet-consumed token in a single
	// conditional update, reporting whether a row was changed. Two racing
	// calls see exactly one true.
	MarkConsumed(ctx context.Context, value, scope string) (bool, error)
}
