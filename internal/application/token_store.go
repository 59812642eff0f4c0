package application

import (
	"context"
	"errors"
	"time"

	"github.com/ipede/identity-token-service/internal/domain"
	"go.uber.org/zap"
)

// ScopedTokenStore issues, validates, consumes and revokes single-use
// credential tokens for exactly one workflow scope. Every workflow owns
// its own instance, configured with its scope name and validity window,
// while all instances share one tokens table.
//
// The scope is a security boundary: a token issued under one scope never
// validates under a store configured for another, no matter what state
// it is in otherwise.
type ScopedTokenStore struct {
	scope    string
	validity time.Duration
	tokens   domain.TokenRepository
	users    domain.UserDirectory
	clock    domain.Clock
	logger   *zap.Logger
}

// NewScopedTokenStore creates a token store bound to the given scope and
// validity duration
func NewScopedTokenStore(
	scope string,
	validity time.Duration,
	tokens domain.TokenRepository,
	users domain.UserDirectory,
	clock domain.Clock,
	logger *zap.Logger,
) *ScopedTokenStore {
	return &ScopedTokenStore{
		scope:    scope,
		validity: validity,
		tokens:   tokens,
		users:    users,
		clock:    clock,
		logger:   logger,
	}
}

// Scope returns the workflow scope the store is bound to
func (s *ScopedTokenStore) Scope() string {
	return s.scope
}

// Issue creates a new active token for the user and returns its opaque
// value. Existing tokens for the same user are left untouched; callers
// wanting single-active-token semantics call RevokeAll first.
func (s *ScopedTokenStore) Issue(ctx context.Context, username string) (string, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrUnknownUser
	}

	token := domain.NewToken(username, s.scope, s.clock.Now(), s.validity)
	if err := s.tokens.Save(ctx, token); err != nil {
		s.logger.Error("failed to persist issued token",
			zap.String("scope", s.scope),
			zap.Error(err))
		return "", err
	}

	return token.Value, nil
}

// Validate checks that the token is usable under the store's scope. The
// first lookup is deliberately scope-agnostic so that "missing entirely"
// and "exists under another scope" stay distinguishable for operators.
// Failures are reported in a fixed precedence: out of scope, consumed,
// revoked, expired. Validate never mutates the token.
func (s *ScopedTokenStore) Validate(ctx context.Context, value string) error {
	token, err := s.tokens.FindByValue(ctx, value)
	if err != nil {
		return err
	}

	switch {
	case token.Scope != s.scope:
		// Wrong-scope tokens never leak their consumed/revoked/expired state.
		s.logger.Warn("token presented under wrong scope",
			zap.String("scope", s.scope),
			zap.String("token_scope", token.Scope))
		return domain.ErrTokenOutOfScope
	case token.Consumed:
		return domain.ErrTokenConsumed
	case token.Revoked:
		return domain.ErrTokenRevoked
	case token.ExpiredAt(s.clock.Now()):
		return domain.ErrTokenExpired
	}

	return nil
}

// Consume marks the token as spent. The lookup is scope-qualified, so a
// token living under another scope reads as missing here. Consume does
// not re-check revocation or expiration; workflows call Validate first
// and Consume only guards against double spending, atomically.
func (s *ScopedTokenStore) Consume(ctx context.Context, value string) error {
	token, err := s.tokens.FindByValueAndScope(ctx, value, s.scope)
	if err != nil {
		return err
	}
	if token.Consumed {
		return domain.ErrTokenConsumed
	}

	updated, err := s.tokens.MarkConsumed(ctx, value, s.scope)
	if err != nil {
		s.logger.Error("failed to consume token",
			zap.String("scope", s.scope),
			zap.Error(err))
		return err
	}
	if !updated {
		// A concurrent caller spent the token between our read and the
		// conditional update.
		return domain.ErrTokenConsumed
	}

	return nil
}

// Username returns the owner of the token within the store's scope
func (s *ScopedTokenStore) Username(ctx context.Context, value string) (string, error) {
	token, err := s.tokens.FindByValueAndScope(ctx, value, s.scope)
	if err != nil {
		return "", err
	}
	return token.Username, nil
}

// RevokeAll revokes every not-yet-revoked token the user holds in the
// store's scope, in one bulk write. Already-revoked tokens are left
// alone, so calling it twice is a no-op. Workflows call this right
// before Issue so that a reissue invalidates all prior tokens.
func (s *ScopedTokenStore) RevokeAll(ctx context.Context, username string) error {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUnknownUser
	}

	tokens, err := s.tokens.FindUnrevokedByUserAndScope(ctx, username, s.scope)
	if err != nil {
		if errors.Is(err, domain.ErrTokenMissing) {
			return nil
		}
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		token.Revoked = true
	}

	if err := s.tokens.SaveAll(ctx, tokens); err != nil {
		s.logger.Error("failed to revoke tokens",
			zap.String("scope", s.scope),
			zap.Int("count", len(tokens)),
			zap.Error(err))
		return err
	}

	return nil
}
