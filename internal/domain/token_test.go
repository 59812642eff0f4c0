package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	token := NewToken("alice", ScopePasswordReset, now, time.Hour)

	assert.NotEmpty(t, token.Value)
	assert.Equal(t, "alice", token.Username)
	assert.Equal(t, ScopePasswordReset, token.Scope)
	assert.Equal(t, now, token.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)
	assert.True(t, token.ExpiresAt.After(token.CreatedAt))
	assert.False(t, token.Consumed)
	assert.False(t, token.Revoked)
}

func TestNewToken_UniqueValues(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := NewToken("alice", ScopePasswordReset, now, time.Hour)
		assert.False(t, seen[token.Value])
		seen[token.Value] = true
	}
}

func TestToken_ExpiredAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	token := NewToken("alice", ScopePasswordReset, now, time.Hour)

	assert.False(t, token.ExpiredAt(now))
	assert.False(t, token.ExpiredAt(now.Add(time.Hour-time.Nanosecond)))
	// Expiration is inclusive: at the deadline the token is already expired.
	assert.True(t, token.ExpiredAt(now.Add(time.Hour)))
	assert.True(t, token.ExpiredAt(now.Add(2*time.Hour)))
}
