package jwt

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateTokenPair(t *testing.T) {
	service, err := New(time.Minute, time.Hour)
	assert.NoError(t, err)

	userID := ulid.Make()
	pair, err := service.GenerateTokenPair(userID, []string{"user"})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := service.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, []string{"user"}, claims.Roles)
}

func TestJWT_ValidateToken(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		service, err := New(time.Minute, time.Hour)
		assert.NoError(t, err)

		_, err = service.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects token signed by another key", func(t *testing.T) {
		service, err := New(time.Minute, time.Hour)
		assert.NoError(t, err)
		other, err := New(time.Minute, time.Hour)
		assert.NoError(t, err)

		pair, err := other.GenerateTokenPair(ulid.Make(), []string{"user"})
		assert.NoError(t, err)

		_, err = service.ValidateToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		service, err := New(-time.Minute, time.Hour)
		assert.NoError(t, err)

		pair, err := service.GenerateTokenPair(ulid.Make(), []string{"user"})
		assert.NoError(t, err)

		_, err = service.ValidateToken(pair.AccessToken)
		assert.Error(t, err)
	})
}
