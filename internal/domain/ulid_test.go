package domain

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseULID(t *testing.T) {
	t.Run("round trips a valid ID", func(t *testing.T) {
		id := ulid.Make()

		parsed, err := ParseULID(id.String())
		assert.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseULID("not-a-ulid")
		assert.Error(t, err)
	})

	t.Run("must parse panics on garbage", func(t *testing.T) {
		assert.Panics(t, func() {
			MustParseULID("not-a-ulid")
		})
	})
}
