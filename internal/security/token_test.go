package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "slotta", time.Hour)

	token, expiresAt, err := m.Generate(42, "lena@example.com", "lena-nails")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	session, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.MasterID)
	assert.Equal(t, "lena-nails", session.Slug)
	assert.NotEmpty(t, session.TokenID)
}

func TestTokenManager_Validate_Errors(t *testing.T) {
	m := NewTokenManager("secret", "slotta", time.Hour)
	token, _, err := m.Generate(42, "lena@example.com", "lena-nails")
	require.NoError(t, err)

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other", "slotta", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		_, err := NewTokenManager("secret", "someone-else", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewTokenManager("secret", "slotta", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &Session{MasterID: 7})
	s, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), s.MasterID)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
}
