package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPassphrase_Plain(t *testing.T) {
	a, err := NewStaticPassphrase("open-sesame", "", time.Hour)
	require.NoError(t, err)

	s, err := a.Authenticate(context.Background(), "open-sesame")
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	_, err = a.Authenticate(context.Background(), "open-sesame ")
	assert.ErrorIs(t, err, ErrDenied)
	_, err = a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrDenied)
}

func TestStaticPassphrase_Hash(t *testing.T) {
	hash, err := HashPassphrase("gold-and-silver")
	require.NoError(t, err)
	a, err := NewStaticPassphrase("ignored-when-hash-set", hash, 0)
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), "gold-and-silver")
	assert.NoError(t, err)
	_, err = a.Authenticate(context.Background(), "ignored-when-hash-set")
	assert.ErrorIs(t, err, ErrDenied)
}

func TestNewStaticPassphrase_Config(t *testing.T) {
	_, err := NewStaticPassphrase("", "", time.Hour)
	assert.Error(t, err)
	_, err = NewStaticPassphrase("", "not-a-bcrypt-hash", time.Hour)
	assert.Error(t, err)
}

func TestToken_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token, err := IssueToken(Session{Subject: "admin", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, "s3cret")
	require.NoError(t, err)

	s, err := ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Subject)
	assert.True(t, s.ExpiresAt.Equal(now.Add(time.Hour)))

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, ErrDenied)

	expired, err := IssueToken(Session{Subject: "admin", IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}, "s3cret")
	require.NoError(t, err)
	_, err = ParseToken(expired, "s3cret")
	assert.ErrorIs(t, err, ErrDenied)
}
