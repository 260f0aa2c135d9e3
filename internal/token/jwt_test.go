package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akorchagin/taskvault/internal/model"
)

func newTestJWT() *JWT {
	return NewJWT("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_UniquePerIssue(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	// Two tokens for the same user in the same second must still
	// differ, otherwise rotation would swap a digest for itself.
	first, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	second, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestJWT_KindSeparation(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrTokenKindMismatch)

	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrTokenKindMismatch)
}

func TestJWT_Expired(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	// Correctly signed token with an already-past expiry.
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		UserID:    u,
		TokenType: typeAccess,
	})
	signed, err := expired.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = j.ParseAccessToken(signed)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_Malformed(t *testing.T) {
	j := newTestJWT()

	_, err := j.ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_ForeignSignature(t *testing.T) {
	j := newTestJWT()
	other := NewJWT("other-access", "other-refresh", 15*time.Minute, 7*24*time.Hour)
	u := uuid.New()

	foreign, err := other.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(foreign)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_MissingSubject(t *testing.T) {
	j := newTestJWT()

	now := time.Now()
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		TokenType: typeAccess,
	})
	signed, err := anonymous.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = j.ParseAccessToken(signed)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}
