package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	auth := NewAuthService([]byte("secret"))

	hash, err := auth.HashPassword("abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, "abcd1234", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	assert.True(t, auth.CheckPassword("abcd1234", hash))
	assert.False(t, auth.CheckPassword("abcd12345", hash))
	assert.False(t, auth.CheckPassword("", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	auth := NewAuthService([]byte("secret"))

	h1, err := auth.HashPassword("abcd1234")
	require.NoError(t, err)
	h2, err := auth.HashPassword("abcd1234")
	require.NoError(t, err)

	// same input, different salt, different hash; only the compare routine matches
	assert.NotEqual(t, h1, h2)
	assert.True(t, auth.CheckPassword("abcd1234", h1))
	assert.True(t, auth.CheckPassword("abcd1234", h2))
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	auth := NewAuthService([]byte("super-secret"))

	tok, err := auth.GenerateToken(42, false)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := auth.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAuthService([]byte("right-secret")).GenerateToken(1, false)
	require.NoError(t, err)

	_, err = NewAuthService([]byte("wrong-secret")).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewAuthService(secret).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none style tokens must not pass
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewAuthService([]byte("secret")).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewAuthService([]byte("k")).ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestGenerateToken_RememberExtendsExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	auth := NewAuthService(secret)

	parse := func(tok string) *Claims {
		claims := &Claims{}
		_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		require.NoError(t, err)
		return claims
	}

	short, err := auth.GenerateToken(1, false)
	require.NoError(t, err)
	long, err := auth.GenerateToken(1, true)
	require.NoError(t, err)

	shortExp := parse(short).ExpiresAt.Time
	longExp := parse(long).ExpiresAt.Time

	assert.WithinDuration(t, time.Now().Add(24*time.Hour), shortExp, time.Minute)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), longExp, time.Minute)
}
