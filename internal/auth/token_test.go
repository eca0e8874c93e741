package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParseRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	tok, err := tokens.Mint("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseRejectsWrongSignature(t *testing.T) {
	minted, err := NewTokens("secret-a").Mint("user-123")
	require.NoError(t, err)

	_, err = NewTokens("secret-b").Parse(minted)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	claims := jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-25 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokens(secret).Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMalformedToken(t *testing.T) {
	tokens := NewTokens("test-secret")
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	secret := "test-secret"
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokens(secret).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
