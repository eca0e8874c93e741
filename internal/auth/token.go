package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a bearer token. There is no refresh
// flow; clients re-authenticate after expiry.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken covers malformed tokens, bad signatures, and expiry.
var ErrInvalidToken = errors.New("invalid token")

// Tokens mints and validates stateless bearer tokens. Tokens are HS256
// JWTs carrying the user id in the subject claim; no server-side state
// is kept, so there is no revocation before expiry.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Mint issues a token for userID expiring TokenTTL from now.
func (t *Tokens) Mint(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(TokenTTL).Unix(),
		"iat": now.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the user id it was minted for.
// Side-effect free; any malformed, tampered, or expired token yields
// ErrInvalidToken.
func (t *Tokens) Parse(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tk.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
