// Package authtest mints session tokens for handler tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"bookshelf_backend/internals/middlewares/auth"
)

const Secret = "test-secret"

// Token signs an HS256 token for userID that expires in an hour.
func Token(t testing.TB, userID string) string {
	t.Helper()
	return Sign(t, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	require.NoError(t, err)
	return raw
}

// Verifier accepts tokens produced by Token and Sign.
func Verifier(t testing.TB) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(auth.VerifierOpts{Secret: Secret, CookieName: "session_token"})
	require.NoError(t, err)
	return v
}
