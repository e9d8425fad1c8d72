package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "classroom-login")

	token := signToken(t, jwt.MapClaims{
		"iss":     "classroom-login",
		"sub":     "uid-123",
		"email":   "student@school.edu",
		"name":    "Student Example",
		"picture": "https://example.com/p.jpg",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ident, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "uid-123", ident.UID)
	require.Equal(t, "student@school.edu", ident.Email)
	require.Equal(t, "Student Example", ident.DisplayName)
	require.Equal(t, "https://example.com/p.jpg", ident.PhotoURL)
}

func TestJWTVerifier_RejectsExpired(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "classroom-login")

	token := signToken(t, jwt.MapClaims{
		"iss": "classroom-login",
		"sub": "uid-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_RejectsWrongIssuer(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "classroom-login")

	token := signToken(t, jwt.MapClaims{
		"iss": "someone-else",
		"sub": "uid-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_RejectsWrongSecret(t *testing.T) {
	verifier := NewJWTVerifier("another-secret", "classroom-login")

	token := signToken(t, jwt.MapClaims{
		"iss": "classroom-login",
		"sub": "uid-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_RequiresSubject(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "classroom-login")

	token := signToken(t, jwt.MapClaims{
		"iss": "classroom-login",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrNoSubject)
}
