package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the profile the login provider asserts for a session.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

var (
	ErrInvalidToken = errors.New("invalid or expired identity token")
	ErrNoSubject    = errors.New("identity token has no subject")
)

// Verifier checks a provider-issued token and extracts the identity it
// asserts. The rest of the service treats login as opaque behind this
// interface; tests substitute a stub.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

type tokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HMAC-signed ID tokens from the login front end.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a Verifier for tokens signed with the shared secret.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates the token and maps its claims to an Identity.
func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	return &Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}
