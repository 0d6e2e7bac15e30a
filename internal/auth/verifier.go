package auth

import (
	"ideaforge/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the authenticated caller extracted from a bearer credential.
type Subject struct {
	ID    string
	Email string
}

// Verifier validates a bearer credential and yields the subject it was
// issued for. The production implementation checks a signed identity token;
// tests substitute their own.
type Verifier interface {
	Verify(token string) (*Subject, error)
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a Verifier for HS256-signed identity tokens.
func NewJWTVerifier(secret string) Verifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (*Subject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "invalid authentication token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid authentication token")
	}
	if claims.Subject == "" {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid user token")
	}
	return &Subject{ID: claims.Subject, Email: claims.Email}, nil
}
