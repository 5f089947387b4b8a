package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued by the record backend.
//
// The "sub" claim carries the principal identity the client compares between
// sessions to detect account switches.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// Principal is the parsed subject claim.
	Principal string `json:"-"`
}

// GetPrincipal returns the subject claim of the token.
func (t *Token) GetPrincipal() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting principal from token: %w", err)
	}
	return subject, nil
}

// String implements fmt.Stringer.
func (t *Token) String() string {
	return t.SignedString
}
