package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token couples a parsed JWT with the owner id extracted from its subject
// claim. The server issues and validates tokens; the client only carries a
// pre-issued one.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims exposes the standard claim set (sub, exp, iat, iss).
	jwt.RegisteredClaims

	// SignedString is the compact serialized form ready for the
	// Authorization header.
	SignedString string `json:"-"`

	// UserID caches the parsed subject claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as a base-10 owner id.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact serialized token. Implements [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}
