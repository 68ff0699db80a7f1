package keycloak

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiap-postech/auth-service/pkg/apperror"
)

// TokenInspector decodes provider JWTs without verifying signatures. It is
// a read-only convenience for logging and expiry checks; never use it to
// make trust decisions.
type TokenInspector struct {
	parser *jwt.Parser
}

func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser()}
}

// Decode returns the unverified claims of token.
func (t *TokenInspector) Decode(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := t.parser.ParseUnverified(token, claims); err != nil {
		return nil, apperror.InvalidToken("malformed token")
	}
	return claims, nil
}

// IsExpired reports whether token is past its exp claim. Tokens without an
// exp claim, or that fail to decode, count as expired.
func (t *TokenInspector) IsExpired(token string) bool {
	return t.TimeUntilExpiry(token) == 0
}

// TimeUntilExpiry returns the remaining lifetime of token, clamped at zero.
func (t *TokenInspector) TimeUntilExpiry(token string) time.Duration {
	claims, err := t.Decode(token)
	if err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	if d := time.Until(exp.Time); d > 0 {
		return d
	}
	return 0
}

// UserInfo is the identity portion of a decoded token.
type UserInfo struct {
	UserID    string
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// UserInfo extracts the standard identity claims from token.
func (t *TokenInspector) UserInfo(token string) (UserInfo, error) {
	claims, err := t.Decode(token)
	if err != nil {
		return UserInfo{}, err
	}
	return UserInfo{
		UserID:    claimString(claims, "sub"),
		Username:  claimString(claims, "preferred_username"),
		Email:     claimString(claims, "email"),
		FirstName: claimString(claims, "given_name"),
		LastName:  claimString(claims, "family_name"),
	}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
