package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrToken is returned for a missing, malformed, expired or forged token.
var ErrToken = errors.New("invalid token")

// Claims identify the holder of an API token.
type Claims struct {
	Learner string `json:"learner"`
	jwt.RegisteredClaims
}

// IssueToken mints an HS256 token for learner valid for ttl from now.
func IssueToken(secret, learner string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: empty signing secret", ErrToken)
	}
	claims := &Claims{
		Learner: learner,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "khalari",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("khalari"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrToken
	}
	return claims, nil
}
