package apiclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// TokenClaims decodes the claims of token without verifying its signature.
// The suites never hold the signing key; they only read what the server issued.
func TokenClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// TokenExpiry returns the exp claim of token.
func TokenExpiry(token string) (time.Time, error) {
	claims, err := TokenClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// TokenExpiresWithin reports whether the client's token expires before now+d.
// A client without a token always reports true.
func (c *Client) TokenExpiresWithin(now time.Time, d time.Duration) bool {
	token := c.Token()
	if token == "" {
		return true
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		return !errors.Is(err, ErrNoExpiry)
	}
	return exp.Before(now.Add(d))
}
