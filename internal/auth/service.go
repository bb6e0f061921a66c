// Package auth issues and checks the bearer tokens that grant access to one
// editing session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "sketchpad"

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a token whose subject is sessionID.
func (s *Service) IssueToken(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the session ID a token was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sessionID, ok := claims["sub"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sessionID, nil
}
