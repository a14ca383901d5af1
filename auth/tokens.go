package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer mints session tokens for doctors who passed MFA verification.
type TokenIssuer interface {
	Issue(doctorId string) (string, error)
}

func NewTokenIssuer(config *Config) (TokenIssuer, error) {
	return &tokenIssuer{
		secret:     []byte(config.Secret),
		sessionTTL: config.SessionTTL,
	}, nil
}

type tokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
}

func (t *tokenIssuer) Issue(doctorId string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   doctorId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.sessionTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func parseToken(secret []byte, raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrUnauthenticated
	}

	return claims, nil
}
