// Package jwt validates the HMAC bearer tokens issued to operators for the
// admin surface (cleanup, sweep). Token issuance lives outside this service.
package jwt

import (
	"errors"
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Subject string
	Role    string
}

type Service interface {
	ValidateToken(token string) (Claims, error)
}

type HMACService struct {
	secret []byte
}

func NewHMACService(secret string) *HMACService {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	return &HMACService{secret: []byte(secret)}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

func (s *HMACService) ValidateToken(token string) (Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	var claims tokenClaims
	parsed, err := jwtlib.ParseWithClaims(token, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	return Claims{Subject: claims.Subject, Role: claims.Role}, nil
}

var _ Service = (*HMACService)(nil)
