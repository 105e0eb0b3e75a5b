package security

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token that fails verification:
// bad signature, malformed structure, or elapsed expiry. The cause is not
// surfaced to callers so the API cannot be used as an error oracle.
var ErrInvalidToken = errors.New("invalid token")

var supportedMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// JWTManager signs and verifies bearer tokens with a process-wide symmetric
// secret. Secret and algorithm are fixed at startup and never rotated.
type JWTManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

func NewJWTManager(secret, algorithm string) (*JWTManager, error) {
	method, ok := supportedMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
	return &JWTManager{secret: []byte(secret), method: method}, nil
}

// Sign issues a token with subject set to the given email and an absolute
// expiry of now+ttl.
func (m *JWTManager) Sign(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(m.method, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry together and returns the subject
// email. Any failure collapses to ErrInvalidToken; the underlying cause is
// kept to debug logs only.
func (m *JWTManager) Parse(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}))
	if err != nil {
		slog.Debug("token verification failed", "error", err.Error())
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
