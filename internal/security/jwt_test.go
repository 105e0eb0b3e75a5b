package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSignAndParseRoundTrip(t *testing.T) {
	m, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := m.Sign("a@x.com", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sub, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %q", sub)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := m.Sign("a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	signer, err := NewJWTManager("another-secret-another-secret-32", "HS256")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	token, err := signer.Sign("a@x.com", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	verifier, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseMalformedToken(t *testing.T) {
	m, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestParseRejectsForeignAlgorithm(t *testing.T) {
	m, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	raw, err := foreign.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign foreign: %v", err)
	}
	if _, err := m.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign alg, got %v", err)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	m, err := NewJWTManager(testSecret, "HS256")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	raw, err := anon.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestNewJWTManagerRejectsUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewJWTManager(testSecret, "RS256"); err == nil {
		t.Fatal("expected error for asymmetric algorithm")
	}
	if _, err := NewJWTManager(testSecret, "none"); err == nil {
		t.Fatal("expected error for none algorithm")
	}
}
