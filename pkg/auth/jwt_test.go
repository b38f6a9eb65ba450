package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("0123456789abcdef-secret", time.Hour)
	token, err := m.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "ops" || claims.Scope != "write" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewJWTManager("0123456789abcdef-secret", time.Hour)
	other := NewJWTManager("another-secret-value-123", time.Hour)
	expired := NewJWTManager("0123456789abcdef-secret", -time.Minute)

	foreign, _ := other.GenerateToken("ops")
	stale, _ := expired.GenerateToken("ops")

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"expired":      stale,
		"empty":        "",
	} {
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
