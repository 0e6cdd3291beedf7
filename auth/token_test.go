package auth

import (
	"testing"
	"time"

	"pgfinder/globals"
)

func TestGenerateAndValidateToken(t *testing.T) {
	globals.JwtSecret = []byte("test-secret-key")

	token, err := GenerateToken("68b1c2d3e4f5a6b7c8d9e0f1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AdminID != "68b1c2d3e4f5a6b7c8d9e0f1" {
		t.Errorf("unexpected adminId: %q", claims.AdminID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	globals.JwtSecret = []byte("secret1")
	token, _ := GenerateToken("abc")

	globals.JwtSecret = []byte("secret2")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	globals.JwtSecret = []byte("test-secret-key")
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	globals.JwtSecret = []byte("test-secret-key")
	token, _ := GenerateToken("abc")
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	diff := time.Until(claims.ExpiresAt.Time) - TokenExpiry
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from 1h: diff=%v", diff)
	}
}
