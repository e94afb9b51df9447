package security

import (
	"Inkstone/internal/api/config"
	"strings"
	"testing"
)

func init() {
	config.Cfg = &config.Config{
		Auth: config.AuthConfig{JWTSecret: "unit-test-secret", ExpireHours: 1},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("author-1", "a@example.com", "Anne")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AuthorID != "author-1" || claims.Email != "a@example.com" || claims.Name != "Anne" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("author-1", "a@example.com", "Anne")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("expected tampered token to fail validation")
	}
}

func TestExtractSignature(t *testing.T) {
	token, _ := GenerateToken("author-1", "", "")
	sig, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature: %v", err)
	}
	if sig != strings.Split(token, ".")[2] {
		t.Errorf("signature mismatch")
	}

	if _, err := ExtractSignature("no-dots-here"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-value")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPasswordHash("s3cret-value", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPasswordHash("wrong", hash); err == nil {
		t.Error("wrong password accepted")
	}
}
