package auth

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndCheckAccessCode(t *testing.T) {
	hash, err := HashAccessCode("school-2024")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckAccessCode(hash, "school-2024"); err != nil {
		t.Fatalf("expected code to match, got %v", err)
	}
	if err := CheckAccessCode(hash, "wrong"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := CheckAccessCode("", "anything"); err != nil {
		t.Fatalf("expected open access without a hash, got %v", err)
	}
	if _, err := HashAccessCode(""); err == nil {
		t.Fatal("expected empty code to be rejected")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "sess-1", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Fatalf("unexpected session id %q", claims.SessionID)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", "sess-1", time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("test-secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
