package token

import (
	"testing"
	"time"
)

func TestUnsubscribeTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	signed, err := m.UnsubscribeToken("user-123")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	userID, err := m.VerifyUnsubscribeToken(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", -time.Minute)

	signed, err := m.UnsubscribeToken("user-123")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.VerifyUnsubscribeToken(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := NewManager("secret-a", time.Hour).UnsubscribeToken("user-123")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).VerifyUnsubscribeToken(signed); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)
	if _, err := m.VerifyUnsubscribeToken("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
