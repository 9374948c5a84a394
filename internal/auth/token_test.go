package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "jane@example.com", "ADMIN", 24)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if tok.Token == "" {
		t.Fatalf("empty token string")
	}
	if remaining := time.Until(tok.Exp); remaining < 23*time.Hour {
		t.Fatalf("expiry too close: %s", remaining)
	}

	p, err := ParseSessionToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != 42 || p.Email != "jane@example.com" || p.Role != "ADMIN" {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestSessionTokenCarriesIssuanceRole(t *testing.T) {
	// The role inside the token is frozen at issuance; parsing returns what
	// was embedded, independent of any later change to the user record.
	tok, err := NewSessionToken(testSecret, 7, "u@example.com", "USER", 1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	p, err := ParseSessionToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Role != "USER" {
		t.Fatalf("role = %q, want USER", p.Role)
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 1, "u@example.com", "USER", -1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testSecret, tok.Token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 1, "u@example.com", "USER", 1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken("other-secret", tok.Token); err == nil {
		t.Fatalf("token with wrong signature accepted")
	}
}

func TestParseSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken(testSecret, "not.a.jwt"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
