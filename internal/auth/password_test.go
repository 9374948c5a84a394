package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatalf("hash equals plaintext")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Fatalf("correct password did not verify")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Fatalf("wrong password verified")
	}
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatalf("garbage hash verified")
	}
}
