package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash equals the plaintext")
	}

	if !svc.Verify(hash, "correct-horse-battery") {
		t.Error("correct password rejected")
	}
	if svc.Verify(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
	if svc.Verify("", "correct-horse-battery") {
		t.Error("empty hash accepted")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	second, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestPasswordServiceImpl_GenerateRandom(t *testing.T) {
	svc := NewPasswordService()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := svc.GenerateRandom()
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		if len(password) != generatedPassLen {
			t.Fatalf("expected %d characters, got %q", generatedPassLen, password)
		}
		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q has no lowercase letter", password)
		}
		if !strings.ContainsAny(password, uppercaseChars) {
			t.Errorf("password %q has no uppercase letter", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Errorf("password %q has no digit", password)
		}
		if !strings.ContainsAny(password, specialChars) {
			t.Errorf("password %q has no special character", password)
		}
		seen[password] = true
	}
	if len(seen) != 20 {
		t.Errorf("expected 20 distinct passwords, got %d", len(seen))
	}
}
