package utils

import (
	"encoding/base64"
	"strings"
	"testing"
)

// fast derivation for tests; production keeps DefaultPasswordParams
var testParams = PasswordParams{SaltLength: 16, KeyLength: 32, Iterations: 1000}

func TestHashPasswordFormat(t *testing.T) {
	stored, err := testParams.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		t.Fatalf("expected salt:key, got %q", stored)
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if len(salt) != testParams.SaltLength {
		t.Errorf("salt length = %d, want %d", len(salt), testParams.SaltLength)
	}

	key, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("key is not valid base64: %v", err)
	}
	if len(key) != testParams.KeyLength {
		t.Errorf("key length = %d, want %d", len(key), testParams.KeyLength)
	}
}

func TestHashPasswordSaltsAreFresh(t *testing.T) {
	first, err := testParams.HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := testParams.HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
	if !testParams.VerifyPassword("same password", first) || !testParams.VerifyPassword("same password", second) {
		t.Error("both hashes should still verify")
	}
}

func TestVerifyPassword(t *testing.T) {
	stored, err := testParams.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !testParams.VerifyPassword("secret1", stored) {
		t.Error("correct password should verify")
	}
	if testParams.VerifyPassword("wrong", stored) {
		t.Error("wrong password should not verify")
	}
	if testParams.VerifyPassword("", stored) {
		t.Error("empty password should not verify")
	}
	if testParams.VerifyPassword("Secret1", stored) {
		t.Error("password check must be case sensitive")
	}
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"empty salt", ":c29tZWtleQ=="},
		{"empty key", "c29tZXNhbHQ=:"},
		{"only separator", ":"},
		{"too many parts", "a:b:c"},
		{"salt not base64", "not base64!!:c29tZWtleQ=="},
		{"plain text", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testParams.VerifyPassword("anything", tt.stored) {
				t.Errorf("VerifyPassword(%q) = true, want false", tt.stored)
			}
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword(10)
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		if len(pw) != 10 {
			t.Fatalf("length = %d, want 10", len(pw))
		}
		for _, r := range pw {
			if !strings.ContainsRune(passwordAlphabet, r) {
				t.Fatalf("unexpected character %q in %q", r, pw)
			}
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Error("generated passwords should not repeat")
	}
}
