package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PasswordParams fixes the PBKDF2 derivation used for share passwords.
// Stored hashes encode these implicitly, so changing them invalidates
// every existing hash. Tests inject a low iteration count.
type PasswordParams struct {
	SaltLength int
	KeyLength  int
	Iterations int
}

var DefaultPasswordParams = PasswordParams{
	SaltLength: 16,
	KeyLength:  32,
	Iterations: 100000,
}

// HashPassword derives a salted PBKDF2-SHA256 key from plain and
// returns it as "base64(salt):base64(key)". Not deterministic: every
// call draws a fresh salt.
func (p PasswordParams) HashPassword(plain string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plain), salt, p.Iterations, p.KeyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword re-derives the key from plain with the stored salt and
// compares. Malformed or corrupted input never matches and never
// panics; verification failures are a boolean, not an error.
func (p PasswordParams) VerifyPassword(plain, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(plain), salt, p.Iterations, p.KeyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(key) == parts[1]
}

const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GeneratePassword returns a random viewer password of the given
// length, skipping look-alike characters.
func GeneratePassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}
