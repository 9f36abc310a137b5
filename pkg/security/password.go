// Package security contains the credential hashing and password policy
// helpers shared by the auth service and its tests.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"
)

// HashPassword returns the lowercase hexadecimal SHA-256 digest of the
// plaintext. The digest is deterministic and unsalted, so the stored value
// can be compared with a fresh digest on login. Identical passwords across
// accounts therefore produce identical digests; that property is inherited
// from the persisted schema and kept for compatibility.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// IsStrongPassword reports whether pw satisfies the registration policy:
// at least 8 characters, one uppercase letter, one digit and one character
// outside the alphanumeric set.
func IsStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}
	return hasUpper && hasDigit && hasSpecial
}
