package security_test

import (
	"testing"

	"plantlog/pkg/security"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	// Known SHA-256 vector
	assert.Equal(t, "a5150e724a1858d6117e6bc98753dd79ce70e48df9d51cda9bc52e752917724b",
		security.HashPassword("Abcdef1!"))

	// Deterministic: same input, same digest
	assert.Equal(t, security.HashPassword("Secur3!pass"), security.HashPassword("Secur3!pass"))

	// Fixed length hex output regardless of input length
	assert.Len(t, security.HashPassword(""), 64)
	assert.Len(t, security.HashPassword("a very long passphrase with spaces and symbols !@#$"), 64)

	// Distinct inputs produce distinct digests for the test corpus
	assert.NotEqual(t, security.HashPassword("Abcdef1!"), security.HashPassword("Abcdef1?"))
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want bool
	}{
		{"all constraints satisfied", "Abcdef1!", true},
		{"longer valid password", "Secur3!pass", true},
		{"too short", "Ab1!", false},
		{"exactly seven chars", "Abcde1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special character", "Abcdefg1", false},
		{"lowercase only", "abcdefgh", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, security.IsStrongPassword(tt.pw))
		})
	}
}
