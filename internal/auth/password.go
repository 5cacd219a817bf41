// ABOUTME: Password hashing and strength policy for registration and login
// ABOUTME: Uses bcrypt; plaintext never leaves this package's call frames

package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword is returned when a registration password fails the policy
var ErrWeakPassword = errors.New("password does not meet the strength policy")

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// ValidatePassword enforces the registration password policy: at least eight
// characters with an upper-case letter, a lower-case letter, a digit and a
// symbol. Returns ErrWeakPassword on any violation.
func ValidatePassword(plaintext string) error {
	if len(plaintext) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}

	return nil
}
