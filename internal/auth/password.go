package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only consumes the first 72 bytes of input.
const maxPasswordBytes = 72

// HashPassword turns a plaintext password into a bcrypt hash. Input is cut
// to the 72-byte bcrypt limit before hashing; salt and cost factor are
// embedded in the resulting hash string.
func HashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
