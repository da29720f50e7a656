package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 10

// HashPassword hashes a plaintext password using bcrypt.
// Callers must invoke this exactly once per logical password change; feeding
// an already-hashed value back in produces a hash nobody can verify against.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// The comparison is constant-time inside bcrypt.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
