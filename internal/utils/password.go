package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost pins the bcrypt work factor used for new password hashes.
// Existing hashes keep the cost they were created with.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash of the plaintext password for storage
// on the user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(hash), err
}

// CheckPasswordHash reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
