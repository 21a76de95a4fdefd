package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password for storage on the account row.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// ComparePassword checks a login attempt against the stored bcrypt hash.
// Returns bcrypt.ErrMismatchedHashAndPassword on a wrong password.
func ComparePassword(hashed string, attempt string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(attempt))
}
