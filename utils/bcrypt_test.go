package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "correct-horse-battery"); err != nil {
		t.Fatalf("matching password rejected: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong-password"); err != bcrypt.ErrMismatchedHashAndPassword {
		t.Fatalf("wrong password: got %v, want ErrMismatchedHashAndPassword", err)
	}
}
