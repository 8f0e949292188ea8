package utils

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength matches the identity provider's weak-password rule.
const MinPasswordLength = 6

var passwordCost = 14

// HashPassword hashes a given password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with its hashed version.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func IsWeakPassword(password string) bool {
	return len(password) < MinPasswordLength
}
