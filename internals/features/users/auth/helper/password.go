package helpers

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hash password dengan bcrypt (cost default)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash cocokkan hash tersimpan dengan password plaintext
func CheckPasswordHash(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
