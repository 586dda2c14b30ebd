package utils

import (
	"errors" // Sentinel errors

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// ErrEmptyPassword is returned when hashing or comparing an empty password
var ErrEmptyPassword = errors.New("password cannot be empty")

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored hash
func ComparePassword(password, hash string) (bool, error) {
	if password == "" {
		return false, ErrEmptyPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
