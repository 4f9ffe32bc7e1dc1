package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"finly/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and refuses longer input.
	MaxPasswordBytes = 72
)

var ErrPasswordMismatch = errors.New("password does not match")

// ValidatePassword reports a *domain.ValidationError for passwords bcrypt
// cannot take or that are too short.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.Invalid("password", "password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return domain.Invalid("password", "password must be at most %d bytes long", MaxPasswordBytes)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.Invalid("password", "password must be at most %d bytes long", MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares in constant time. An empty hash never matches.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
