package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can distinguish.
// Longer candidates are rejected rather than silently truncated.
const MaxPasswordLength = 72

var (
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrPasswordNotSet    = errors.New("admin password not configured")
)

// PasswordVerifier checks submitted admin passwords against a single
// bcrypt hash.
type PasswordVerifier struct {
	hash []byte
}

func NewPasswordVerifier(hash string) (*PasswordVerifier, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, ErrPasswordNotSet
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("auth: invalid bcrypt hash: %w", err)
	}

	return &PasswordVerifier{hash: []byte(hash)}, nil
}

// NewPasswordVerifierFromPlain hashes password once at startup so the
// plaintext does not stay in memory longer than configuration loading.
func NewPasswordVerifierFromPlain(password string) (*PasswordVerifier, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewPasswordVerifier(hash)
}

func (v *PasswordVerifier) Verify(password string) error {
	if v == nil || len(v.hash) == 0 {
		return ErrPasswordNotSet
	}
	if password == "" || len(password) > MaxPasswordLength {
		return ErrIncorrectPassword
	}

	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrIncorrectPassword
		}
		return fmt.Errorf("auth: compare: %w", err)
	}

	return nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordNotSet
	}
	if len(password) > MaxPasswordLength {
		return "", fmt.Errorf("auth: password longer than %d bytes", MaxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash: %w", err)
	}
	return string(hash), nil
}
