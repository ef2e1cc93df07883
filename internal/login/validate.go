package login

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIdentifier = errors.New("invalid login code")
	ErrInvalidSecret     = errors.New("invalid password")
)

// Normalize filters non-digit characters out of raw and truncates the
// result to at most n digits.
func Normalize(raw string, n int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == n {
			break
		}
	}
	return b.String()
}

func validateIdentifier(id string, n int) error {
	if len(id) != n {
		return fmt.Errorf("%w: must be exactly %d digits", ErrInvalidIdentifier, n)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: must contain only digits", ErrInvalidIdentifier)
		}
	}
	return nil
}

func validateSecret(secret string, min int) error {
	if len(secret) < min {
		if min <= 1 {
			return fmt.Errorf("%w: must not be empty", ErrInvalidSecret)
		}
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidSecret, min)
	}
	return nil
}
