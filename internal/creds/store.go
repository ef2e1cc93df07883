// Package creds owns local credential persistence: the saved login
// identifier lives in the app preferences file, the secret in an
// encrypted vault. No other component keeps a copy of either beyond the
// lifetime of a sign-in attempt.
package creds

import "fmt"

const (
	// ServiceName addresses the vault entry holding the login secret.
	ServiceName = "com.example.espk.auth"
	// SecretAccount names the vault account for the saved password.
	SecretAccount = "auth.saved_password"
	// IdentifierKey is the preferences key for the saved login code.
	IdentifierKey = "auth.saved_login"
)

// Store persists the login identifier and secret between launches.
type Store interface {
	// SavedIdentifier returns the persisted identifier, if any.
	SavedIdentifier() (string, bool)
	// HasValid reports whether a well-formed identifier and a non-empty
	// secret are both present.
	HasValid() bool
	// Save overwrites any stored credentials with the given pair.
	Save(identifier, secret string) error
	// Clear removes both the identifier and the secret. Absence of
	// either entry is not an error.
	Clear() error
}

// StorageError wraps a failure of the underlying durable storage.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credential storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// validIdentifier reports whether s is exactly length digits, all numeric.
func validIdentifier(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
