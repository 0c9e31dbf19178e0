package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/courtbook/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested key
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store reads and writes secrets in the OS keyring under constants.KeyringService.
// The zero value is ready to use.
type Store struct {
	// Service overrides constants.KeyringService when set.
	Service string
}

func (s Store) service() string {
	if s.Service != "" {
		return s.Service
	}
	return constants.KeyringService
}

// Get retrieves the secret stored under key.
// Returns ErrNotFound if nothing is stored.
func (s Store) Get(key string) (string, error) {
	value, err := keyring.Get(s.service(), key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores value under key.
func (s Store) Set(key, value string) error {
	if key == "" {
		return errors.New("secret key cannot be empty")
	}
	if value == "" {
		return fmt.Errorf("secret %q cannot be empty", key)
	}
	if err := keyring.Set(s.service(), key, value); err != nil {
		return fmt.Errorf("failed to store %q in keyring: %w", key, err)
	}
	return nil
}

// Delete removes the secret stored under key.
func (s Store) Delete(key string) error {
	err := keyring.Delete(s.service(), key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %q from keyring: %w", key, err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func (s Store) IsAvailable() bool {
	_, err := keyring.Get(s.service(), "test-availability")
	// ErrNotFound means the keyring answered, it is just empty
	return err == nil || err == keyring.ErrNotFound
}
