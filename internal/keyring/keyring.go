// Package keyring caches the tracker session in the OS keyring.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/timesheet/internal/constants"
)

var (
	// ErrNotFound is returned when no session is stored in the keyring
	ErrNotFound = errors.New("session not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Session is the cached login.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// GetSession retrieves the cached session. Returns ErrNotFound if nothing is
// stored.
func GetSession() (Session, error) {
	raw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("stored session is corrupt: %w", err)
	}
	if s.Token == "" {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// SetSession stores the session in the OS keyring.
func SetSession(s Session) error {
	if s.Token == "" {
		return errors.New("token cannot be empty")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, string(data)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// DeleteSession removes the cached session.
func DeleteSession() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}

// Store adapts the package functions to auth.Store.
type Store struct{}

func (Store) Load() (Session, error) { return GetSession() }
func (Store) Save(s Session) error { return SetSession(s) }

func (Store) Clear() error {
	if err := DeleteSession(); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
