// Package credentials keeps Flickr API keys in the system keyring so they do
// not have to live in config.json.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "flickr-indexer"
	keyringPrefix  = "flickr_"

	// DefaultProfile is used when no profile is named
	DefaultProfile = "default"
)

var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Credentials is a Flickr API key pair
type Credentials struct {
	APIKey       string    `json:"api_key"`
	APISecret    string    `json:"api_secret"`
	LastModified time.Time `json:"last_modified"`
}

// Validate checks that both halves of the key pair are present
func (c *Credentials) Validate() error {
	if c == nil || strings.TrimSpace(c.APIKey) == "" || strings.TrimSpace(c.APISecret) == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// KeyringStore stores one key pair per profile in the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keyring-backed store
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// Available reports whether the system keyring can be written
func (k *KeyringStore) Available() bool {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(keyringService, testKey)
	return true
}

// Store saves credentials under profile
func (k *KeyringStore) Store(profile string, creds *Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	stored := *creds
	stored.LastModified = time.Now()

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := keyring.Set(keyringService, key(profile), string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	return nil
}

// Retrieve gets the credentials stored under profile
func (k *KeyringStore) Retrieve(profile string) (*Credentials, error) {
	data, err := keyring.Get(keyringService, key(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}

	return &creds, nil
}

// Delete removes the credentials stored under profile
func (k *KeyringStore) Delete(profile string) error {
	err := keyring.Delete(keyringService, key(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}

	return nil
}

// Exists checks if credentials are stored under profile
func (k *KeyringStore) Exists(profile string) bool {
	_, err := keyring.Get(keyringService, key(profile))
	return err == nil
}

// Lookup returns a function that reads profile from the keyring. A profile
// with nothing stored yields empty strings rather than an error, so the
// caller can report which setting is missing.
func (k *KeyringStore) Lookup(profile string) func() (string, string, error) {
	return func() (string, string, error) {
		creds, err := k.Retrieve(profile)
		if errors.Is(err, ErrCredentialsNotFound) {
			return "", "", nil
		}
		if err != nil {
			return "", "", err
		}
		return creds.APIKey, creds.APISecret, nil
	}
}

// Mask hides all but the first four characters of a secret
func Mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}

func key(profile string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return keyringPrefix + profile
}
