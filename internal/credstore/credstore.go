// Package credstore is the single choke point for the persisted credential:
// the bearer token and the serialized user record.
//
// The store mirrors the legacy web client's localStorage layout as a small
// JSON keystore at ~/.opsdesk/credentials.json. The user record is stored as
// a serialized JSON string under the primary "user" key; older releases wrote
// it under "currentUser" or "authUser", and reads must check all three. The
// token and user record are set and cleared together; Clear removes the
// primary pair plus both legacy keys in one write.
//
// All access is mutex-guarded: the web original relied on a single UI thread
// for last-writer-wins discipline, and the request pipeline, session
// controller, and guard all touch this store from potentially concurrent
// goroutines here.
package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/opsdeskhq/opsdesk/internal/domain"
	"github.com/opsdeskhq/opsdesk/internal/errors"
)

// Keystore keys. "token" and "user" are the primary pair; the two legacy
// user keys are read (and cleared) for backward compatibility.
const (
	keyToken         = "token"
	keyUser          = "user"
	legacyKeyUser    = "currentUser"
	legacyKeyUserAlt = "authUser"
)

// CredentialsFileName is the keystore file name under the config directory.
const CredentialsFileName = "credentials.json"

// Store persists the credential pair behind a mutex.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// NewAt creates a store at dir/credentials.json.
func NewAt(dir string) *Store {
	return New(filepath.Join(dir, CredentialsFileName))
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.load()
	if err != nil {
		return "", err
	}
	return keys[keyToken], nil
}

// User returns the persisted user record, checking the primary key and then
// both legacy keys. A missing or malformed record is a silent miss (nil, nil):
// a corrupt user record must never abort a request.
func (s *Store) User() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, k := range []string{keyUser, legacyKeyUser, legacyKeyUserAlt} {
		raw, ok := keys[k]
		if !ok || raw == "" {
			continue
		}
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			// Tolerated: malformed persisted user JSON.
			continue
		}
		return &u, nil
	}
	return nil, nil
}

// Save persists the token and user record together, replacing the primary
// pair and dropping any legacy duplicates.
func (s *Store) Save(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := map[string]string{keyToken: token}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCredWrite, "failed to serialize user record", err)
		}
		keys[keyUser] = string(raw)
	}
	return s.write(keys)
}

// SetUser replaces only the persisted user record, keeping the token.
// Used by role switching, which must update the persisted role in place.
func (s *Store) SetUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredWrite, "failed to serialize user record", err)
	}

	keys[keyUser] = string(raw)
	delete(keys, legacyKeyUser)
	delete(keys, legacyKeyUserAlt)
	return s.write(keys)
}

// Clear removes the token, the user record, and both legacy user keys.
// Clearing an empty or missing store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCredClear, "failed to clear credentials", err)
	}
	return nil
}

// HasToken reports whether a non-empty token is persisted.
func (s *Store) HasToken() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

func (s *Store) load() (map[string]string, error) {
	keys := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, errors.Wrap(errors.ErrCodeCredRead, "failed to read credentials file", err)
	}

	if err := json.Unmarshal(data, &keys); err != nil {
		// A corrupt keystore behaves like an empty one rather than
		// wedging every request.
		return make(map[string]string), nil
	}
	return keys, nil
}

func (s *Store) write(keys map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCredWrite, "failed to create credentials directory", err)
	}

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredWrite, "failed to marshal credentials", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeCredWrite, "failed to write credentials file", err)
	}
	return nil
}
