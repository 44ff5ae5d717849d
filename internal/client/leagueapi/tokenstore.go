package leagueapi

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const tokenFileName = "auth_token"

// TokenStore persists the bearer token between CLI runs.
type TokenStore struct {
	path string
}

// NewTokenStore stores the token under dir. An empty dir means the user
// config directory.
func NewTokenStore(dir string) (*TokenStore, error) {
	if strings.TrimSpace(dir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, crerr.Wrap(err, "resolve user config dir")
		}
		dir = filepath.Join(base, "youth-league")
	}
	return &TokenStore{path: filepath.Join(dir, tokenFileName)}, nil
}

func (s *TokenStore) Path() string { return s.path }

// Load returns "" when no token has been saved.
func (s *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", crerr.Wrap(err, "read token")
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *TokenStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return validationf("token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return crerr.Wrap(err, "create token dir")
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return crerr.Wrap(err, "write token")
	}
	return nil
}

func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return crerr.Wrap(err, "remove token")
	}
	return nil
}
