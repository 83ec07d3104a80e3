// Package store persists the user's profile between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dhabedank/fitplan/internal/core"
)

// ProfileFile is the file name used under the fitplan directory.
const ProfileFile = "profile.json"

// ProfileStore keeps a single profile in a JSON file. Each Save overwrites
// the previous one.
type ProfileStore struct {
	path string
}

// NewProfileStore creates a store at path.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// DefaultProfilePath returns ~/.fitplan/profile.json.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".fitplan", ProfileFile), nil
}

// Path returns the file backing the store.
func (s *ProfileStore) Path() string {
	return s.path
}

// Save writes the profile, replacing any previous one.
func (s *ProfileStore) Save(p core.UserProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Load reads the saved profile. A missing file is reported with an error
// wrapping fs.ErrNotExist.
func (s *ProfileStore) Load() (core.UserProfile, error) {
	var p core.UserProfile

	data, err := os.ReadFile(s.path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse profile %s: %w", s.path, err)
	}
	p.Normalize()
	return p, nil
}

// LoadOrDefault returns the saved profile, or the defaults when none has
// been saved yet.
func (s *ProfileStore) LoadOrDefault() (core.UserProfile, error) {
	p, err := s.Load()
	if err == nil {
		return p, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return core.DefaultProfile(), nil
	}
	return core.UserProfile{}, err
}
