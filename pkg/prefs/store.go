package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// Store is the interface for preference storage backends.
type Store interface {
	// Get retrieves a profile. A missing profile is PROFILE_NOT_FOUND.
	Get(ctx context.Context, id string) (*Preferences, error)

	// Put creates or replaces a profile.
	Put(ctx context.Context, id string, p *Preferences) error

	// Delete removes a profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored profile id in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// GetOrDefault returns the stored profile, or Default when none exists yet.
func GetOrDefault(ctx context.Context, s Store, id string) (*Preferences, error) {
	p, err := s.Get(ctx, id)
	if verrors.Is(err, verrors.ErrCodeProfileNotFound) {
		return Default(), nil
	}
	return p, err
}

// =============================================================================
// FileStore
// =============================================================================

// FileStore keeps each profile as a JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to $XDG_CONFIG_HOME/venture/profiles
// (~/.config/venture/profiles).
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns the default profile directory.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "venture", "profiles"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "venture", "profiles"), nil
}

func (s *FileStore) profilePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Preferences, error) {
	if err := verrors.ValidateProfileID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.profilePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, verrors.New(verrors.ErrCodeProfileNotFound, "profile %q not found", id)
		}
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeInvalidProfile, err, "parse profile %q", id)
	}
	return &p, nil
}

func (s *FileStore) Put(ctx context.Context, id string, p *Preferences) error {
	if err := verrors.ValidateProfileID(id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	// Write to a temp file first so a crash never leaves a half-written profile.
	path := s.profilePath(id)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename profile file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := verrors.ValidateProfileID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.profilePath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove profile file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read profile dir: %w", err)
	}
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for profile files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
