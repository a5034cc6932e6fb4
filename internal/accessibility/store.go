package accessibility

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jirehclean/portal/internal/service/preferences"
)

// Store persists the preference record between sessions. The record type
// cannot carry the reader flag, so reader mode is structurally unable to
// survive a reload.
type Store interface {
	Load() (preferences.Preferences, error)
	Save(preferences.Preferences) error
}

// storedPreferences is the on-disk layout. fontLevel is the canonical field
// name for the ordinal scale.
type storedPreferences struct {
	FontLevel      int  `json:"fontLevel"`
	HighContrast   bool `json:"highContrast"`
	HighlightLinks bool `json:"highlightLinks"`
}

// FileStore keeps the record in one JSON file, typically under the user
// config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath places the preference file under the user config dir.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jirehclean", "accessibility.json"), nil
}

// Load reads the record. A missing or unreadable file yields defaults, not
// an error worth surfacing; corrupt content likewise falls back.
func (s *FileStore) Load() (preferences.Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return preferences.Defaults(), nil
		}
		return preferences.Defaults(), err
	}

	var sp storedPreferences
	if err := json.Unmarshal(data, &sp); err != nil {
		return preferences.Defaults(), err
	}
	return preferences.Preferences{
		FontLevel:      sp.FontLevel,
		HighContrast:   sp.HighContrast,
		HighlightLinks: sp.HighlightLinks,
	}.Normalize(), nil
}

// Save writes the record, creating the parent directory on first use.
func (s *FileStore) Save(p preferences.Preferences) error {
	p = p.Normalize()
	data, err := json.Marshal(storedPreferences{
		FontLevel:      p.FontLevel,
		HighContrast:   p.HighContrast,
		HighlightLinks: p.HighlightLinks,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	prefs preferences.Preferences
	set   bool

	// LoadErr / SaveErr force failures.
	LoadErr error
	SaveErr error

	// Saves counts successful writes.
	Saves int
}

func (m *MemStore) Load() (preferences.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return preferences.Defaults(), m.LoadErr
	}
	if !m.set {
		return preferences.Defaults(), nil
	}
	return m.prefs, nil
}

func (m *MemStore) Save(p preferences.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.prefs = p
	m.set = true
	m.Saves++
	return nil
}

// Stored returns the last saved record.
func (m *MemStore) Stored() preferences.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// Compile-time interface checks
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemStore)(nil)
)
