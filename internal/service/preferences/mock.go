package preferences

import (
	"context"
	"sync"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu    sync.Mutex
	prefs map[string]Preferences

	// Err fails every operation when set.
	Err error
}

// NewMockService creates an empty mock store.
func NewMockService() *MockService {
	return &MockService{prefs: make(map[string]Preferences)}
}

func (m *MockService) Get(_ context.Context, userID string) (Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return Defaults(), m.Err
	}
	p, ok := m.prefs[userID]
	if !ok {
		return Defaults(), nil
	}
	return p.Normalize(), nil
}

func (m *MockService) Put(_ context.Context, userID string, prefs Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.prefs[userID] = prefs.Normalize()
	return nil
}

func (m *MockService) Reset(_ context.Context, userID string) (Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return Defaults(), m.Err
	}
	m.prefs[userID] = Defaults()
	return Defaults(), nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
