package account

import (
	"context"
	"sync"
)

// MockService implements Service in memory for tests.
type MockService struct {
	mu    sync.Mutex
	names map[string]string

	// Err, when set, is returned by every call.
	Err error
}

var _ Service = (*MockService)(nil)

// NewMockService creates an empty in-memory account service.
func NewMockService() *MockService {
	return &MockService{names: make(map[string]string)}
}

// UpdateDisplayName stores the trimmed name for the uid.
func (m *MockService) UpdateDisplayName(_ context.Context, uid, name string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	name, err := NormalizeDisplayName(name)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.names[uid] = name
	m.mu.Unlock()
	return name, nil
}

// Name returns the stored name for a uid.
func (m *MockService) Name(uid string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.names[uid]
}
