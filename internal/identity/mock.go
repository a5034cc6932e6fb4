package identity

import (
	"context"
	"sync"
)

// MockProvider implements Provider for unit tests. Successful sign-in
// operations adopt NextIdentity; a configured Err fails every operation.
type MockProvider struct {
	NextIdentity *Identity
	Err          error

	mu      sync.Mutex
	current *Identity
	subs    map[int]func(*Identity)
	nextSub int
}

// NewMockProvider creates a signed-out mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{subs: make(map[int]func(*Identity))}
}

func (m *MockProvider) Current() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneIdentity(m.current)
}

func (m *MockProvider) Subscribe(fn func(*Identity)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	cur := cloneIdentity(m.current)
	m.mu.Unlock()

	fn(cur)
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Set simulates a provider-side session change (the upstream push).
func (m *MockProvider) Set(id *Identity) {
	m.mu.Lock()
	m.current = cloneIdentity(id)
	cur := cloneIdentity(m.current)
	subs := make([]func(*Identity), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(cur)
	}
}

func (m *MockProvider) SignInWithPassword(_ context.Context, _, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Set(m.NextIdentity)
	return nil
}

func (m *MockProvider) CreateAccount(_ context.Context, name, email, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	id := m.NextIdentity
	if id == nil {
		id = &Identity{UID: "mock-uid", DisplayName: name, Email: email}
	}
	m.Set(id)
	return nil
}

func (m *MockProvider) SendPhoneCode(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "mock-session-info", nil
}

func (m *MockProvider) ConfirmPhoneCode(_ context.Context, _, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Set(m.NextIdentity)
	return nil
}

func (m *MockProvider) UpdateDisplayName(_ context.Context, name string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	cur := m.current
	m.mu.Unlock()
	if cur == nil {
		return ErrNotSignedIn
	}
	updated := *cur
	updated.DisplayName = name
	m.Set(&updated)
	return nil
}

func (m *MockProvider) SignOut(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Set(nil)
	return nil
}

// Compile-time interface check
var _ Provider = (*MockProvider)(nil)
