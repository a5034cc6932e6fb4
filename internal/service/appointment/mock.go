package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu     sync.Mutex
	appts  map[string]Appointment
	nextID int

	// ListErr fails ListForClient when set (e.g., ErrIndexRequired).
	ListErr error
}

// NewMockService creates an empty mock store.
func NewMockService() *MockService {
	return &MockService{appts: make(map[string]Appointment)}
}

// Seed inserts an appointment directly, bypassing validation.
func (m *MockService) Seed(a Appointment) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		m.nextID++
		a.ID = fmt.Sprintf("appt-%d", m.nextID)
	}
	a.ClientEmail = normalizeOwner(a.ClientEmail)
	m.appts[a.ID] = a
	return a.ID
}

func (m *MockService) ListForClient(_ context.Context, clientEmail string) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	owner := normalizeOwner(clientEmail)
	var out []Appointment
	for _, a := range m.appts {
		if a.ClientEmail == owner {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockService) Request(_ context.Context, params RequestParams) (*Appointment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	a := Appointment{
		ClientEmail: normalizeOwner(params.ClientEmail),
		Date:        params.Date,
		Time:        params.Time,
		ServiceType: params.ServiceType,
		Frequency:   params.Frequency,
		Status:      StatusRequested,
		CreatedAt:   time.Now().UTC(),
	}
	a.ID = m.Seed(a)
	return &a, nil
}

func (m *MockService) Assign(_ context.Context, params AssignParams) (*Appointment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	a := Appointment{
		ClientEmail: normalizeOwner(params.ClientEmail),
		Date:        params.Date,
		Time:        params.Time,
		ServiceType: params.ServiceType,
		Frequency:   params.Frequency,
		Status:      StatusScheduled,
		CreatedAt:   time.Now().UTC(),
		AssignedBy:  normalizeOwner(params.AssignedBy),
	}
	a.ID = m.Seed(a)
	return &a, nil
}

func (m *MockService) Get(_ context.Context, id string) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MockService) Cancel(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.appts[id]; !ok {
		return ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

// Len reports the number of stored appointments.
func (m *MockService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appts)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
