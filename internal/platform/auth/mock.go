package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests.
type MockVerifier struct {
	User  *User
	Error error
}

// Verify returns the configured user or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns a standard named test user.
func TestUser() *User {
	return &User{
		UID:           "test-user-123",
		Email:         "client@example.com",
		EmailVerified: true,
		DisplayName:   "Jane Client",
	}
}

// TestPhoneUser returns a phone-only user with no email or display name,
// the state right after a first phone sign-in.
func TestPhoneUser() *User {
	return &User{
		UID:         "test-phone-456",
		PhoneNumber: "+15551234567",
	}
}

// TestAdminUser returns a user whose email matches the default test
// operator address.
func TestAdminUser() *User {
	return &User{
		UID:           "test-admin-789",
		Email:         "ops@example.com",
		EmailVerified: true,
		DisplayName:   "Operator",
	}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
