// Package account updates the authentication provider's user record. It is
// separate from appointment and preference storage because it writes to the
// identity platform, not Firestore.
package account

import (
	"context"
	"errors"
	"strings"
)

// Service errors
var (
	ErrEmptyName = errors.New("display name is required")
	ErrNotFound  = errors.New("user not found")
)

const maxDisplayNameLength = 100

// Service defines account record operations.
type Service interface {
	// UpdateDisplayName sets the user's display name and returns the
	// trimmed value that was stored.
	UpdateDisplayName(ctx context.Context, uid, name string) (string, error)
}

// NormalizeDisplayName trims and validates a display name.
func NormalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > maxDisplayNameLength {
		name = name[:maxDisplayNameLength]
	}
	return name, nil
}
