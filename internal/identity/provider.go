package identity

import (
	"context"
	"errors"
	"strings"
)

// Identity is the signed-in account as reported by the identity provider.
// Read-only to the rest of the system; DisplayName, Email and PhoneNumber
// are all optional (a fresh phone sign-up has only a UID and phone number).
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhoneNumber string
}

// OwnerKey returns the canonical key tying appointments to this identity:
// the lowercased email, or "" when no email is linked.
func (id *Identity) OwnerKey() string {
	if id == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(id.Email))
}

// ErrNotSignedIn is returned by operations that require a current session.
var ErrNotSignedIn = errors.New("not signed in")

// ProviderError carries the provider's human-readable rejection message.
// Call sites surface it verbatim and never retry automatically.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

// Provider is the external identity collaborator. Observers subscribe to
// session changes; every other operation only indirectly causes a change by
// altering what the provider next reports.
type Provider interface {
	// Current returns the signed-in identity, or nil.
	Current() *Identity

	// Subscribe registers fn to run on every session change. It is invoked
	// once immediately with the current state. The returned func cancels
	// the subscription.
	Subscribe(fn func(*Identity)) (cancel func())

	SignInWithPassword(ctx context.Context, email, password string) error
	CreateAccount(ctx context.Context, name, email, password string) error

	// SendPhoneCode starts the phone verification flow and returns an
	// opaque session string to pass to ConfirmPhoneCode.
	SendPhoneCode(ctx context.Context, phoneNumber string) (string, error)
	ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) error

	UpdateDisplayName(ctx context.Context, name string) error
	SignOut(ctx context.Context) error
}
