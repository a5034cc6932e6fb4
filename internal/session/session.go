// Package session derives portal session state from identity provider
// notifications. It is the only coupling between the authentication flow and
// the appointment dashboard: the dashboard subscribes to a Hub and never
// talks to the provider directly.
package session

import (
	"strings"

	"github.com/jirehclean/portal/internal/identity"
)

// State is the classified session state.
type State int

const (
	// Anonymous means no identity is present: marketing content visible,
	// dashboard hidden.
	Anonymous State = iota

	// AuthenticatedNoName means an identity is present but lacks a display
	// name, common right after a first phone sign-in. The dashboard shows a
	// blocking name-collection prompt until resolved.
	AuthenticatedNoName

	// AuthenticatedNamed is the ordinary signed-in state.
	AuthenticatedNamed

	// AuthenticatedAdmin refines the authenticated states for the one
	// distinguished operator address; it reveals the assignment panel.
	AuthenticatedAdmin
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case AuthenticatedNoName:
		return "authenticated_no_name"
	case AuthenticatedNamed:
		return "authenticated_named"
	case AuthenticatedAdmin:
		return "authenticated_admin"
	default:
		return "unknown"
	}
}

// Authenticated reports whether the state carries an identity.
func (s State) Authenticated() bool {
	return s != Anonymous
}

// Classify maps an identity-or-absent to a session state. adminEmail is the
// distinguished operator address; empty disables the admin refinement.
func Classify(id *identity.Identity, adminEmail string) State {
	if id == nil {
		return Anonymous
	}
	if adminEmail != "" && strings.EqualFold(id.OwnerKey(), strings.TrimSpace(adminEmail)) {
		return AuthenticatedAdmin
	}
	if id.DisplayName == "" {
		return AuthenticatedNoName
	}
	return AuthenticatedNamed
}

// Session pairs an identity with its classified state.
type Session struct {
	State    State
	Identity *identity.Identity
}

// NeedsName reports whether the name-collection prompt should block:
// authenticated but no display name yet. Admins are prompted too.
func (s Session) NeedsName() bool {
	return s.State.Authenticated() && s.Identity != nil && s.Identity.DisplayName == ""
}

// OwnerKey returns the appointment owner key for the session, or "" for
// anonymous or phone-only sessions.
func (s Session) OwnerKey() string {
	return s.Identity.OwnerKey()
}
