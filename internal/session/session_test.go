package session

import (
	"testing"

	"github.com/jirehclean/portal/internal/identity"
)

const testAdminEmail = "ops@example.com"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		id   *identity.Identity
		want State
	}{
		{
			name: "nil identity is anonymous",
			id:   nil,
			want: Anonymous,
		},
		{
			name: "named identity",
			id:   &identity.Identity{UID: "u1", DisplayName: "Jane Client", Email: "jane@example.com"},
			want: AuthenticatedNamed,
		},
		{
			name: "missing display name",
			id:   &identity.Identity{UID: "u2", Email: "jane@example.com"},
			want: AuthenticatedNoName,
		},
		{
			name: "phone-only without name",
			id:   &identity.Identity{UID: "u3", PhoneNumber: "+14155550100"},
			want: AuthenticatedNoName,
		},
		{
			name: "operator address",
			id:   &identity.Identity{UID: "u4", DisplayName: "Operator", Email: "ops@example.com"},
			want: AuthenticatedAdmin,
		},
		{
			name: "operator match is case-insensitive",
			id:   &identity.Identity{UID: "u5", DisplayName: "Operator", Email: "OPS@Example.COM"},
			want: AuthenticatedAdmin,
		},
		{
			name: "operator wins over missing name",
			id:   &identity.Identity{UID: "u6", Email: "ops@example.com"},
			want: AuthenticatedAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.id, testAdminEmail); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyWithoutAdminEmail(t *testing.T) {
	id := &identity.Identity{UID: "u1", DisplayName: "Operator", Email: "ops@example.com"}
	if got := Classify(id, ""); got != AuthenticatedNamed {
		t.Fatalf("expected admin refinement disabled, got %v", got)
	}
}

func TestSessionNeedsName(t *testing.T) {
	anon := Session{State: Anonymous}
	if anon.NeedsName() {
		t.Error("anonymous session must not prompt for a name")
	}

	noName := Session{
		State:    AuthenticatedNoName,
		Identity: &identity.Identity{UID: "u1"},
	}
	if !noName.NeedsName() {
		t.Error("expected name prompt for authenticated session without name")
	}

	admin := Session{
		State:    AuthenticatedAdmin,
		Identity: &identity.Identity{UID: "u2", Email: "ops@example.com"},
	}
	if !admin.NeedsName() {
		t.Error("expected name prompt for admin without display name")
	}
}

func TestSessionOwnerKey(t *testing.T) {
	s := Session{
		State:    AuthenticatedNamed,
		Identity: &identity.Identity{UID: "u1", DisplayName: "Jane", Email: "  Jane@Example.COM "},
	}
	if got := s.OwnerKey(); got != "jane@example.com" {
		t.Errorf("OwnerKey() = %q, want jane@example.com", got)
	}

	if got := (Session{}).OwnerKey(); got != "" {
		t.Errorf("expected empty owner key for anonymous session, got %q", got)
	}
}

func TestHubClassifiesProviderNotifications(t *testing.T) {
	provider := identity.NewMockProvider()
	hub := NewHub(provider, testAdminEmail, nil)
	defer hub.Close()

	if got := hub.Current().State; got != Anonymous {
		t.Fatalf("expected anonymous start, got %v", got)
	}

	var seen []State
	cancel := hub.Subscribe(func(s Session) {
		seen = append(seen, s.State)
	})
	defer cancel()

	if len(seen) != 1 || seen[0] != Anonymous {
		t.Fatalf("expected immediate invocation with current session, got %v", seen)
	}

	provider.Set(&identity.Identity{UID: "u1", Email: "jane@example.com"})
	provider.Set(&identity.Identity{UID: "u1", DisplayName: "Jane", Email: "jane@example.com"})
	provider.Set(nil)

	want := []State{Anonymous, AuthenticatedNoName, AuthenticatedNamed, Anonymous}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), seen)
	}
	for i, s := range want {
		if seen[i] != s {
			t.Errorf("notification %d = %v, want %v", i, seen[i], s)
		}
	}
}

func TestHubUnsubscribeStopsNotifications(t *testing.T) {
	provider := identity.NewMockProvider()
	hub := NewHub(provider, "", nil)
	defer hub.Close()

	count := 0
	cancel := hub.Subscribe(func(Session) { count++ })
	cancel()

	provider.Set(&identity.Identity{UID: "u1", DisplayName: "Jane", Email: "jane@example.com"})
	if count != 1 {
		t.Fatalf("expected only the immediate invocation, got %d", count)
	}
}

func TestHubCloseDetachesFromProvider(t *testing.T) {
	provider := identity.NewMockProvider()
	hub := NewHub(provider, "", nil)

	hub.Close()
	provider.Set(&identity.Identity{UID: "u1", DisplayName: "Jane", Email: "jane@example.com"})

	if got := hub.Current().State; got != Anonymous {
		t.Fatalf("expected hub frozen after close, got %v", got)
	}
}
