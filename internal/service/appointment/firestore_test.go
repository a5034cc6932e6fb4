package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/jirehclean/portal/internal/testutil"
)

func newEmulatorStore(t *testing.T) *FirestoreStore {
	t.Helper()
	testutil.SkipIfEmulatorUnavailable(t)
	client := testutil.NewFirestoreClient(t)
	testutil.ClearFirestore(t)
	return NewFirestoreStore(client)
}

func TestFirestoreRequestAndList(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	first, err := store.Request(ctx, RequestParams{
		ClientEmail: "Jane@Example.com",
		Date:        day("2026-09-15"),
		Time:        "10:00 AM",
	})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if first.ClientEmail != "jane@example.com" {
		t.Errorf("expected normalized owner key, got %q", first.ClientEmail)
	}
	if first.Status != StatusRequested {
		t.Errorf("expected status %q, got %q", StatusRequested, first.Status)
	}

	if _, err := store.Request(ctx, RequestParams{
		ClientEmail: "jane@example.com",
		Date:        day("2026-10-01"),
	}); err != nil {
		t.Fatalf("Request: %v", err)
	}

	appts, err := store.ListForClient(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("ListForClient: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0].Date.String() != "2026-10-01" {
		t.Errorf("expected newest first, got %v", appts[0].Date)
	}
}

func TestFirestoreListAppliesDisplayDefaults(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	if _, err := store.Request(ctx, RequestParams{
		ClientEmail: "jane@example.com",
		Date:        day("2026-09-15"),
	}); err != nil {
		t.Fatalf("Request: %v", err)
	}

	appts, err := store.ListForClient(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("ListForClient: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if appts[0].ServiceType != DefaultServiceType {
		t.Errorf("expected default service type %q, got %q", DefaultServiceType, appts[0].ServiceType)
	}
	if appts[0].Frequency != DefaultFrequency {
		t.Errorf("expected default frequency %q, got %q", DefaultFrequency, appts[0].Frequency)
	}
}

func TestFirestoreAssignRecordsOperator(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	appt, err := store.Assign(ctx, AssignParams{
		ClientEmail: "jane@example.com",
		Date:        day("2026-09-15"),
		Time:        "2:00 PM",
		ServiceType: "Deep Clean",
		AssignedBy:  "Ops@Example.com",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if appt.Status != StatusScheduled {
		t.Errorf("expected status %q, got %q", StatusScheduled, appt.Status)
	}

	got, err := store.Get(ctx, appt.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AssignedBy != "ops@example.com" {
		t.Errorf("expected normalized operator, got %q", got.AssignedBy)
	}
}

func TestFirestoreCancel(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	appt, err := store.Request(ctx, RequestParams{
		ClientEmail: "jane@example.com",
		Date:        day("2026-09-15"),
	})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if err := store.Cancel(ctx, appt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := store.Get(ctx, appt.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cancel, got %v", err)
	}
	if err := store.Cancel(ctx, appt.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double cancel, got %v", err)
	}
}

func TestFirestoreValidationShortCircuitsRemoteCall(t *testing.T) {
	// No emulator gate: invalid params must fail before any network use.
	store := NewFirestoreStore(nil)

	if _, err := store.Request(context.Background(), RequestParams{}); !errors.Is(err, ErrMissingClient) {
		t.Fatalf("expected ErrMissingClient, got %v", err)
	}
	if _, err := store.Assign(context.Background(), AssignParams{
		ClientEmail: "jane@example.com",
		Date:        day("2026-09-15"),
	}); !errors.Is(err, ErrMissingTime) {
		t.Fatalf("expected ErrMissingTime, got %v", err)
	}
}
