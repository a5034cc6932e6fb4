package appointment

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/jirehclean/portal/internal/platform/logging"
)

const appointmentsCollection = "appointments"

// firestoreAppointment maps to the Firestore document structure. Dates are
// stored as YYYY-MM-DD strings so the descending order-by works lexically.
type firestoreAppointment struct {
	ClientEmail string    `firestore:"clientEmail"`
	Date        string    `firestore:"date"`
	Time        string    `firestore:"time,omitempty"`
	ServiceType string    `firestore:"serviceType,omitempty"`
	Frequency   string    `firestore:"frequency,omitempty"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"createdAt"`
	AssignedBy  string    `firestore:"assignedBy,omitempty"`
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, now: time.Now}
}

// normalizeOwner canonicalizes the owner key.
func normalizeOwner(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// decode turns a loosely structured document into a typed Appointment,
// applying display defaults for absent optional fields. Records are never
// trusted as-is deeper in the system.
func decode(id string, doc *firestore.DocumentSnapshot) (Appointment, error) {
	var fa firestoreAppointment
	if err := doc.DataTo(&fa); err != nil {
		return Appointment{}, err
	}

	date, err := civil.ParseDate(fa.Date)
	if err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		ID:          id,
		ClientEmail: normalizeOwner(fa.ClientEmail),
		Date:        date,
		Time:        fa.Time,
		ServiceType: fa.ServiceType,
		Frequency:   fa.Frequency,
		Status:      Status(fa.Status),
		CreatedAt:   fa.CreatedAt,
		AssignedBy:  fa.AssignedBy,
	}
	if a.ServiceType == "" {
		a.ServiceType = DefaultServiceType
	}
	if a.Frequency == "" {
		a.Frequency = DefaultFrequency
	}
	return a, nil
}

// isIndexError detects the store's missing-composite-index rejection, which
// deserves an actionable hint instead of a generic failure.
func isIndexError(err error) bool {
	s, ok := status.FromError(err)
	if !ok {
		return false
	}
	return s.Code() == codes.FailedPrecondition && strings.Contains(strings.ToLower(s.Message()), "index")
}

// ListForClient returns the client's appointments ordered by date descending.
// A record with an unparseable date is logged and skipped rather than
// failing the whole list.
func (s *FirestoreStore) ListForClient(ctx context.Context, clientEmail string) ([]Appointment, error) {
	owner := normalizeOwner(clientEmail)

	iter := s.client.Collection(appointmentsCollection).
		Where("clientEmail", "==", owner).
		OrderBy("date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var out []Appointment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if isIndexError(err) {
				return nil, ErrIndexRequired
			}
			return nil, err
		}

		a, err := decode(doc.Ref.ID, doc)
		if err != nil {
			applog.LogWarn(ctx, "skipping malformed appointment record")
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Request creates a self-service booking with status Requested.
func (s *FirestoreStore) Request(ctx context.Context, params RequestParams) (*Appointment, error) {
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
		CreatedAt:   s.now().UTC(),
	}
	return s.add(ctx, a, "request")
}

// Assign creates an operator booking with status Scheduled.
func (s *FirestoreStore) Assign(ctx context.Context, params AssignParams) (*Appointment, error) {
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
		CreatedAt:   s.now().UTC(),
		AssignedBy:  normalizeOwner(params.AssignedBy),
	}
	return s.add(ctx, a, "assign")
}

func (s *FirestoreStore) add(ctx context.Context, a Appointment, action string) (*Appointment, error) {
	fa := firestoreAppointment{
		ClientEmail: a.ClientEmail,
		Date:        a.Date.String(),
		Time:        a.Time,
		ServiceType: a.ServiceType,
		Frequency:   a.Frequency,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		AssignedBy:  a.AssignedBy,
	}

	ref, _, err := s.client.Collection(appointmentsCollection).Add(ctx, fa)
	if err != nil {
		applog.LogAuditEvent(ctx, action, a.ClientEmail, "appointment", "", "failure", nil)
		return nil, err
	}
	a.ID = ref.ID

	applog.LogAuditEvent(ctx, action, a.ClientEmail, "appointment", a.ID, "success",
		map[string]any{"date": a.Date.String()})
	return &a, nil
}

// Get retrieves one appointment by id.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Appointment, error) {
	doc, err := s.client.Collection(appointmentsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a, err := decode(doc.Ref.ID, doc)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Cancel deletes the appointment within a transaction so a vanished record
// reports ErrNotFound instead of silently succeeding.
func (s *FirestoreStore) Cancel(ctx context.Context, id string) error {
	docRef := s.client.Collection(appointmentsCollection).Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "cancel", "", "appointment", id, "failure", nil)
		return err
	}

	applog.LogAuditEvent(ctx, "cancel", "", "appointment", id, "success", nil)
	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
