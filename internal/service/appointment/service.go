package appointment

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jirehclean/portal/internal/platform/timeutil"
)

// Service errors
var (
	ErrNotFound = errors.New("appointment not found")

	// ErrIndexRequired indicates the store rejected the owner query because
	// a composite index is missing. This is an operational error and gets an
	// actionable message rather than a generic failure.
	ErrIndexRequired = errors.New("appointment query requires a composite index")

	ErrMissingClient = errors.New("client email is required")
	ErrMissingDate   = errors.New("appointment date is required")
	ErrMissingTime   = errors.New("appointment time is required")
)

// Status is informational only: it is stamped on write and displayed, but no
// transition rules are enforced anywhere.
type Status string

const (
	// StatusRequested marks a self-service booking awaiting scheduling.
	StatusRequested Status = "Requested"

	// StatusScheduled marks an operator-assigned appointment.
	StatusScheduled Status = "Scheduled"

	// StatusCancelPending marks an appointment whose cancellation awaits an
	// external confirmation form.
	StatusCancelPending Status = "Cancel-pending"
)

// Default display fallbacks applied when optional classification fields are
// absent on a stored record.
const (
	DefaultServiceType = "Cleaning Service"
	DefaultFrequency   = "One-Time"
)

// Appointment is a scheduled or requested clean. ClientEmail is the owner
// key: the lowercased email of the identity the record belongs to. Date is a
// calendar day with no time zone; Time is an optional clock-time string.
type Appointment struct {
	ID          string
	ClientEmail string
	Date        civil.Date
	Time        string
	ServiceType string
	Frequency   string
	Status      Status
	CreatedAt   time.Time
	AssignedBy  string
}

// Upcoming reports whether the appointment falls on or after the reference
// day. Time-of-day is ignored: a clean earlier today still counts as
// upcoming.
func (a Appointment) Upcoming(today civil.Date) bool {
	return timeutil.SameOrAfter(a.Date, today)
}

// RequestParams describes a self-service booking.
type RequestParams struct {
	ClientEmail string
	Date        civil.Date
	Time        string
	ServiceType string
	Frequency   string
}

// Validate rejects incomplete requests before any remote call is attempted.
func (p RequestParams) Validate() error {
	if p.ClientEmail == "" {
		return ErrMissingClient
	}
	if !p.Date.IsValid() {
		return ErrMissingDate
	}
	return nil
}

// AssignParams describes a privileged assignment naming another client's
// contact address. AssignedBy records which operator performed it.
type AssignParams struct {
	ClientEmail string
	Date        civil.Date
	Time        string
	ServiceType string
	Frequency   string
	AssignedBy  string
}

// Validate rejects incomplete assignments before any remote call.
func (p AssignParams) Validate() error {
	if p.ClientEmail == "" {
		return ErrMissingClient
	}
	if !p.Date.IsValid() {
		return ErrMissingDate
	}
	if p.Time == "" {
		return ErrMissingTime
	}
	return nil
}

// Service defines appointment operations against the document store.
//
// Implementations must normalize the owner key (lowercase, trim) and decode
// records into typed Appointments at the store boundary, applying display
// defaults for absent optional fields.
type Service interface {
	// ListForClient returns every appointment owned by the given email,
	// ordered by date descending.
	ListForClient(ctx context.Context, clientEmail string) ([]Appointment, error)

	// Request creates a self-service booking with status Requested.
	Request(ctx context.Context, params RequestParams) (*Appointment, error)

	// Assign creates an operator booking with status Scheduled.
	Assign(ctx context.Context, params AssignParams) (*Appointment, error)

	// Get retrieves one appointment by id.
	Get(ctx context.Context, id string) (*Appointment, error)

	// Cancel deletes the appointment. Cancellation is the only mutation;
	// records are never edited in place.
	Cancel(ctx context.Context, id string) error
}
