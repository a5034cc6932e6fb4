// Package dashboard reconciles authentication state, the remote appointment
// collection, and user actions into one consistent view: an upcoming/history
// split per signed-in identity, with create and cancel mutations that always
// refresh the visible lists afterwards.
package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/jirehclean/portal/internal/platform/timeutil"
	"github.com/jirehclean/portal/internal/service/appointment"
	"github.com/jirehclean/portal/internal/session"
)

// View-model errors
var (
	ErrNotSignedIn    = errors.New("sign in to manage appointments")
	ErrNotAdmin       = errors.New("assignment requires the operator account")
	ErrNotCancellable = errors.New("only upcoming appointments can be cancelled")
)

// User-facing inline messages. Refresh failures surface here instead of
// leaving stale data unexplained.
const (
	noticeNoEmail = "Link an email to your account to view appointments."

	errRefreshFailed = "Could not load appointments. Please try again."
	errIndexNeeded   = "Appointment lookup is not configured yet: the store needs a composite index on (clientEmail, date)."
)

// CancelPolicy selects how cancellation is confirmed.
type CancelPolicy int

const (
	// CancelImmediate gates the delete behind a blocking yes/no
	// confirmation, then deletes and refreshes.
	CancelImmediate CancelPolicy = iota

	// CancelDeferred opens an external confirmation form pre-filled with
	// the appointment and holds the id as pending; the delete is issued
	// only when CompleteCancellation reports the form was submitted.
	CancelDeferred
)

// Snapshot is the rendered dashboard state. Zero value is the anonymous
// empty dashboard.
type Snapshot struct {
	Session  session.Session
	Upcoming []appointment.Appointment
	History  []appointment.Appointment

	// Notice is an explanatory empty state (e.g., phone-only account).
	Notice string

	// Err is the inline error from the last failed refresh, empty on
	// success.
	Err string

	// PendingCancel is the id held by the deferred cancellation policy.
	PendingCancel string
}

// Config wires the view-model's collaborators.
type Config struct {
	Appointments appointment.Service
	Sessions     *session.Hub

	Policy CancelPolicy

	// Confirm gates the immediate policy. Nil means never confirmed.
	Confirm func(appointment.Appointment) bool

	// OpenCancelForm starts the deferred policy's external form.
	OpenCancelForm func(appointment.Appointment) error

	// Now supplies the clock for the local-day comparison. Defaults to
	// time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// ViewModel observes session changes and maintains the appointment lists.
// All work is driven by user actions and session notifications; a new
// refresh supersedes interest in any still-running one.
type ViewModel struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	snap     Snapshot
	gen      uint64
	loadedAs string // owner key the current lists were loaded for
	subs     map[int]func(Snapshot)
	nextSub  int
	cancel   func()
}

// New constructs the view-model and subscribes it to the session hub. The
// initial session state is delivered synchronously during construction.
func New(cfg Config) *ViewModel {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	vm := &ViewModel{
		cfg:    cfg,
		logger: logger,
		subs:   make(map[int]func(Snapshot)),
	}
	vm.cancel = cfg.Sessions.Subscribe(vm.onSession)
	return vm
}

// Close releases the session subscription.
func (vm *ViewModel) Close() {
	if vm.cancel != nil {
		vm.cancel()
	}
}

// Snapshot returns a copy of the current dashboard state.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapLocked()
}

// snapLocked must be called with the mutex held.
func (vm *ViewModel) snapLocked() Snapshot {
	s := vm.snap
	s.Upcoming = slices.Clone(s.Upcoming)
	s.History = slices.Clone(s.History)
	return s
}

// Subscribe registers fn for snapshot changes and invokes it once with the
// current snapshot.
func (vm *ViewModel) Subscribe(fn func(Snapshot)) func() {
	vm.mu.Lock()
	id := vm.nextSub
	vm.nextSub++
	vm.subs[id] = fn
	cur := vm.snapLocked()
	vm.mu.Unlock()

	fn(cur)
	return func() {
		vm.mu.Lock()
		delete(vm.subs, id)
		vm.mu.Unlock()
	}
}

// notifyLocked must be called with the mutex held; the callbacks themselves
// run outside it.
func (vm *ViewModel) notifyLocked() (Snapshot, []func(Snapshot)) {
	cur := vm.snapLocked()
	subs := make([]func(Snapshot), 0, len(vm.subs))
	for _, fn := range vm.subs {
		subs = append(subs, fn)
	}
	return cur, subs
}

func dispatch(cur Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(cur)
	}
}

// onSession handles the hub's session notifications, the single upstream
// trigger for every state transition.
func (vm *ViewModel) onSession(s session.Session) {
	vm.mu.Lock()

	if !s.State.Authenticated() {
		vm.gen++ // invalidate any in-flight refresh
		vm.snap = Snapshot{Session: s}
		vm.loadedAs = ""
		cur, subs := vm.notifyLocked()
		vm.mu.Unlock()
		dispatch(cur, subs)
		return
	}

	prev := vm.snap.Session
	sameAccount := prev.State.Authenticated() &&
		prev.Identity != nil && s.Identity != nil &&
		prev.Identity.UID == s.Identity.UID &&
		vm.loadedAs == s.OwnerKey()

	vm.snap.Session = s
	if sameAccount {
		// A display-name update; the lists are already correct and no
		// query is re-issued.
		cur, subs := vm.notifyLocked()
		vm.mu.Unlock()
		dispatch(cur, subs)
		return
	}
	vm.mu.Unlock()

	vm.Refresh(context.Background())
}

// Refresh re-queries the appointment list for the current session and
// rebuilds the upcoming/history split. A refresh started later supersedes
// this one: a slow stale response is discarded rather than overwriting
// newer data.
func (vm *ViewModel) Refresh(ctx context.Context) {
	vm.mu.Lock()
	sess := vm.snap.Session
	if !sess.State.Authenticated() {
		vm.mu.Unlock()
		return
	}

	vm.gen++
	gen := vm.gen
	owner := sess.OwnerKey()

	if owner == "" {
		// Phone-only sign-in with no linked email: a query would be
		// guaranteed empty, so short-circuit with an explanation.
		vm.snap.Upcoming = nil
		vm.snap.History = nil
		vm.snap.Notice = noticeNoEmail
		vm.snap.Err = ""
		vm.snap.PendingCancel = ""
		vm.loadedAs = ""
		cur, subs := vm.notifyLocked()
		vm.mu.Unlock()
		dispatch(cur, subs)
		return
	}
	vm.mu.Unlock()

	appts, err := vm.cfg.Appointments.ListForClient(ctx, owner)

	vm.mu.Lock()
	if gen != vm.gen {
		vm.logger.Debug("discarding superseded appointment query",
			zap.Uint64("generation", gen))
		vm.mu.Unlock()
		return
	}

	if err != nil {
		if errors.Is(err, appointment.ErrIndexRequired) {
			vm.snap.Err = errIndexNeeded
		} else {
			vm.snap.Err = errRefreshFailed
		}
		vm.logger.Warn("appointment refresh failed", zap.Error(err))
		cur, subs := vm.notifyLocked()
		vm.mu.Unlock()
		dispatch(cur, subs)
		return
	}

	today := timeutil.DayOf(vm.cfg.Now())
	vm.snap.Upcoming, vm.snap.History = appointment.Partition(appts, today)
	vm.snap.Notice = ""
	vm.snap.Err = ""
	vm.snap.PendingCancel = ""
	vm.loadedAs = owner
	cur, subs := vm.notifyLocked()
	vm.mu.Unlock()
	dispatch(cur, subs)
}

// RequestInput describes a self-service booking from the dashboard form.
type RequestInput struct {
	Date        civil.Date
	Time        string
	ServiceType string
	Frequency   string
}

// RequestAppointment creates a booking for the signed-in identity and
// refreshes the lists.
func (vm *ViewModel) RequestAppointment(ctx context.Context, input RequestInput) error {
	sess := vm.currentSession()
	if !sess.State.Authenticated() {
		return ErrNotSignedIn
	}
	owner := sess.OwnerKey()
	if owner == "" {
		return errors.New(noticeNoEmail)
	}

	_, err := vm.cfg.Appointments.Request(ctx, appointment.RequestParams{
		ClientEmail: owner,
		Date:        input.Date,
		Time:        input.Time,
		ServiceType: input.ServiceType,
		Frequency:   input.Frequency,
	})
	if err != nil {
		return err
	}

	vm.Refresh(ctx)
	return nil
}

// AssignInput describes a privileged assignment from the operator panel.
type AssignInput struct {
	ClientEmail string
	Date        civil.Date
	Time        string
	ServiceType string
	Frequency   string
}

// AssignAppointment creates a booking on behalf of another client. Only the
// admin session may assign; assigning to the operator's own address
// refreshes their own list immediately.
func (vm *ViewModel) AssignAppointment(ctx context.Context, input AssignInput) error {
	sess := vm.currentSession()
	if sess.State != session.AuthenticatedAdmin {
		return ErrNotAdmin
	}

	created, err := vm.cfg.Appointments.Assign(ctx, appointment.AssignParams{
		ClientEmail: input.ClientEmail,
		Date:        input.Date,
		Time:        input.Time,
		ServiceType: input.ServiceType,
		Frequency:   input.Frequency,
		AssignedBy:  sess.OwnerKey(),
	})
	if err != nil {
		return err
	}

	if created.ClientEmail == sess.OwnerKey() {
		vm.Refresh(ctx)
	}
	return nil
}

// CancelAppointment cancels one of the caller's upcoming appointments under
// the configured policy. Past appointments are not cancellable.
func (vm *ViewModel) CancelAppointment(ctx context.Context, id string) error {
	vm.mu.Lock()
	idx := slices.IndexFunc(vm.snap.Upcoming, func(a appointment.Appointment) bool {
		return a.ID == id
	})
	if idx < 0 {
		vm.mu.Unlock()
		return ErrNotCancellable
	}
	appt := vm.snap.Upcoming[idx]
	vm.mu.Unlock()

	switch vm.cfg.Policy {
	case CancelDeferred:
		if vm.cfg.OpenCancelForm == nil {
			return errors.New("cancellation form is not configured")
		}
		if err := vm.cfg.OpenCancelForm(appt); err != nil {
			return err
		}
		vm.mu.Lock()
		vm.snap.PendingCancel = id
		cur, subs := vm.notifyLocked()
		vm.mu.Unlock()
		dispatch(cur, subs)
		return nil

	default:
		if vm.cfg.Confirm == nil || !vm.cfg.Confirm(appt) {
			return nil
		}
		if err := vm.cfg.Appointments.Cancel(ctx, id); err != nil {
			return err
		}
		vm.Refresh(ctx)
		return nil
	}
}

// CompleteCancellation reports that the external confirmation form for the
// given id was submitted. Ignored unless that id is the pending one; the
// delete is issued and the lists refreshed.
func (vm *ViewModel) CompleteCancellation(ctx context.Context, id string) error {
	vm.mu.Lock()
	if vm.snap.PendingCancel != id {
		vm.mu.Unlock()
		return nil
	}
	vm.mu.Unlock()

	if err := vm.cfg.Appointments.Cancel(ctx, id); err != nil {
		return err
	}

	// The record is gone; drop the marker now so a failed refresh cannot
	// leave it pointing at a deleted appointment.
	vm.mu.Lock()
	vm.snap.PendingCancel = ""
	vm.mu.Unlock()

	vm.Refresh(ctx)
	return nil
}

// ClearPending drops a stale pending-cancellation marker, e.g., when the
// user navigates away without ever submitting the external form.
func (vm *ViewModel) ClearPending() {
	vm.mu.Lock()
	vm.snap.PendingCancel = ""
	cur, subs := vm.notifyLocked()
	vm.mu.Unlock()
	dispatch(cur, subs)
}

func (vm *ViewModel) currentSession() session.Session {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snap.Session
}
