package appointments

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jirehclean/portal/internal/platform/auth"
	"github.com/jirehclean/portal/internal/platform/timeutil"
	apptsvc "github.com/jirehclean/portal/internal/service/appointment"
)

// Register registers appointment endpoints. adminEmail gates the assignment
// endpoint; empty disables it entirely.
func Register(api huma.API, svc apptsvc.Service, adminEmail string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-appointments",
		Method:      http.MethodGet,
		Path:        "/appointments",
		Summary:     "List current user's appointments",
		Description: "Returns the caller's appointments split into upcoming and history by local calendar day, newest first. Phone-only accounts with no email get empty lists. The operator may pass ?client= to list another client's appointments.",
		Tags:        []string{"Appointments"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AppointmentListInput) (*AppointmentListOutput, error) {
		user := auth.UserFromContext(ctx)

		owner := user.OwnerKey()
		if input.Client != "" {
			if !isAdmin(user, adminEmail) {
				return nil, huma.Error403Forbidden("only the operator may list other clients' appointments")
			}
			owner = strings.ToLower(strings.TrimSpace(input.Client))
		}
		if owner == "" {
			return &AppointmentListOutput{Body: AppointmentList{
				Upcoming: []Appointment{},
				History:  []Appointment{},
			}}, nil
		}

		appts, err := svc.ListForClient(ctx, owner)
		if err != nil {
			return nil, mapServiceError(err)
		}

		upcoming, history := apptsvc.Partition(appts, timeutil.Today())
		return &AppointmentListOutput{Body: AppointmentList{
			Upcoming: toHTTPAppointments(upcoming),
			History:  toHTTPAppointments(history),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "request-appointment",
		Method:        http.MethodPost,
		Path:          "/appointments",
		Summary:       "Request an appointment",
		Description:   "Creates a self-service booking for the authenticated user with status Requested.",
		Tags:          []string{"Appointments"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AppointmentRequestInput) (*AppointmentRequestOutput, error) {
		user := auth.UserFromContext(ctx)

		owner := user.OwnerKey()
		if owner == "" {
			return nil, huma.Error422UnprocessableEntity("an email address is required to book appointments")
		}
		date, err := timeutil.ParseDay(input.Body.Date)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("date must be a valid calendar day")
		}

		appt, err := svc.Request(ctx, apptsvc.RequestParams{
			ClientEmail: owner,
			Date:        date,
			Time:        input.Body.Time,
			ServiceType: input.Body.ServiceType,
			Frequency:   input.Body.Frequency,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &AppointmentRequestOutput{
			Location: "/v1/appointments/" + appt.ID,
			Body:     toHTTPAppointment(*appt),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "assign-appointment",
		Method:        http.MethodPost,
		Path:          "/appointments/assign",
		Summary:       "Assign an appointment to a client",
		Description:   "Creates a booking on behalf of a named client with status Scheduled. Restricted to the operator account.",
		Tags:          []string{"Appointments"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AppointmentAssignInput) (*AppointmentAssignOutput, error) {
		user := auth.UserFromContext(ctx)
		if !isAdmin(user, adminEmail) {
			return nil, huma.Error403Forbidden("assignment requires the operator account")
		}

		date, err := timeutil.ParseDay(input.Body.Date)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("date must be a valid calendar day")
		}

		appt, err := svc.Assign(ctx, apptsvc.AssignParams{
			ClientEmail: input.Body.ClientEmail,
			Date:        date,
			Time:        input.Body.Time,
			ServiceType: input.Body.ServiceType,
			Frequency:   input.Body.Frequency,
			AssignedBy:  user.OwnerKey(),
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &AppointmentAssignOutput{
			Location: "/v1/appointments/" + appt.ID,
			Body:     toHTTPAppointment(*appt),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "cancel-appointment",
		Method:        http.MethodDelete,
		Path:          "/appointments/{id}",
		Summary:       "Cancel an appointment",
		Description:   "Deletes the appointment. Cancellation is the only mutation; callers may cancel their own appointments, the operator may cancel any.",
		Tags:          []string{"Appointments"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AppointmentCancelInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		appt, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		if appt.ClientEmail != user.OwnerKey() && !isAdmin(user, adminEmail) {
			// Hide other clients' appointments rather than confirming
			// their existence.
			return nil, huma.Error404NotFound("appointment not found")
		}

		if err := svc.Cancel(ctx, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func isAdmin(user *auth.User, adminEmail string) bool {
	return adminEmail != "" && strings.EqualFold(user.OwnerKey(), strings.TrimSpace(adminEmail))
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, apptsvc.ErrNotFound):
		return huma.Error404NotFound("appointment not found")
	case errors.Is(err, apptsvc.ErrMissingClient),
		errors.Is(err, apptsvc.ErrMissingDate),
		errors.Is(err, apptsvc.ErrMissingTime):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, apptsvc.ErrIndexRequired):
		return huma.Error500InternalServerError("appointment lookup is not configured: the store needs a composite index on (clientEmail, date)")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPAppointment(a apptsvc.Appointment) Appointment {
	return Appointment{
		ID:          a.ID,
		ClientEmail: a.ClientEmail,
		Date:        a.Date.String(),
		Time:        a.Time,
		ServiceType: a.ServiceType,
		Frequency:   a.Frequency,
		Status:      string(a.Status),
		CreatedAt:   timeutil.NewTime(a.CreatedAt),
		AssignedBy:  a.AssignedBy,
	}
}

func toHTTPAppointments(appts []apptsvc.Appointment) []Appointment {
	out := make([]Appointment, len(appts))
	for i, a := range appts {
		out[i] = toHTTPAppointment(a)
	}
	return out
}
