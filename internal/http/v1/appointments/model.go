package appointments

import (
	"github.com/jirehclean/portal/internal/platform/timeutil"
)

// Appointment represents an appointment response.
type Appointment struct {
	ID          string        `json:"id"                   doc:"Unique identifier"                example:"appt-123"`
	ClientEmail string        `json:"clientEmail"          doc:"Owner email"                      example:"jane@example.com"`
	Date        string        `json:"date"                 doc:"Calendar day"                     example:"2026-09-15"`
	Time        string        `json:"time"                 doc:"Time of day, or TBD"              example:"10:00 AM"`
	ServiceType string        `json:"serviceType"          doc:"Service type"                     example:"Deep Clean"`
	Frequency   string        `json:"frequency"            doc:"Recurrence"                       example:"One-Time"`
	Status      string        `json:"status"               doc:"Display status"                   example:"Scheduled"`
	CreatedAt   timeutil.Time `json:"createdAt"            doc:"Creation timestamp"               example:"2026-08-15T10:30:00.000Z"`
	AssignedBy  string        `json:"assignedBy,omitempty" doc:"Operator who made the assignment" example:"ops@example.com"`
}

// AppointmentList is the dashboard split of the caller's appointments.
type AppointmentList struct {
	Upcoming []Appointment `json:"upcoming" doc:"Appointments on or after today, date descending"`
	History  []Appointment `json:"history"  doc:"Appointments before today, date descending"`
}
