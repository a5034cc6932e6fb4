package appointments

// AppointmentListInput for GET /appointments
type AppointmentListInput struct {
	Client string `query:"client" format:"email" required:"false" doc:"Operator only: list another client's appointments" example:"jane@example.com"`
}

// AppointmentRequestInput for POST /appointments
type AppointmentRequestInput struct {
	Body struct {
		Date        string `json:"date"                  format:"date"                 required:"true" doc:"Requested day"  example:"2026-09-15"`
		Time        string `json:"time,omitempty"        maxLength:"50"                                doc:"Preferred time" example:"10:00 AM"`
		ServiceType string `json:"serviceType,omitempty" maxLength:"100"                               doc:"Service type"   example:"Deep Clean"`
		Frequency   string `json:"frequency,omitempty"   maxLength:"50"                                doc:"Recurrence"     example:"One-Time"`
	}
}

// AppointmentAssignInput for POST /appointments/assign
type AppointmentAssignInput struct {
	Body struct {
		ClientEmail string `json:"clientEmail"           format:"email"  required:"true" doc:"Client to book for" example:"jane@example.com"`
		Date        string `json:"date"                  format:"date"   required:"true" doc:"Scheduled day"      example:"2026-09-15"`
		Time        string `json:"time"                  maxLength:"50"  required:"true" doc:"Scheduled time"     example:"10:00 AM"`
		ServiceType string `json:"serviceType,omitempty" maxLength:"100"                 doc:"Service type"       example:"Deep Clean"`
		Frequency   string `json:"frequency,omitempty"   maxLength:"50"                  doc:"Recurrence"         example:"Weekly"`
	}
}

// AppointmentCancelInput for DELETE /appointments/{id}
type AppointmentCancelInput struct {
	ID string `path:"id" maxLength:"128" doc:"Appointment identifier" example:"appt-123"`
}
