package appointments

// AppointmentListOutput for GET /appointments
type AppointmentListOutput struct {
	Body AppointmentList
}

// AppointmentRequestOutput for POST /appointments (201 Created)
type AppointmentRequestOutput struct {
	Location string `header:"Location" doc:"URL of created appointment"`
	Body     Appointment
}

// AppointmentAssignOutput for POST /appointments/assign (201 Created)
type AppointmentAssignOutput struct {
	Location string `header:"Location" doc:"URL of created appointment"`
	Body     Appointment
}
