package model

import "time"

// BookAppointmentRequest carries the timestamps built by SlotDateTime. The
// doctor field is the directory's doctor_id.
type BookAppointmentRequest struct {
	Doctor        int64  `json:"doctor" validate:"required"`
	StartDateTime string `json:"start_date_time" validate:"required"`
	EndDateTime   string `json:"end_date_time" validate:"required"`
}

// PatientAppointment is the patient's denormalized appointment view.
type PatientAppointment struct {
	ID            int64  `json:"id"`
	DoctorName    string `json:"doctor_name"`
	Specialty     string `json:"specialty"`
	StartDateTime string `json:"start_date_time"`
	EndDateTime   string `json:"end_date_time"`
}

// DoctorAppointment is the doctor's read-only appointment view.
type DoctorAppointment struct {
	ID            int64  `json:"id"`
	PatientName   string `json:"patient_name"`
	StartDateTime string `json:"start_date_time"`
	EndDateTime   string `json:"end_date_time"`
}

// ParseAppointmentTime decodes a server timestamp for display. The server
// emits RFC 3339; anything else is returned as the zero time with the error.
func ParseAppointmentTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
