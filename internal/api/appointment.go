package api

import (
	"context"
	"fmt"

	"github.com/medibook/medibook-cli/internal/model"
)

func (c *Client) PatientAppointments(ctx context.Context) ([]model.PatientAppointment, error) {
	var out []model.PatientAppointment
	if err := c.get(ctx, "/api/patient/appointments/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookAppointment reserves one slot. Conflict detection is the server's;
// a rejected overlap comes back as a field-keyed validation error.
func (c *Client) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) error {
	return c.post(ctx, "/api/patient/appointments/", req, nil)
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/patient/appointments/%d/", id))
}

// DoctorAppointments is the doctor's read-only schedule.
func (c *Client) DoctorAppointments(ctx context.Context) ([]model.DoctorAppointment, error) {
	var out []model.DoctorAppointment
	if err := c.get(ctx, "/api/doctor/appointments/", &out); err != nil {
		return nil, err
	}
	return out, nil
}
