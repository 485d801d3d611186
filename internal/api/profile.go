package api

import (
	"context"

	"github.com/medibook/medibook-cli/internal/model"
)

func (c *Client) DoctorProfile(ctx context.Context) (*model.DoctorProfile, error) {
	var out model.DoctorProfile
	if err := c.get(ctx, "/api/doctor/profile/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDoctorProfile(ctx context.Context, req *model.UpdateDoctorProfileRequest) (*model.DoctorProfile, error) {
	var out model.DoctorProfile
	if err := c.patch(ctx, "/api/doctor/profile/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PatientProfile(ctx context.Context) (*model.PatientProfile, error) {
	var out model.PatientProfile
	if err := c.get(ctx, "/api/patient/profile/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatientProfile(ctx context.Context, req *model.UpdatePatientProfileRequest) (*model.PatientProfile, error) {
	var out model.PatientProfile
	if err := c.patch(ctx, "/api/patient/profile/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
