package api

import (
	"context"
	"errors"

	"github.com/medibook/medibook-cli/internal/model"
)

var ErrDoctorNotFound = errors.New("doctor not found")

const (
	cacheKeyDoctors     = "doctors"
	cacheKeySpecialties = "specialties"
)

// ListDoctors returns the patient-facing directory. The list changes
// rarely, so it is cached for the configured TTL.
func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	if cached, ok := c.cache.Get(cacheKeyDoctors); ok {
		return cached.([]model.Doctor), nil
	}
	var out []model.Doctor
	if err := c.get(ctx, "/api/doctors/", &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyDoctors, out)
	return out, nil
}

// FindDoctor selects a directory entry by its doctor_id.
func (c *Client) FindDoctor(ctx context.Context, doctorID int64) (*model.Doctor, error) {
	doctors, err := c.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].DoctorID == doctorID {
			return &doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (c *Client) ListSpecialties(ctx context.Context) ([]model.Specialty, error) {
	if cached, ok := c.cache.Get(cacheKeySpecialties); ok {
		return cached.([]model.Specialty), nil
	}
	var out []model.Specialty
	if err := c.get(ctx, "/api/specialties/", &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeySpecialties, out)
	return out, nil
}
