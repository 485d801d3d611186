package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/medibook/medibook-cli/internal/model"
)

// ListAvailabilities returns the calling doctor's own windows.
func (c *Client) ListAvailabilities(ctx context.Context) ([]model.Availability, error) {
	var out []model.Availability
	if err := c.get(ctx, "/api/availabilities/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAvailability(ctx context.Context, req *model.CreateAvailabilityRequest) (*model.Availability, error) {
	var out model.Availability
	if err := c.post(ctx, "/api/availabilities/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAvailability(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/availabilities/%d/", id))
}

// AvailabilitiesByDoctor returns a doctor's windows as seen by a patient;
// each slot carries its is_available flag.
func (c *Client) AvailabilitiesByDoctor(ctx context.Context, doctorID int64) ([]model.Availability, error) {
	q := url.Values{"doctor_id": {strconv.FormatInt(doctorID, 10)}}
	var out []model.Availability
	if err := c.get(ctx, "/api/availabilities/by_doctor/?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
