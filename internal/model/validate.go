package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request's validate tags before it goes on the wire,
// so obviously malformed input never reaches the API.
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// Validate rejects windows that end at or before they start; the field tags
// cannot express the cross-field rule for clock strings.
func (r *CreateAvailabilityRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.EndTime <= r.StartTime {
		return fmt.Errorf("end_time %s must be after start_time %s", r.EndTime, r.StartTime)
	}
	return nil
}
