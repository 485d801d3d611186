package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "detail field wins",
			payload: `{"detail": "Not found.", "other": ["ignored"]}`,
			want:    "Not found.",
		},
		{
			name:    "non field errors joined",
			payload: `{"non_field_errors": ["Slot taken", "Try another"]}`,
			want:    "Slot taken, Try another",
		},
		{
			name:    "plain array joined",
			payload: `["first problem", "second problem"]`,
			want:    "first problem, second problem",
		},
		{
			name:    "field keyed mapping keeps field names",
			payload: `{"start_date_time": ["Overlapping slot"]}`,
			want:    "start_date_time: Overlapping slot",
		},
		{
			name:    "multiple fields sorted and joined",
			payload: `{"email": ["invalid"], "age": ["too large"]}`,
			want:    "age: too large; email: invalid",
		},
		{
			name:    "bare string payload",
			payload: `"server exploded"`,
			want:    "server exploded",
		},
		{
			name:    "unparseable payload passes through",
			payload: `<html>502</html>`,
			want:    "<html>502</html>",
		},
		{
			name:    "empty payload falls back",
			payload: "",
			want:    "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{StatusCode: 400, Payload: json.RawMessage(tt.payload)}
			assert.Equal(t, tt.want, e.Message())
		})
	}
}

func TestErrorOverlappingSlotContainsFieldAndMessage(t *testing.T) {
	e := &Error{
		StatusCode: http.StatusBadRequest,
		Payload:    json.RawMessage(`{"start_date_time": ["Overlapping slot"]}`),
	}
	msg := e.Message()
	assert.Contains(t, msg, "start_date_time")
	assert.Contains(t, msg, "Overlapping slot")
}

func TestIsUnauthorized(t *testing.T) {
	authErr := &Error{StatusCode: http.StatusUnauthorized}
	assert.True(t, IsUnauthorized(authErr))
	assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", authErr)))
	assert.False(t, IsUnauthorized(&Error{StatusCode: http.StatusBadRequest}))
	assert.False(t, IsUnauthorized(errors.New("plain")))
}

func TestErrorMessageHelper(t *testing.T) {
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
	apiErr := &Error{StatusCode: 400, Payload: json.RawMessage(`{"detail": "nope"}`)}
	assert.Equal(t, "nope", ErrorMessage(fmt.Errorf("request: %w", apiErr)))
	assert.Equal(t, "", ErrorMessage(nil))
}
