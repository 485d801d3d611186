package model

import "fmt"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlot is one bookable interval inside an availability window. The
// is_available flag is only present on the by_doctor listing; the owner
// listing omits it.
type TimeSlot struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// Availability is a doctor-declared window on a single date, subdivided
// into slots of SlotDuration minutes by the server.
type Availability struct {
	ID           int64      `json:"id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	SlotDuration int        `json:"slot_duration"`
	TimeSlots    []TimeSlot `json:"time_slots"`
}

// AvailableSlots counts the slots still open for booking.
func (a *Availability) AvailableSlots() int {
	n := 0
	for _, s := range a.TimeSlots {
		if s.IsAvailable {
			n++
		}
	}
	return n
}

type CreateAvailabilityRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
	SlotDuration int    `json:"slot_duration" validate:"required,min=5,max=240"`
}

// SlotDateTime combines an availability date with a slot time-of-day into
// the timestamp the appointment endpoint expects: seconds zeroed, explicit
// UTC marker. Every booking timestamp in the client goes through here so
// the convention cannot drift.
func SlotDateTime(date, hhmm string) string {
	return fmt.Sprintf("%sT%s:00Z", date, hhmm)
}
