package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook-cli/internal/api"
	"github.com/medibook/medibook-cli/internal/model"
)

// State is the workflow's position in the booking flow.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateDateSelected
	StateSlotSelected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateDateSelected:
		return "date_selected"
	case StateSlotSelected:
		return "slot_selected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ErrUnavailable means the availability listing itself could not be
// fetched; the flow cannot proceed. It is distinct from an empty listing,
// which is a valid state (Empty reports it).
var ErrUnavailable = errors.New("failed to load doctor availability")

// API is the slice of the client the workflow needs.
type API interface {
	FindDoctor(ctx context.Context, doctorID int64) (*model.Doctor, error)
	AvailabilitiesByDoctor(ctx context.Context, doctorID int64) ([]model.Availability, error)
	BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) error
}

// Workflow drives one booking attempt for one doctor: load windows, pick a
// date, pick a slot, submit. It owns all flow state so every caller gets
// the same rules (a date change always drops the slot, unavailable slots
// are not selectable, no double submission).
type Workflow struct {
	api      API
	log      zerolog.Logger
	doctorID int64

	state          State
	doctor         *model.Doctor
	availabilities []model.Availability
	selected       *model.Availability
	slot           *model.TimeSlot
	submitting     bool
	failure        string
}

func New(client API, doctorID int64, log zerolog.Logger) *Workflow {
	return &Workflow{
		api:      client,
		log:      log,
		doctorID: doctorID,
		state:    StateLoading,
	}
}

// Start fetches the doctor's profile and availability concurrently. The
// profile is display-only, so its failure alone degrades to partial data;
// an availability failure is terminal.
func (w *Workflow) Start(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		doctor   *model.Doctor
		docErr   error
		avails   []model.Availability
		availErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		doctor, docErr = w.api.FindDoctor(ctx, w.doctorID)
	}()
	go func() {
		defer wg.Done()
		avails, availErr = w.api.AvailabilitiesByDoctor(ctx, w.doctorID)
	}()
	wg.Wait()

	if availErr != nil {
		w.state = StateFailed
		w.failure = api.ErrorMessage(availErr)
		return fmt.Errorf("%w: %w", ErrUnavailable, availErr)
	}
	if docErr != nil {
		w.log.Warn().Err(docErr).Int64("doctor_id", w.doctorID).
			Msg("doctor lookup failed, continuing without profile")
	}

	w.doctor = doctor
	w.availabilities = avails
	w.state = StateLoaded
	return nil
}

func (w *Workflow) State() State { return w.state }

// Doctor may be nil when the profile fetch failed.
func (w *Workflow) Doctor() *model.Doctor { return w.doctor }

func (w *Workflow) Availabilities() []model.Availability { return w.availabilities }

// Empty reports a loaded flow with no windows to offer. Callers render an
// empty state and a way back to the directory, never a date grid.
func (w *Workflow) Empty() bool {
	return w.state != StateLoading && len(w.availabilities) == 0
}

// SelectDate picks the availability for the given date. Any previously
// selected slot is dropped: slot choice is a function of date choice.
func (w *Workflow) SelectDate(date string) error {
	if w.state == StateLoading {
		return errors.New("availability not loaded")
	}
	for i := range w.availabilities {
		if w.availabilities[i].Date == date {
			w.selected = &w.availabilities[i]
			w.slot = nil
			w.failure = ""
			w.state = StateDateSelected
			return nil
		}
	}
	return fmt.Errorf("no availability on %s", date)
}

// SelectedDate returns the chosen availability, or nil.
func (w *Workflow) SelectedDate() *model.Availability { return w.selected }

// Slots returns the slots of the selected date.
func (w *Workflow) Slots() []model.TimeSlot {
	if w.selected == nil {
		return nil
	}
	return w.selected.TimeSlots
}

// SelectSlot picks a slot by index within the selected date. Picking a
// slot that is already booked is a no-op, not an error; the caller keeps
// the grid up and the user picks another.
func (w *Workflow) SelectSlot(i int) (bool, error) {
	if w.selected == nil {
		return false, errors.New("no date selected")
	}
	if i < 0 || i >= len(w.selected.TimeSlots) {
		return false, fmt.Errorf("slot %d out of range", i)
	}
	slot := &w.selected.TimeSlots[i]
	if !slot.IsAvailable {
		return false, nil
	}
	w.slot = slot
	w.failure = ""
	w.state = StateSlotSelected
	return true, nil
}

// SelectedSlot returns the chosen slot, or nil.
func (w *Workflow) SelectedSlot() *model.TimeSlot { return w.slot }

// CanSubmit is false with no slot chosen or while a submission is in
// flight, so a double submit is impossible.
func (w *Workflow) CanSubmit() bool {
	return w.slot != nil && !w.submitting
}

// Submit books the selected slot. On success the selection is reset; on
// failure the date and slot stay selected so the user can retry with a
// different slot without re-fetching.
func (w *Workflow) Submit(ctx context.Context) error {
	if w.submitting {
		return errors.New("submission already in flight")
	}
	if w.slot == nil {
		return errors.New("no slot selected")
	}

	req := &model.BookAppointmentRequest{
		Doctor:        w.doctorID,
		StartDateTime: model.SlotDateTime(w.selected.Date, w.slot.StartTime),
		EndDateTime:   model.SlotDateTime(w.selected.Date, w.slot.EndTime),
	}

	w.submitting = true
	w.state = StateSubmitting
	err := w.api.BookAppointment(ctx, req)
	w.submitting = false

	if err != nil {
		w.state = StateFailed
		w.failure = api.ErrorMessage(err)
		w.log.Debug().Err(err).Int64("doctor_id", w.doctorID).Msg("booking rejected")
		return err
	}

	w.log.Info().
		Int64("doctor_id", w.doctorID).
		Str("start", req.StartDateTime).
		Msg("appointment booked")

	w.selected = nil
	w.slot = nil
	w.failure = ""
	w.state = StateSucceeded
	return nil
}

// Failure is the human-readable message of the last failed step.
func (w *Workflow) Failure() string { return w.failure }
