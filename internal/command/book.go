package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/medibook/medibook-cli/internal/api"
	"github.com/medibook/medibook-cli/internal/booking"
)

func newBookCmd(app func() *App) *cobra.Command {
	var (
		date string
		slot string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "book <doctor-id>",
		Short: "Book an appointment with a doctor",
		Long: "Walks through the booking flow: pick one of the doctor's available " +
			"dates, pick an open time slot, confirm. With --date and --slot the " +
			"flow runs non-interactively.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}
			if !s.IsPatient() {
				return errors.New("only patients can book appointments")
			}
			doctorID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}

			wf := booking.New(a.client, doctorID, a.log)
			if err := wf.Start(cmd.Context()); err != nil {
				if errors.Is(err, booking.ErrUnavailable) && !api.IsUnauthorized(err) {
					return fmt.Errorf("no doctor information: %s", wf.Failure())
				}
				return a.wrapErr(err)
			}

			if d := wf.Doctor(); d != nil {
				name := "Dr. " + d.User.Username
				if sp := d.SpecialtyName(); sp != "" {
					name += " (" + sp + ")"
				}
				fmt.Fprintf(a.out, "Booking with %s\n\n", name)
			}

			if wf.Empty() {
				fmt.Fprintln(a.out, "This doctor has no available slots at the moment.")
				fmt.Fprintln(a.out, "Find another doctor with 'medibook doctors'")
				return nil
			}

			if err := a.selectDate(wf, date); err != nil {
				return err
			}
			if err := a.selectSlot(wf, slot); err != nil {
				return err
			}

			chosenDate := wf.SelectedDate().Date
			chosenSlot := wf.SelectedSlot()
			if !yes {
				prompt := fmt.Sprintf("Book %s %s-%s?", chosenDate, chosenSlot.StartTime, chosenSlot.EndTime)
				if !a.confirm(prompt) {
					fmt.Fprintln(a.out, "Aborted")
					return nil
				}
			}

			if err := wf.Submit(cmd.Context()); err != nil {
				return a.wrapErr(err)
			}

			fmt.Fprintf(a.out, "Appointment booked for %s %s-%s\n", chosenDate, chosenSlot.StartTime, chosenSlot.EndTime)
			fmt.Fprintln(a.out, "See it with 'medibook appointments list'")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "availability date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&slot, "slot", "", "slot start time (HH:MM)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

// selectDate applies the --date flag or shows the date grid and prompts.
func (a *App) selectDate(wf *booking.Workflow, date string) error {
	if date != "" {
		return wf.SelectDate(date)
	}

	rows := make([][]string, 0, len(wf.Availabilities()))
	for _, av := range wf.Availabilities() {
		rows = append(rows, []string{
			av.Date,
			fmt.Sprintf("%s-%s", av.StartTime, av.EndTime),
			strconv.Itoa(av.AvailableSlots()),
		})
	}
	a.table([]string{"DATE", "WINDOW", "OPEN SLOTS"}, rows)

	choice, err := a.promptLine("\nSelect date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	return wf.SelectDate(choice)
}

// selectSlot applies the --slot flag or shows the slot grid and prompts
// until an open slot is chosen. Picking a booked slot just re-prompts.
func (a *App) selectSlot(wf *booking.Workflow, start string) error {
	slots := wf.Slots()
	if start != "" {
		for i := range slots {
			if slots[i].StartTime == start {
				ok, err := wf.SelectSlot(i)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("slot %s is already booked", start)
				}
				return nil
			}
		}
		return fmt.Errorf("no slot starting at %s", start)
	}

	rows := make([][]string, 0, len(slots))
	for i, sl := range slots {
		status := "open"
		if !sl.IsAvailable {
			status = "booked"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s-%s", sl.StartTime, sl.EndTime),
			status,
		})
	}
	a.table([]string{"#", "SLOT", "STATUS"}, rows)

	for {
		choice, err := a.promptLine("\nSelect slot #: ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(slots) {
			fmt.Fprintln(a.out, "Enter a slot number from the list")
			continue
		}
		ok, err := wf.SelectSlot(n - 1)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "That slot is already booked, pick another")
			continue
		}
		return nil
	}
}
