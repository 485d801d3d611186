package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAppointmentsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List or cancel appointments",
	}
	cmd.AddCommand(newAppointmentsListCmd(app), newAppointmentsCancelCmd(app))
	return cmd
}

func newAppointmentsListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}

			if s.IsDoctor() {
				appts, err := a.client.DoctorAppointments(cmd.Context())
				if err != nil {
					return a.wrapErr(err)
				}
				if len(appts) == 0 {
					fmt.Fprintln(a.out, "No appointments scheduled")
					return nil
				}
				rows := make([][]string, 0, len(appts))
				for _, ap := range appts {
					rows = append(rows, []string{
						strconv.FormatInt(ap.ID, 10),
						ap.PatientName,
						formatWhen(ap.StartDateTime),
						formatWhen(ap.EndDateTime),
					})
				}
				a.table([]string{"ID", "PATIENT", "START", "END"}, rows)
				return nil
			}

			appts, err := a.client.PatientAppointments(cmd.Context())
			if err != nil {
				return a.wrapErr(err)
			}
			if len(appts) == 0 {
				fmt.Fprintln(a.out, "No appointments yet, book one with 'medibook book <doctor-id>'")
				return nil
			}
			rows := make([][]string, 0, len(appts))
			for _, ap := range appts {
				rows = append(rows, []string{
					strconv.FormatInt(ap.ID, 10),
					"Dr. " + ap.DoctorName,
					orDash(ap.Specialty),
					formatWhen(ap.StartDateTime),
				})
			}
			a.table([]string{"ID", "DOCTOR", "SPECIALTY", "WHEN"}, rows)
			return nil
		},
	}
}

func newAppointmentsCancelCmd(app func() *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel one of your appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}
			if !s.IsPatient() {
				return errors.New("only patients can cancel appointments here")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}

			if !yes && !a.confirm(fmt.Sprintf("Cancel appointment %d?", id)) {
				fmt.Fprintln(a.out, "Aborted")
				return nil
			}

			if err := a.client.CancelAppointment(cmd.Context(), id); err != nil {
				return a.wrapErr(err)
			}
			fmt.Fprintf(a.out, "Appointment %d cancelled\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
