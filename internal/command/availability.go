package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/medibook/medibook-cli/internal/model"
)

func newAvailabilityCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Manage your availability windows (doctors)",
	}
	cmd.AddCommand(
		newAvailabilityListCmd(app),
		newAvailabilityAddCmd(app),
		newAvailabilityDeleteCmd(app),
	)
	return cmd
}

func newAvailabilityListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your availability windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if _, err := a.requireSession(); err != nil {
				return err
			}

			avails, err := a.client.ListAvailabilities(cmd.Context())
			if err != nil {
				return a.wrapErr(err)
			}
			if len(avails) == 0 {
				fmt.Fprintln(a.out, "No availability windows, add one with 'medibook availability add'")
				return nil
			}

			rows := make([][]string, 0, len(avails))
			for _, av := range avails {
				rows = append(rows, []string{
					strconv.FormatInt(av.ID, 10),
					av.Date,
					av.StartTime,
					av.EndTime,
					strconv.Itoa(av.SlotDuration),
					strconv.Itoa(len(av.TimeSlots)),
				})
			}
			a.table([]string{"ID", "DATE", "START", "END", "SLOT MIN", "SLOTS"}, rows)
			return nil
		},
	}
}

func newAvailabilityAddCmd(app func() *App) *cobra.Command {
	var req model.CreateAvailabilityRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new availability window",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if _, err := a.requireSession(); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			created, err := a.client.CreateAvailability(cmd.Context(), &req)
			if err != nil {
				return a.wrapErr(err)
			}
			fmt.Fprintf(a.out, "Availability %d created for %s (%s-%s, %d min slots)\n",
				created.ID, created.Date, created.StartTime, created.EndTime, created.SlotDuration)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "end time (HH:MM)")
	cmd.Flags().IntVar(&req.SlotDuration, "slot-duration", 30, "slot length in minutes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newAvailabilityDeleteCmd(app func() *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an availability window and its slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid availability id %q", args[0])
			}

			if !yes && !a.confirm(fmt.Sprintf("Delete availability %d?", id)) {
				fmt.Fprintln(a.out, "Aborted")
				return nil
			}

			if err := a.client.DeleteAvailability(cmd.Context(), id); err != nil {
				return a.wrapErr(err)
			}
			fmt.Fprintf(a.out, "Availability %d deleted\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
