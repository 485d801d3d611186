package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDoctorsCmd(app func() *App) *cobra.Command {
	var (
		specialty int64
		search    string
	)

	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse the doctor directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if _, err := a.requireSession(); err != nil {
				return err
			}

			doctors, err := a.client.ListDoctors(cmd.Context())
			if err != nil {
				return a.wrapErr(err)
			}

			rows := make([][]string, 0, len(doctors))
			for _, d := range doctors {
				if specialty != 0 && (d.Specialty == nil || d.Specialty.ID != specialty) {
					continue
				}
				if search != "" && !strings.Contains(strings.ToLower(d.User.Username), strings.ToLower(search)) {
					continue
				}
				rows = append(rows, []string{
					strconv.FormatInt(d.DoctorID, 10),
					d.User.Username,
					orDash(d.SpecialtyName()),
					orDash(d.Contact),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(a.out, "No doctors match")
				return nil
			}
			a.table([]string{"ID", "NAME", "SPECIALTY", "CONTACT"}, rows)
			fmt.Fprintln(a.out, "\nBook with 'medibook book <id>'")
			return nil
		},
	}

	cmd.Flags().Int64Var(&specialty, "specialty", 0, "filter by specialty id")
	cmd.Flags().StringVar(&search, "search", "", "filter by name substring")
	return cmd
}

func newSpecialtiesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "specialties",
		Short: "List medical specialties",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if _, err := a.requireSession(); err != nil {
				return err
			}

			specialties, err := a.client.ListSpecialties(cmd.Context())
			if err != nil {
				return a.wrapErr(err)
			}
			rows := make([][]string, 0, len(specialties))
			for _, s := range specialties {
				rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name})
			}
			a.table([]string{"ID", "NAME"}, rows)
			return nil
		},
	}
}
