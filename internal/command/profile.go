package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/medibook/medibook-cli/internal/model"
)

func newProfileCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileUpdateCmd(app))
	return cmd
}

func newProfileShowCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}

			if s.IsDoctor() {
				p, err := a.client.DoctorProfile(cmd.Context())
				if err != nil {
					return a.wrapErr(err)
				}
				specialty := "-"
				if p.SpecialtyName != nil {
					specialty = *p.SpecialtyName
				}
				a.table([]string{"FIELD", "VALUE"}, [][]string{
					{"Username", p.User.Username},
					{"Email", p.User.Email},
					{"Specialty", specialty},
					{"Contact", orDash(p.Contact)},
					{"Bio", orDash(p.Bio)},
				})
				return nil
			}

			p, err := a.client.PatientProfile(cmd.Context())
			if err != nil {
				return a.wrapErr(err)
			}
			age := "-"
			if p.Age != nil {
				age = strconv.Itoa(*p.Age)
			}
			a.table([]string{"FIELD", "VALUE"}, [][]string{
				{"Username", p.User.Username},
				{"Email", p.User.Email},
				{"Age", age},
				{"Contact", orDash(p.Contact)},
			})
			return nil
		},
	}
}

func newProfileUpdateCmd(app func() *App) *cobra.Command {
	var (
		username, email, password string
		contact, bio              string
		specialty                 int64
		age                       int
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}

			changed := func(name string) bool { return cmd.Flags().Changed(name) }

			var newUsername string
			if s.IsDoctor() {
				current, err := a.client.DoctorProfile(cmd.Context())
				if err != nil {
					return a.wrapErr(err)
				}
				req := &model.UpdateDoctorProfileRequest{
					Contact:   current.Contact,
					Bio:       current.Bio,
					Specialty: current.Specialty,
					User: model.UserUpdate{
						Username: current.User.Username,
						Email:    current.User.Email,
					},
				}
				if changed("username") {
					req.User.Username = username
				}
				if changed("email") {
					req.User.Email = email
				}
				if changed("password") {
					req.User.Password = password
				}
				if changed("contact") {
					req.Contact = contact
				}
				if changed("bio") {
					req.Bio = bio
				}
				if changed("specialty") {
					req.Specialty = &specialty
				}
				if err := model.Validate(req); err != nil {
					return err
				}
				updated, err := a.client.UpdateDoctorProfile(cmd.Context(), req)
				if err != nil {
					return a.wrapErr(err)
				}
				newUsername = updated.User.Username
			} else {
				current, err := a.client.PatientProfile(cmd.Context())
				if err != nil {
					return a.wrapErr(err)
				}
				req := &model.UpdatePatientProfileRequest{
					Age:     current.Age,
					Contact: current.Contact,
					User: model.UserUpdate{
						Username: current.User.Username,
						Email:    current.User.Email,
					},
				}
				if changed("username") {
					req.User.Username = username
				}
				if changed("email") {
					req.User.Email = email
				}
				if changed("password") {
					req.User.Password = password
				}
				if changed("contact") {
					req.Contact = contact
				}
				if changed("age") {
					req.Age = &age
				}
				if err := model.Validate(req); err != nil {
					return err
				}
				updated, err := a.client.UpdatePatientProfile(cmd.Context(), req)
				if err != nil {
					return a.wrapErr(err)
				}
				newUsername = updated.User.Username
			}

			// A username change invalidates the stored display name.
			if newUsername != "" && newUsername != s.Username {
				s.Username = newUsername
				if err := a.store.Save(s); err != nil {
					return err
				}
			}

			fmt.Fprintln(a.out, "Profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&contact, "contact", "", "contact info")
	cmd.Flags().StringVar(&bio, "bio", "", "bio (doctors)")
	cmd.Flags().Int64Var(&specialty, "specialty", 0, "specialty id (doctors)")
	cmd.Flags().IntVar(&age, "age", 0, "age (patients)")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
