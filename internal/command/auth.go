package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medibook/medibook-cli/internal/model"
	"github.com/medibook/medibook-cli/internal/session"
)

func newLoginCmd(app func() *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			var err error
			if username == "" {
				if username, err = a.promptLine("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.promptLine("Password: "); err != nil {
					return err
				}
			}

			tokens, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return a.wrapErr(err)
			}

			s := session.Session{
				AccessToken:  tokens.Access,
				RefreshToken: tokens.Refresh,
				Role:         tokens.Role,
				Username:     tokens.Username,
			}
			if err := a.store.Save(s); err != nil {
				return err
			}

			a.log.Info().Str("username", s.Username).Str("role", s.Role).Msg("logged in")
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.Username, s.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func newLogoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.requireSession()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Username: %s\nRole:     %s\n", s.Username, s.Role)
			if claims, err := s.Claims(); err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					fmt.Fprintf(a.out, "Token expires: %s\n", exp.Time.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}

func newRegisterCmd(app func() *App) *cobra.Command {
	var req model.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a doctor or patient account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := model.Validate(&req); err != nil {
				return err
			}
			if err := a.client.Register(cmd.Context(), &req); err != nil {
				return a.wrapErr(err)
			}
			fmt.Fprintln(a.out, "Registration successful, you can now login")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&req.Role, "role", model.RolePatient, "account role: doctor or patient")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
