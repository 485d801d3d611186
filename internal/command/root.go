package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medibook/medibook-cli/internal/api"
	"github.com/medibook/medibook-cli/internal/config"
	"github.com/medibook/medibook-cli/internal/session"
	"github.com/medibook/medibook-cli/pkg/logger"
)

// App wires the pieces every command needs: config, session store, API
// client, logger and the I/O streams (injectable for tests).
type App struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	log    zerolog.Logger
	in     *bufio.Reader
	out    io.Writer
}

// storeTokens adapts the session store to the client's token source. The
// file is re-read per request so a login in the same process is picked up.
type storeTokens struct {
	store *session.Store
}

func (t storeTokens) Token() string {
	s, err := t.store.Load()
	if err != nil {
		return ""
	}
	return s.AccessToken
}

// NewApp builds an App from loaded config.
func NewApp(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logger.New(&logger.Config{Level: cfg.LogLevel})

	path := cfg.SessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	store := session.NewStore(path)

	client := api.NewClient(api.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout(),
		RateLimitRPS:   cfg.API.RateLimitRPS,
		RateLimitBurst: cfg.API.RateLimitBurst,
		CacheTTL:       cfg.API.CacheTTL(),
		Logger:         log,
	}, storeTokens{store: store})

	return &App{
		cfg:    cfg,
		store:  store,
		client: client,
		log:    log,
		in:     bufio.NewReader(in),
		out:    out,
	}, nil
}

// NewRoot assembles the command tree.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "medibook",
		Short:         "Terminal client for the medibook appointment service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var app *App
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app, err = NewApp(cfg, os.Stdin, os.Stdout)
		return err
	}

	// Commands capture app lazily via the getter; PersistentPreRunE has
	// run by the time any RunE fires.
	get := func() *App { return app }

	root.AddCommand(
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newRegisterCmd(get),
		newProfileCmd(get),
		newAvailabilityCmd(get),
		newDoctorsCmd(get),
		newSpecialtiesCmd(get),
		newBookCmd(get),
		newAppointmentsCmd(get),
	)
	return root
}

// requireSession loads the stored session and refuses when not logged in.
func (a *App) requireSession() (session.Session, error) {
	s, err := a.store.Load()
	if err != nil {
		return session.Session{}, err
	}
	if !s.LoggedIn() {
		return session.Session{}, errors.New("not logged in, run 'medibook login' first")
	}
	return s, nil
}

// wrapErr gives every command the same failure behavior: a 401 clears the
// session and tells the user to log in again, everything else surfaces the
// server's message.
func (a *App) wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		if clearErr := a.store.Clear(); clearErr != nil {
			a.log.Warn().Err(clearErr).Msg("failed to clear session")
		}
		return errors.New("session expired, please log in again")
	}
	return errors.New(api.ErrorMessage(err))
}

// confirm asks before a destructive request goes out.
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptLine reads one trimmed line, used by the interactive flows.
func (a *App) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
