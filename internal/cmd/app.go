package cmd

import (
	"os"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/config"
	"github.com/opsdeskhq/opsdesk/internal/credstore"
	"github.com/opsdeskhq/opsdesk/internal/guard"
	"github.com/opsdeskhq/opsdesk/internal/log"
	"github.com/opsdeskhq/opsdesk/internal/session"
	"github.com/opsdeskhq/opsdesk/internal/tui"
)

// App wires the client stack together: config, credential store, API
// client, session controller, and guard.
type App struct {
	Config  config.Config
	Creds   *credstore.Store
	Client  *api.Client
	Session *session.Controller
	Guard   *guard.Guard
	Logger  *log.Logger
}

var app *App

// getApp lazily builds the application wiring. The API client's
// session-invalidated signal is connected to the session controller here:
// the pipeline itself never navigates or exits, the shell reacts.
func getApp() (*App, error) {
	if app != nil {
		return app, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}

	logger := log.Default()
	if flagVerbose {
		logger = log.Verbose()
	}
	log.SetDefaultLogger(logger)

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	creds := credstore.NewAt(dir)

	// The controller does not exist yet when the client is built; the
	// closure resolves it at signal time.
	var sessCtrl *session.Controller
	client := api.NewClient(cfg.APIURL, creds,
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
		api.WithInvalidationHandler(func(reason string) {
			if sessCtrl != nil {
				sessCtrl.Invalidated(reason)
			}
			tui.Warn(os.Stderr, "Session ended (%s). Run 'opsdesk auth login' to sign in again.", reason)
		}),
	)

	sessCtrl = session.NewController(client, creds, logger)

	g := guard.New(sessCtrl, creds)
	g.NoInput = flagNoInput

	app = &App{
		Config:  cfg,
		Creds:   creds,
		Client:  client,
		Session: sessCtrl,
		Guard:   g,
		Logger:  logger,
	}
	return app, nil
}

// outputFormat resolves the effective output format for this invocation.
func (a *App) outputFormat() string {
	if flagOutput != "" {
		return flagOutput
	}
	return a.Config.Output
}
