// Package guard gates commands on session state and capabilities, the way
// the web client's route guard gated pages.
//
// Flow per guarded command: resolve the session (spinner while validating),
// offer the inline login form when anonymous (after a stored token gets one
// on-demand re-validation), then check the required capability and render
// the inline forbidden notice when the role lacks it.
package guard

import (
	"context"
	"io"
	"os"

	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/credstore"
	"github.com/opsdeskhq/opsdesk/internal/errors"
	"github.com/opsdeskhq/opsdesk/internal/session"
	"github.com/opsdeskhq/opsdesk/internal/tui"
)

// LoginPrompt collects credentials interactively. Tests replace it.
type LoginPrompt func() (email, password string, err error)

// Guard checks session and capability requirements before a command runs.
type Guard struct {
	session *session.Controller
	creds   *credstore.Store

	// NoInput disables interactive prompts; anonymous sessions then fail
	// immediately instead of rendering the login form.
	NoInput bool
	// Out receives notices (defaults to stderr).
	Out io.Writer
	// Prompt renders the inline login form.
	Prompt LoginPrompt
	// Spin wraps slow work in a loading indicator.
	Spin func(message string, work func() error) error
}

// New creates a guard over the given session controller and credential store.
func New(sess *session.Controller, creds *credstore.Store) *Guard {
	return &Guard{
		session: sess,
		creds:   creds,
		Out:     os.Stderr,
		Prompt: func() (string, string, error) {
			c, err := tui.LoginForm()
			return c.Email, c.Password, err
		},
		Spin: tui.WithSpinner,
	}
}

// Ensure resolves the session and verifies the capability. An empty
// capability only requires authentication.
func (g *Guard) Ensure(ctx context.Context, capability authz.Capability) error {
	snap := g.resolve(ctx)

	if snap.State != session.StateAuthenticated {
		var err error
		snap, err = g.inlineLogin(ctx)
		if err != nil {
			return err
		}
	}

	if capability != "" && !snap.Capabilities.Has(capability) {
		tui.ForbiddenNotice(g.Out, string(capability))
		return errors.NewForbiddenError(string(capability))
	}

	return nil
}

// resolve bootstraps the session, showing the loading indicator while the
// stored token is validated. No token means no network call at all.
func (g *Guard) resolve(ctx context.Context) session.Snapshot {
	if !g.creds.HasToken() {
		return g.session.Bootstrap(ctx)
	}

	var snap session.Snapshot
	_ = g.Spin("Checking session...", func() error {
		snap = g.session.Bootstrap(ctx)
		return nil
	})
	return snap
}

// inlineLogin renders the login form in place of the command. When a token
// is still stored (bootstrap can resolve anonymous without clearing on
// transport failures), it is re-validated once first; only a genuinely dead
// or absent credential reaches the form.
func (g *Guard) inlineLogin(ctx context.Context) (session.Snapshot, error) {
	if g.creds.HasToken() && g.session.Validate(ctx) {
		return g.session.Current(), nil
	}

	if g.NoInput {
		return session.Snapshot{}, errors.NewNotLoggedInError()
	}

	email, password, err := g.Prompt()
	if err != nil {
		return session.Snapshot{}, errors.NewNotLoggedInError()
	}

	if err := g.session.Login(ctx, email, password); err != nil {
		return session.Snapshot{}, err
	}

	return g.session.Current(), nil
}
