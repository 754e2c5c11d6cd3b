// Package session owns the process-wide user session.
//
// The controller is an explicit state machine:
//
//	unknown → validating → authenticated(user) | anonymous
//
// authenticated drops to anonymous on logout or a detected invalid
// credential, and moves to a new authenticated state only via role switching
// or a fresh login. Session state is never partially updated: transitions
// replace or clear it wholesale. Subscribers (the command guard, status
// rendering) are notified on every transition so permission derivation is
// recomputed deterministically whenever the user changes.
package session

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/credstore"
	"github.com/opsdeskhq/opsdesk/internal/domain"
	"github.com/opsdeskhq/opsdesk/internal/errors"
	"github.com/opsdeskhq/opsdesk/internal/log"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown is the initial state before bootstrap.
	StateUnknown State = iota
	// StateValidating means a stored token is being verified.
	StateValidating
	// StateAuthenticated means a user is logged in.
	StateAuthenticated
	// StateAnonymous means there is no valid session.
	StateAnonymous
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// Snapshot is an immutable view of the session handed to subscribers.
type Snapshot struct {
	State        State
	User         *domain.User
	Capabilities authz.Capabilities
}

// Controller is the session state machine.
type Controller struct {
	client *api.Client
	creds  *credstore.Store
	logger *log.Logger

	mu           sync.Mutex
	state        State
	user         *domain.User
	caps         authz.Capabilities
	bootstrapped bool
	subscribers  []func(Snapshot)
}

// NewController creates a session controller in the unknown state.
func NewController(client *api.Client, creds *credstore.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Controller{
		client: client,
		creds:  creds,
		logger: logger,
		state:  StateUnknown,
	}
}

// Subscribe registers a transition observer. Observers run synchronously,
// outside the controller lock, in registration order.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Current returns the current session snapshot.
func (c *Controller) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Capabilities returns the capability record derived from the current user.
func (c *Controller) Capabilities() authz.Capabilities {
	return c.Current().Capabilities
}

// Bootstrap hydrates the session from the persisted credential. It runs once
// per process; subsequent calls return the settled state immediately.
//
// No persisted token means anonymous without any network call. Otherwise the
// token is validated against the backend: a truthy verdict hydrates the user
// from the persisted record (falling back to the server copy when the record
// is absent); an explicit invalid verdict clears storage and resolves
// anonymous; a transport failure resolves anonymous for this run but leaves
// storage intact so the next run can retry.
func (c *Controller) Bootstrap(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.bootstrapped {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.bootstrapped = true

	token, err := c.creds.Token()
	if err != nil || token == "" {
		c.setLocked(StateAnonymous, nil)
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return snap
	}

	c.setLocked(StateValidating, nil)
	validating := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(validating)

	valid, serverUser, err := c.client.ValidateToken(ctx)

	c.mu.Lock()
	switch {
	case err != nil:
		// A 401 already cleared storage inside the pipeline; any other
		// failure (transport, 5xx) leaves storage for the next run.
		c.logger.Debug("token validation failed", "error", err)
		c.setLocked(StateAnonymous, nil)
	case !valid:
		// Explicit invalid verdict: the credential is dead, clear it.
		if cerr := c.creds.Clear(); cerr != nil {
			c.logger.Error("failed to clear credentials", "error", cerr)
		}
		c.setLocked(StateAnonymous, nil)
	default:
		user, _ := c.creds.User()
		if user == nil {
			user = serverUser
		}
		c.setLocked(StateAuthenticated, user)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap
}

// Login authenticates with email and password. On success the token and user
// are persisted together and the session transitions to authenticated. On
// any failure, including a 200 response lacking a token in every recognized
// shape, storage is untouched and the session stays anonymous.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	result, err := c.client.Login(ctx, email, password)
	if err != nil {
		c.transition(StateAnonymous, nil)
		var opsErr *errors.OpsdeskError
		if stderrors.As(err, &opsErr) && opsErr.Code == errors.ErrCodeAuthTokenMissing {
			return err
		}
		return errors.NewLoginFailedError(err)
	}

	if err := c.creds.Save(result.Token, result.User); err != nil {
		return err
	}

	c.transition(StateAuthenticated, result.User)
	return nil
}

// Logout tears the session down. The network call is best-effort: a failure
// is logged and swallowed, never blocking the local teardown. Storage is
// always cleared and the state always transitions to anonymous. Calling
// Logout twice is safe.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.client.Logout(ctx); err != nil {
		c.logger.Warn("logout request failed", "error", err)
	}

	if err := c.creds.Clear(); err != nil {
		return err
	}

	c.transition(StateAnonymous, nil)
	return nil
}

// SwitchRole lets the top-level administrative role preview another role's
// view. Only the role field changes, in memory and in the persisted record.
// Any other caller is a silent no-op.
func (c *Controller) SwitchRole(newRole domain.Role) {
	c.mu.Lock()
	if c.user == nil || c.user.Role != domain.RoleSuperAdmin || !newRole.Valid() {
		c.mu.Unlock()
		return
	}

	switched := *c.user
	switched.Role = newRole
	c.setLocked(StateAuthenticated, &switched)

	if err := c.creds.SetUser(&switched); err != nil {
		c.logger.Error("failed to persist switched role", "error", err)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Invalidated is wired to the API client's session-invalidated signal: it
// drops the in-memory session to anonymous (storage was already cleared by
// the pipeline).
func (c *Controller) Invalidated(reason string) {
	c.logger.Debug("session invalidated", "reason", reason)
	c.transition(StateAnonymous, nil)
}

// Validate re-verifies the stored token on demand, distinct from bootstrap.
// Guarded commands use it on entry. An invalid verdict clears storage and
// drops to anonymous; a transport failure reports invalid for this check
// without touching storage.
func (c *Controller) Validate(ctx context.Context) bool {
	token, err := c.creds.Token()
	if err != nil || token == "" {
		c.transition(StateAnonymous, nil)
		return false
	}

	valid, serverUser, err := c.client.ValidateToken(ctx)
	if err != nil {
		c.logger.Debug("on-demand validation failed", "error", err)
		c.transition(StateAnonymous, nil)
		return false
	}
	if !valid {
		if cerr := c.creds.Clear(); cerr != nil {
			c.logger.Error("failed to clear credentials", "error", cerr)
		}
		c.transition(StateAnonymous, nil)
		return false
	}

	// A session that resolved anonymous earlier (say, a transport blip
	// during bootstrap) is rehydrated now that the token checked out.
	if c.Current().State != StateAuthenticated {
		user, _ := c.creds.User()
		if user == nil {
			user = serverUser
		}
		c.transition(StateAuthenticated, user)
	}
	return true
}

// transition replaces the session state wholesale and notifies subscribers.
func (c *Controller) transition(state State, user *domain.User) {
	c.mu.Lock()
	c.setLocked(state, user)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) setLocked(state State, user *domain.User) {
	c.state = state
	c.user = user
	c.caps = authz.DeriveForUser(user)
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:        c.state,
		User:         c.user,
		Capabilities: c.caps,
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	subs := make([]func(Snapshot), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
