// Package settings implements the settings form: a draft of the extension
// configuration and scanning policy, its save eligibility and persistence.
package settings

import (
	"context"
	"strings"
	"sync"

	"jfrogext/internal/config"
	"jfrogext/internal/platform"
	"jfrogext/pkg/logging"
)

const subsystem = "Settings"

// Route is a navigation destination.
type Route string

const (
	RouteScan     Route = "/scan"
	RouteSetupEnv Route = "/setupenv"
)

// Notification texts for the connection test.
const (
	ConnectionSucceeded = "Successfully connected to JFrog Environment"
	ConnectionFailed    = "Could not connect to JFrog Environment: "
)

// Store persists the extension configuration.
type Store interface {
	Load(ctx context.Context) (config.ExtensionConfig, error)
	Save(ctx context.Context, cfg config.ExtensionConfig) error
}

// Verifier tests a connection. A nil override means the persisted connection.
type Verifier interface {
	TestConnection(ctx context.Context, override *config.ExtensionConfig) (string, error)
}

// VersionSource provides display-only version metadata.
type VersionSource interface {
	Versions(ctx context.Context) (platform.Versions, error)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route Route)
}

// Notifier shows fire-and-forget messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Deps bundles the controller's collaborators. Versions may be nil.
type Deps struct {
	Store     Store
	Verifier  Verifier
	Versions  VersionSource
	Navigator Navigator
	Notifier  Notifier
}

// State is a read-only copy of the controller for renderers.
type State struct {
	Draft             config.ExtensionConfig
	Saved             config.ExtensionConfig
	Policy            config.Policy
	SavedPolicy       config.Policy
	EditingConnection bool
	Versions          platform.Versions

	Loading bool
	Saving  bool
	Testing bool

	CanSave           bool
	CanTestConnection bool
}

// Controller holds the settings draft and gates its persistence.
// It is safe for concurrent use; collaborator calls happen outside the lock.
type Controller struct {
	deps Deps

	mu          sync.Mutex
	draft       config.ExtensionConfig
	saved       config.ExtensionConfig
	policy      config.Policy
	savedPolicy config.Policy
	editing     bool
	versions    platform.Versions
	loading     bool
	saving      bool
	testing     bool
}

// NewController creates a controller in the loading state.
func NewController(deps Deps) *Controller {
	return &Controller{
		deps:    deps,
		draft:   config.ExtensionConfig{AuthType: config.AuthBasic},
		loading: true,
	}
}

// Load reads the persisted configuration and derives the active policy.
// Version metadata is fetched best effort afterwards.
func (c *Controller) Load(ctx context.Context) error {
	cfg, err := c.deps.Store.Load(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to load extension configuration")
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		return err
	}
	if cfg.AuthType == "" {
		cfg.AuthType = config.AuthBasic
	}
	policy := config.DerivePolicy(cfg)

	c.mu.Lock()
	c.draft = cfg
	c.saved = cfg
	c.policy = policy
	c.savedPolicy = policy
	c.mu.Unlock()

	if c.deps.Versions != nil {
		versions, err := c.deps.Versions.Versions(ctx)
		if err != nil {
			logging.Warn(subsystem, "Could not determine versions: %v", err)
		}
		c.mu.Lock()
		c.versions = versions
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
	logging.Debug(subsystem, "Loaded settings with policy %s", policy)
	return nil
}

// edit applies fn to the draft unless a save is in flight.
func (c *Controller) edit(fn func(d *config.ExtensionConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return
	}
	fn(&c.draft)
}

// SetURL updates the draft environment URL.
func (c *Controller) SetURL(v string) { c.edit(func(d *config.ExtensionConfig) { d.URL = v }) }

// SetUsername updates the draft username used for basic auth.
func (c *Controller) SetUsername(v string) { c.edit(func(d *config.ExtensionConfig) { d.Username = v }) }

// SetPassword updates the draft password. It is only persisted on save.
func (c *Controller) SetPassword(v string) { c.edit(func(d *config.ExtensionConfig) { d.Password = v }) }

// SetProject updates the draft JFrog project key.
func (c *Controller) SetProject(v string) { c.edit(func(d *config.ExtensionConfig) { d.Project = v }) }

// SetWatches updates the draft comma-separated watch list.
func (c *Controller) SetWatches(v string) { c.edit(func(d *config.ExtensionConfig) { d.Watches = v }) }

// SetAuthType switches the draft between basic auth and access token.
func (c *Controller) SetAuthType(v config.AuthType) {
	c.edit(func(d *config.ExtensionConfig) { d.AuthType = v })
}

// SetAccessToken updates the draft access token. It is only persisted on save.
func (c *Controller) SetAccessToken(v string) {
	c.edit(func(d *config.ExtensionConfig) { d.AccessToken = v })
}

// SetPolicy selects the scanning policy. The other policy's field is kept
// until save.
func (c *Controller) SetPolicy(p config.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return
	}
	c.policy = p
}

// SetEditingConnection switches between showing and editing connection details.
func (c *Controller) SetEditingConnection(editing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = editing
}

// ToggleEditingConnection flips the editing mode and returns the new value.
func (c *Controller) ToggleEditingConnection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = !c.editing
	return c.editing
}

// CanSave reports whether the save action is enabled.
func (c *Controller) CanSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSaveLocked()
}

func (c *Controller) canSaveLocked() bool {
	if c.loading || c.saving {
		return false
	}
	if c.editing {
		return config.HasFullConnectionDetails(c.draft)
	}
	return config.PolicyChanged(c.savedPolicy, c.policy, c.saved, c.draft)
}

// CanTestConnection reports whether the connection test is enabled.
func (c *Controller) CanTestConnection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canTestLocked()
}

func (c *Controller) canTestLocked() bool {
	return c.editing && !c.testing && config.HasFullConnectionDetails(c.draft)
}

// Save reconciles and persists the draft. On success it navigates to the
// scan route and returns true. On failure the draft is left untouched and
// saving can be retried.
func (c *Controller) Save(ctx context.Context) bool {
	c.mu.Lock()
	if !c.canSaveLocked() {
		c.mu.Unlock()
		logging.Debug(subsystem, "Save requested while disabled")
		return false
	}
	c.saving = true
	policy := c.policy
	reconciled := config.Reconcile(c.draft, policy, c.editing)
	c.mu.Unlock()

	logging.Debug(subsystem, "Saving %+v", config.Redacted(reconciled))
	err := c.deps.Store.Save(ctx, reconciled)

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.draft = reconciled
		c.saved = reconciled
		c.savedPolicy = policy
	}
	c.mu.Unlock()

	if err != nil {
		logging.Error(subsystem, err, "Failed to save settings")
		c.notifyError("Could not save settings: " + err.Error())
		return false
	}

	logging.Info(subsystem, "Settings saved with policy %s", policy)
	c.navigate(RouteScan)
	return true
}

// TestConnection verifies the draft connection while editing, otherwise the
// persisted one. The outcome is reported through the notifier only.
func (c *Controller) TestConnection(ctx context.Context) {
	c.mu.Lock()
	if c.testing {
		c.mu.Unlock()
		return
	}
	c.testing = true
	var override *config.ExtensionConfig
	if c.editing {
		draft := c.draft
		override = &draft
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.testing = false
		c.mu.Unlock()
	}()

	resp, err := c.deps.Verifier.TestConnection(ctx, override)
	switch {
	case err != nil:
		logging.Warn(subsystem, "Connection test failed: %v", err)
		c.notifyError(ConnectionFailed + err.Error())
	case strings.TrimSpace(resp) == "OK":
		logging.Info(subsystem, "Connection test succeeded")
		c.notifySuccess(ConnectionSucceeded)
	default:
		logging.Warn(subsystem, "Connection test returned %q", resp)
		c.notifyError(ConnectionFailed + resp)
	}
}

// Cancel leaves the settings without saving.
func (c *Controller) Cancel() {
	c.navigate(RouteScan)
}

// CreateEnvironment opens the environment setup flow unless a save is in flight.
func (c *Controller) CreateEnvironment() bool {
	c.mu.Lock()
	saving := c.saving
	c.mu.Unlock()
	if saving {
		return false
	}
	c.navigate(RouteSetupEnv)
	return true
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Draft:             c.draft,
		Saved:             c.saved,
		Policy:            c.policy,
		SavedPolicy:       c.savedPolicy,
		EditingConnection: c.editing,
		Versions:          c.versions,
		Loading:           c.loading,
		Saving:            c.saving,
		Testing:           c.testing,
		CanSave:           c.canSaveLocked(),
		CanTestConnection: c.canTestLocked(),
	}
}

func (c *Controller) navigate(route Route) {
	if c.deps.Navigator != nil {
		c.deps.Navigator.Navigate(route)
	}
}

func (c *Controller) notifySuccess(msg string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Success(msg)
	}
}

func (c *Controller) notifyError(msg string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Error(msg)
	}
}
