package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"jfrogext/internal/config"
	"jfrogext/internal/platform"
	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
	"jfrogext/internal/tui/model"
	"jfrogext/internal/tui/view"
	"jfrogext/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	cfg   config.ExtensionConfig
	saved []config.ExtensionConfig
}

func (s *memStore) Load(context.Context) (config.ExtensionConfig, error) { return s.cfg, nil }

func (s *memStore) Save(_ context.Context, cfg config.ExtensionConfig) error {
	s.saved = append(s.saved, cfg)
	s.cfg = cfg
	return nil
}

type okVerifier struct{}

func (okVerifier) TestConnection(context.Context, *config.ExtensionConfig) (string, error) {
	return "OK", nil
}

type staticVersions struct{}

func (staticVersions) Versions(context.Context) (platform.Versions, error) {
	return platform.Versions{Xray: "3.80.1", CLI: "2.52.8"}, nil
}

type fakeRunner struct {
	events chan setup.Event
	starts int
	runID  string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{events: make(chan setup.Event, 8)}
}

func (f *fakeRunner) Start(context.Context) string {
	f.starts++
	f.runID = "run-" + string(rune('0'+f.starts))
	return f.runID
}

func (f *fakeRunner) Subscribe(int) (<-chan setup.Event, func()) {
	return f.events, func() {}
}

func (f *fakeRunner) Snapshot() setup.Status {
	return setup.Status{Stage: setup.StageWaitingForUser, RunID: f.runID}
}

type harness struct {
	m      *model.Model
	store  *memStore
	runner *fakeRunner
}

func newHarness(t *testing.T, cfg config.ExtensionConfig) *harness {
	t.Helper()
	h := &harness{store: &memStore{cfg: cfg}, runner: newFakeRunner()}
	ch := make(chan tea.Msg, 100)
	bridge := model.NewBridge(context.Background(), ch)
	ctrl := settings.NewController(settings.Deps{
		Store:     h.store,
		Verifier:  okVerifier{},
		Versions:  staticVersions{},
		Navigator: bridge,
		Notifier:  bridge,
	})
	h.m = model.InitialModel(model.Options{
		Ctx:        context.Background(),
		Settings:   ctrl,
		Setup:      h.runner,
		TUIChannel: ch,
	})

	require.NoError(t, ctrl.Load(context.Background()))
	h.m, _ = Update(model.SettingsLoadedMsg{}, h.m)
	applyWindowSize(h.m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) key(k tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	h.m, cmd = Update(k, h.m)
	return cmd
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// nextBridgeMsg reads what the settings controller sent through the bridge.
func (h *harness) nextBridgeMsg(t *testing.T) tea.Msg {
	t.Helper()
	select {
	case msg := <-h.m.TUIChannel:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message on the TUI channel")
		return nil
	}
}

func logEntry(level logging.LogLevel, msg string) logging.LogEntry {
	return logging.LogEntry{Timestamp: time.Now(), Level: level, Subsystem: "Test", Message: msg}
}

func (h *harness) focus(f model.Field) {
	h.m.SetFocus(f)
}

func TestUpdate_LoadedSettingsFocusFirstField(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{URL: "https://acme.jfrog.io"})

	assert.Equal(t, model.FieldURLLink, h.m.Focus)
	assert.Equal(t, "https://acme.jfrog.io", h.m.Inputs[model.FieldURL].Value())
	assert.Empty(t, h.m.Inputs[model.FieldPassword].Value())
}

func TestUpdate_TypingUpdatesDraft(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.focus(model.FieldEditToggle)
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, h.m.Settings.State().EditingConnection)

	h.focus(model.FieldURL)
	h.typeText("https://acme.jfrog.io")
	h.focus(model.FieldUsername)
	h.typeText("admin")
	h.focus(model.FieldPassword)
	h.typeText("pw")

	state := h.m.Settings.State()
	assert.Equal(t, "https://acme.jfrog.io", state.Draft.URL)
	assert.Equal(t, "admin", state.Draft.Username)
	assert.Equal(t, "pw", state.Draft.Password)
	assert.True(t, state.CanSave)
	assert.True(t, state.CanTestConnection)
}

func TestUpdate_FocusWrapsAround(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	order := h.m.FocusOrder()

	h.key(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, order[len(order)-1], h.m.Focus)
	h.key(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, order[0], h.m.Focus)
}

func TestUpdate_PolicyRadioShowsMatchingInput(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.focus(model.FieldPolicy)

	h.key(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, config.PolicyProject, h.m.Settings.State().Policy)
	assert.Contains(t, h.m.FocusOrder(), model.FieldProject)
	assert.NotContains(t, h.m.FocusOrder(), model.FieldWatches)

	h.key(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, config.PolicyWatches, h.m.Settings.State().Policy)
	assert.Contains(t, h.m.FocusOrder(), model.FieldWatches)

	h.key(tea.KeyMsg{Type: tea.KeyLeft})
	h.key(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, config.PolicyVulnerabilities, h.m.Settings.State().Policy)
}

func TestUpdate_SaveNavigatesToScan(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{URL: "u"})
	h.focus(model.FieldPolicy)
	h.key(tea.KeyMsg{Type: tea.KeyRight})
	h.focus(model.FieldProject)
	h.typeText("myproj")

	cmd := h.key(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, model.SaveFinishedMsg{OK: true}, msg)
	require.Len(t, h.store.saved, 1)
	assert.Equal(t, "myproj", h.store.saved[0].Project)

	nav := h.nextBridgeMsg(t)
	assert.Equal(t, model.NavigateMsg{Route: settings.RouteScan}, nav)

	var quitCmd tea.Cmd
	h.m, quitCmd = Update(nav, h.m)
	assert.True(t, h.m.Quitting)
	assert.Equal(t, settings.RouteScan, h.m.FinalRoute)
	assert.NotNil(t, quitCmd)
}

func TestUpdate_SaveDisabledShowsHint(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.key(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Empty(t, h.store.saved)
	assert.Equal(t, "Nothing to save yet", h.m.StatusBarMessage)
}

func TestUpdate_EscCancels(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.key(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, model.NavigateMsg{Route: settings.RouteScan}, h.nextBridgeMsg(t))
}

func TestUpdate_ConnectionTestNotice(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.m.Settings.SetEditingConnection(true)
	h.m.Settings.SetURL("https://acme.jfrog.io")
	h.m.Settings.SetAuthType(config.AuthAccessToken)
	h.m.Settings.SetAccessToken("tok")

	cmd := h.key(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotNil(t, cmd)
	assert.Equal(t, model.ConnectionTestedMsg{}, cmd())

	notice := h.nextBridgeMsg(t)
	h.m, _ = Update(notice, h.m)
	assert.Equal(t, settings.ConnectionSucceeded, h.m.StatusBarMessage)
	assert.Equal(t, model.StatusBarSuccess, h.m.StatusBarMessageType)
}

func TestUpdate_CreateEnvironmentStartsSetup(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.key(tea.KeyMsg{Type: tea.KeyCtrlN})

	nav := h.nextBridgeMsg(t)
	assert.Equal(t, model.NavigateMsg{Route: settings.RouteSetupEnv}, nav)
	h.m, _ = Update(nav, h.m)

	assert.Equal(t, model.PageSetup, h.m.Page)
	assert.Equal(t, 1, h.runner.starts)
	assert.Equal(t, "run-1", h.m.SetupStatus.RunID)

	h.m, _ = Update(model.SetupEventMsg{Event: setup.Event{RunID: "run-1", Stage: setup.StagePreparingEnv}}, h.m)
	assert.Equal(t, setup.StagePreparingEnv, h.m.SetupStatus.Stage)

	// Events of other runs are ignored.
	h.m, _ = Update(model.SetupEventMsg{Event: setup.Event{RunID: "old", Stage: setup.StageError}}, h.m)
	assert.Equal(t, setup.StagePreparingEnv, h.m.SetupStatus.Stage)

	h.m, _ = Update(model.SetupEventMsg{Event: setup.Event{RunID: "run-1", Stage: setup.StageDone, Exited: true, ExitCode: 1}}, h.m)
	assert.Equal(t, setup.StageDone, h.m.SetupStatus.Stage)
	assert.Contains(t, view.StageDescription(h.m.SetupStatus), "exit code 1")

	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, h.m.Quitting)
	assert.Equal(t, settings.RouteScan, h.m.FinalRoute)
}

func TestUpdate_SetupRetryAndBack(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	h.m.StartSetup()
	h.m, _ = Update(model.SetupEventMsg{Event: setup.Event{RunID: "run-1", Stage: setup.StageError, Err: errors.New("boom")}}, h.m)

	// enter does not continue after a failure
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, h.m.Quitting)

	h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, 2, h.runner.starts)
	assert.Equal(t, setup.StageWaitingForUser, h.m.SetupStatus.Stage)

	cmd := h.key(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, model.PageSettings, h.m.Page)
	require.NotNil(t, cmd)
	assert.Equal(t, model.SettingsLoadedMsg{}, cmd())
}

func TestUpdate_CopyFocusedLink(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	h := newHarness(t, config.ExtensionConfig{URL: "https://acme.jfrog.io"})
	h.focus(model.FieldXrayLink)
	h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	assert.Equal(t, "https://www.jfrog.com/confluence/display/JFROG/Xray+Release+Notes#XrayReleaseNotes-Xray3.80.1", copied)
	assert.Equal(t, model.StatusBarSuccess, h.m.StatusBarMessageType)
}

func TestUpdate_LogEntriesFilteredByDebugMode(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})

	h.m, _ = Update(model.NewLogEntryMsg{Entry: logEntry(logging.LevelDebug, "hidden")}, h.m)
	h.m, _ = Update(model.NewLogEntryMsg{Entry: logEntry(logging.LevelInfo, "shown")}, h.m)
	require.Len(t, h.m.ActivityLog, 1)
	assert.Contains(t, h.m.ActivityLog[0], "shown")
}

func TestUpdate_QuitKey(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	cmd := h.key(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, h.m.Quitting)
	assert.Empty(t, h.m.FinalRoute)
	assert.NotNil(t, cmd)
}

func TestRender_SettingsPage(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{URL: "https://acme.jfrog.io", Watches: "w1"})
	out := view.Render(h.m)

	assert.Contains(t, out, "JFrog Environment Connection Details")
	assert.Contains(t, out, "Scanning Policy")
	assert.Contains(t, out, "https://acme.jfrog.io")
	assert.Contains(t, out, "3.80.1")
	assert.Contains(t, out, "Watches")
}

func TestNewProgram_WiresBridge(t *testing.T) {
	p, m := NewProgram(context.Background(), ProgramOptions{
		Settings: settings.Deps{
			Store:    &memStore{},
			Verifier: okVerifier{},
			Versions: staticVersions{},
		},
	})
	require.NotNil(t, p)

	m.Settings.Cancel()
	select {
	case msg := <-m.TUIChannel:
		assert.Equal(t, model.NavigateMsg{Route: settings.RouteScan}, msg)
	case <-time.After(time.Second):
		t.Fatal("cancel did not reach the TUI")
	}
}

func TestSettingsApp_DelegatesToUpdate(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	app := newSettingsApp(h.m)

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.True(t, h.m.ShowLog)
	assert.Contains(t, next.View(), "Activity Log")
}

func TestSettingsApp_ResizesLayout(t *testing.T) {
	h := newHarness(t, config.ExtensionConfig{})
	app := newSettingsApp(h.m)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Nil(t, cmd)
	assert.Equal(t, 200, h.m.Width)
	assert.Equal(t, 196, h.m.LogViewport.Width)
	for _, in := range h.m.Inputs {
		assert.Equal(t, 60, in.Width)
	}

	app.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	for _, in := range h.m.Inputs {
		assert.Equal(t, 20, in.Width)
	}

	h.m.FinalRoute = settings.RouteScan
	assert.Equal(t, settings.RouteScan, app.finalRoute())
}
