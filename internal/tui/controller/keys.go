package controller

import (
	"time"

	"jfrogext/internal/config"
	"jfrogext/internal/settings"
	"jfrogext/internal/tui/model"
	"jfrogext/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerSubsystem = "Controller"

// clipboardWriteAll is mocked in tests.
var clipboardWriteAll = clipboard.WriteAll

func handleKeyMsg(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(keyMsg, m.Keys.Quit) {
		return quit(m, "")
	}
	if key.Matches(keyMsg, m.Keys.ToggleLog) {
		m.ShowLog = !m.ShowLog
		return m, nil
	}
	if m.ShowHelp && key.Matches(keyMsg, m.Keys.Cancel, m.Keys.Help) {
		m.ShowHelp = false
		return m, nil
	}

	if m.Page == model.PageSetup {
		return handleSetupKeys(m, keyMsg)
	}
	return handleSettingsKeys(m, keyMsg)
}

func handleSetupKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	terminal := m.SetupStatus.Stage.IsTerminal()
	switch {
	case key.Matches(keyMsg, m.Keys.Cancel):
		return m, m.LeaveSetup()
	case key.Matches(keyMsg, m.Keys.Retry) && terminal:
		return m, m.StartSetup()
	case key.Matches(keyMsg, m.Keys.Activate) && terminal && m.SetupStatus.Err == nil:
		return quit(m, settings.RouteScan)
	case key.Matches(keyMsg, m.Keys.Help):
		m.ShowHelp = true
	}
	return m, nil
}

func handleSettingsKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	ctrl := m.Settings
	state := ctrl.State()
	if state.Loading {
		if key.Matches(keyMsg, m.Keys.Cancel) {
			ctrl.Cancel()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Cancel):
		ctrl.Cancel()
		return m, nil
	case key.Matches(keyMsg, m.Keys.Save):
		return m, saveCmd(m)
	case key.Matches(keyMsg, m.Keys.CreateEnv):
		ctrl.CreateEnvironment()
		return m, nil
	case key.Matches(keyMsg, m.Keys.TestConnection):
		return m, testConnectionCmd(m)
	case key.Matches(keyMsg, m.Keys.Next):
		return m, m.MoveFocus(1)
	case key.Matches(keyMsg, m.Keys.Prev):
		return m, m.MoveFocus(-1)
	}

	if m.Focus.IsInput() {
		return handleInputKey(m, keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Left):
		cycleOption(m, -1)
		return m, m.EnsureFocus()
	case key.Matches(keyMsg, m.Keys.Right):
		cycleOption(m, 1)
		return m, m.EnsureFocus()
	case key.Matches(keyMsg, m.Keys.Activate):
		return activateFocused(m)
	case key.Matches(keyMsg, m.Keys.Copy):
		return m, copyFocusedLink(m)
	case key.Matches(keyMsg, m.Keys.Help):
		m.ShowHelp = true
	}
	return m, nil
}

// handleInputKey feeds the key into the focused input and mirrors its value
// into the draft.
func handleInputKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(keyMsg, m.Keys.Activate) && keyMsg.String() == "enter" {
		return m, m.MoveFocus(1)
	}
	if m.Settings.State().Saving {
		return m, nil
	}
	in, ok := m.FocusedInput()
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(keyMsg)
	m.Inputs[m.Focus] = in

	value := in.Value()
	switch m.Focus {
	case model.FieldURL:
		m.Settings.SetURL(value)
	case model.FieldUsername:
		m.Settings.SetUsername(value)
	case model.FieldPassword:
		m.Settings.SetPassword(value)
	case model.FieldAccessToken:
		m.Settings.SetAccessToken(value)
	case model.FieldProject:
		m.Settings.SetProject(value)
	case model.FieldWatches:
		m.Settings.SetWatches(value)
	}
	return m, cmd
}

var (
	authOptions   = []config.AuthType{config.AuthBasic, config.AuthAccessToken}
	policyOptions = []config.Policy{config.PolicyVulnerabilities, config.PolicyProject, config.PolicyWatches}
)

// cycleOption moves the selection of the focused radio group.
func cycleOption(m *model.Model, delta int) {
	state := m.Settings.State()
	switch m.Focus {
	case model.FieldAuthType:
		current := 0
		if state.Draft.UsesAccessToken() {
			current = 1
		}
		next := (current + delta + len(authOptions)) % len(authOptions)
		m.Settings.SetAuthType(authOptions[next])
	case model.FieldPolicy:
		current := int(state.Policy)
		next := (current + delta + len(policyOptions)) % len(policyOptions)
		m.Settings.SetPolicy(policyOptions[next])
	}
}

func activateFocused(m *model.Model) (*model.Model, tea.Cmd) {
	ctrl := m.Settings
	switch m.Focus {
	case model.FieldAuthType, model.FieldPolicy:
		cycleOption(m, 1)
		return m, m.EnsureFocus()
	case model.FieldEditToggle:
		editing := ctrl.ToggleEditingConnection()
		logging.Debug(controllerSubsystem, "Editing connection details: %v", editing)
		m.SyncInputsFromDraft()
		return m, m.EnsureFocus()
	case model.FieldTestConnection:
		return m, testConnectionCmd(m)
	case model.FieldCreateEnv:
		ctrl.CreateEnvironment()
	case model.FieldCancel:
		ctrl.Cancel()
	case model.FieldSave:
		return m, saveCmd(m)
	case model.FieldURLLink, model.FieldXrayLink, model.FieldCLILink:
		return m, copyFocusedLink(m)
	}
	return m, nil
}

func saveCmd(m *model.Model) tea.Cmd {
	if !m.Settings.CanSave() {
		return m.SetStatusMessage("Nothing to save yet", model.StatusBarInfo, 2*time.Second)
	}
	return model.SaveSettingsCmd(m.Ctx, m.Settings)
}

func testConnectionCmd(m *model.Model) tea.Cmd {
	if !m.Settings.CanTestConnection() {
		return m.SetStatusMessage("Enter the full connection details to test them", model.StatusBarInfo, 2*time.Second)
	}
	return model.TestConnectionCmd(m.Ctx, m.Settings)
}

// FocusedLink returns the link behind the focused field.
func FocusedLink(m *model.Model) string {
	state := m.Settings.State()
	switch m.Focus {
	case model.FieldURLLink:
		return state.Saved.URL
	case model.FieldXrayLink:
		return state.Versions.XrayReleaseNotes()
	case model.FieldCLILink:
		return state.Versions.CLIReleaseNotes()
	}
	return ""
}

func copyFocusedLink(m *model.Model) tea.Cmd {
	link := FocusedLink(m)
	if link == "" {
		return nil
	}
	if err := clipboardWriteAll(link); err != nil {
		logging.Error(controllerSubsystem, err, "Failed to copy link")
		return m.SetStatusMessage("Copy failed", model.StatusBarError, 3*time.Second)
	}
	return m.SetStatusMessage("Copied "+link, model.StatusBarSuccess, 3*time.Second)
}
