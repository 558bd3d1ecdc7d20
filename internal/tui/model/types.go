package model

import (
	"context"
	"time"

	"jfrogext/internal/config"
	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
	"jfrogext/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is the screen currently shown.
type Page int

const (
	PageSettings Page = iota
	PageSetup
)

// String provides a human-readable representation of the Page.
func (p Page) String() string {
	switch p {
	case PageSettings:
		return "Settings"
	case PageSetup:
		return "Setup"
	default:
		return "Unknown"
	}
}

// Field identifies a focusable element of the settings page.
type Field int

const (
	FieldNone Field = iota
	FieldURLLink
	FieldXrayLink
	FieldCLILink
	FieldCreateEnv
	FieldURL
	FieldAuthType
	FieldUsername
	FieldPassword
	FieldAccessToken
	FieldEditToggle
	FieldTestConnection
	FieldPolicy
	FieldProject
	FieldWatches
	FieldCancel
	FieldSave
)

// IsInput reports whether the field is backed by a text input.
func (f Field) IsInput() bool {
	switch f {
	case FieldURL, FieldUsername, FieldPassword, FieldAccessToken, FieldProject, FieldWatches:
		return true
	}
	return false
}

// IsLink reports whether the field shows a copyable link.
func (f Field) IsLink() bool {
	return f == FieldURLLink || f == FieldXrayLink || f == FieldCLILink
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Constants for UI
const (
	MaxActivityLogLines = 500
	LogPanelHeight      = 8
	StatusMessageTTL    = 5 * time.Second
)

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Next           key.Binding
	Prev           key.Binding
	Left           key.Binding
	Right          key.Binding
	Activate       key.Binding
	Save           key.Binding
	Cancel         key.Binding
	CreateEnv      key.Binding
	TestConnection key.Binding
	Copy           key.Binding
	ToggleLog      key.Binding
	Help           key.Binding
	Retry          key.Binding
	Quit           key.Binding
}

// SetupRunner starts environment setups and reports their progress.
type SetupRunner interface {
	Start(ctx context.Context) string
	Subscribe(buffer int) (<-chan setup.Event, func())
	Snapshot() setup.Status
}

// Model holds the TUI state. Form data lives in the settings controller; the
// model keeps the widgets and the presentation state around it.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	Page       Page
	Quitting   bool
	FinalRoute settings.Route
	DebugMode  bool

	Ctx      context.Context
	Settings *settings.Controller
	Setup    SetupRunner

	// Settings page widgets
	Focus  Field
	Inputs map[Field]textinput.Model

	// Setup page
	SetupStatus     setup.Status
	SetupEvents     <-chan setup.Event
	StopSetupEvents func()

	Spinner  spinner.Model
	Keys     KeyMap
	Help     help.Model
	ShowHelp bool
	ShowLog  bool

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	ActivityLog []string
	LogViewport viewport.Model
	LogChannel  <-chan logging.LogEntry
	TUIChannel  chan tea.Msg
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// FocusOrder lists the focusable fields for the current form state.
func (m *Model) FocusOrder() []Field {
	state := m.Settings.State()
	var order []Field

	if state.EditingConnection {
		order = append(order, FieldCreateEnv, FieldURL, FieldAuthType)
		if state.Draft.UsesAccessToken() {
			order = append(order, FieldAccessToken)
		} else {
			order = append(order, FieldUsername, FieldPassword)
		}
		order = append(order, FieldEditToggle, FieldTestConnection)
	} else {
		order = append(order, FieldURLLink, FieldXrayLink, FieldCLILink, FieldEditToggle)
	}

	order = append(order, FieldPolicy)
	switch state.Policy {
	case config.PolicyProject:
		order = append(order, FieldProject)
	case config.PolicyWatches:
		order = append(order, FieldWatches)
	}
	return append(order, FieldCancel, FieldSave)
}

// FocusedInput returns the text input with focus, if any.
func (m *Model) FocusedInput() (textinput.Model, bool) {
	if !m.Focus.IsInput() {
		return textinput.Model{}, false
	}
	in, ok := m.Inputs[m.Focus]
	return in, ok
}

// SetFocus moves focus to f and updates the input cursors.
func (m *Model) SetFocus(f Field) tea.Cmd {
	m.Focus = f
	var cmd tea.Cmd
	for field, in := range m.Inputs {
		if field == f {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.Inputs[field] = in
	}
	return cmd
}

// MoveFocus moves focus by delta positions, wrapping around.
func (m *Model) MoveFocus(delta int) tea.Cmd {
	order := m.FocusOrder()
	if len(order) == 0 {
		return nil
	}
	idx := -1
	for i, f := range order {
		if f == m.Focus {
			idx = i
			break
		}
	}
	if idx == -1 {
		return m.SetFocus(order[0])
	}
	next := (idx + delta + len(order)) % len(order)
	return m.SetFocus(order[next])
}

// EnsureFocus keeps focus on a field that is still visible.
func (m *Model) EnsureFocus() tea.Cmd {
	for _, f := range m.FocusOrder() {
		if f == m.Focus {
			return nil
		}
	}
	return m.MoveFocus(0)
}
