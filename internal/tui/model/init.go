package model

import (
	"context"

	"jfrogext/internal/settings"
	"jfrogext/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next option"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select/confirm"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/back"),
		),
		CreateEnv: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "create environment"),
		),
		TestConnection: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "test connection"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle activity log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry setup"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Save, k.Cancel, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Activate},
		{k.Save, k.Cancel, k.CreateEnv, k.TestConnection},
		{k.Copy, k.ToggleLog, k.Retry, k.Help, k.Quit},
	}
}

// Options wire the model to its collaborators.
type Options struct {
	Ctx        context.Context
	Settings   *settings.Controller
	Setup      SetupRunner
	TUIChannel chan tea.Msg
	LogChannel <-chan logging.LogEntry
	DebugMode  bool
	// StartPage opens the setup page directly when set to PageSetup.
	StartPage Page
}

func newInput(placeholder string, password bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 50
	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// InitialModel constructs the initial model with sensible defaults.
func InitialModel(opts Options) *Model {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ch := opts.TUIChannel
	if ch == nil {
		// Buffered channel to avoid blocking goroutines.
		ch = make(chan tea.Msg, 100)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		Page:      opts.StartPage,
		DebugMode: opts.DebugMode,
		Ctx:       ctx,
		Settings:  opts.Settings,
		Setup:     opts.Setup,
		Inputs: map[Field]textinput.Model{
			FieldURL:         newInput("Example: https://acme.jfrog.io", false),
			FieldUsername:    newInput("Username", false),
			FieldPassword:    newInput("Password", true),
			FieldAccessToken: newInput("Access Token", true),
			FieldProject:     newInput("Project Name", false),
			FieldWatches:     newInput("watch1,watch2,...", false),
		},
		Spinner:     s,
		Keys:        DefaultKeyMap(),
		Help:        help.New(),
		ActivityLog: make([]string, 0),
		LogViewport: viewport.New(0, LogPanelHeight),
		LogChannel:  opts.LogChannel,
		TUIChannel:  ch,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.Spinner.Tick,
		ChannelReaderCmd(m.TUIChannel),
		ListenForLogEntriesCmd(m.LogChannel),
		LoadSettingsCmd(m.Ctx, m.Settings),
	}
	if m.Page == PageSetup {
		cmds = append(cmds, m.StartSetup())
	}
	return tea.Batch(cmds...)
}

// SyncInputsFromDraft copies the draft into the text inputs. Secret inputs
// start empty; stored secrets are never shown.
func (m *Model) SyncInputsFromDraft() {
	draft := m.Settings.State().Draft
	values := map[Field]string{
		FieldURL:         draft.URL,
		FieldUsername:    draft.Username,
		FieldPassword:    draft.Password,
		FieldAccessToken: draft.AccessToken,
		FieldProject:     draft.Project,
		FieldWatches:     draft.Watches,
	}
	for field, value := range values {
		in := m.Inputs[field]
		in.SetValue(value)
		m.Inputs[field] = in
	}
}

// StartSetup switches to the setup page and starts a new setup run.
// The subscription is taken before the run starts so no stage is missed.
func (m *Model) StartSetup() tea.Cmd {
	if m.StopSetupEvents != nil {
		m.StopSetupEvents()
	}
	m.Page = PageSetup
	events, stop := m.Setup.Subscribe(16)
	m.SetupEvents = events
	m.StopSetupEvents = stop
	m.Setup.Start(m.Ctx)
	m.SetupStatus = m.Setup.Snapshot()
	return ListenForSetupEventsCmd(events)
}

// LeaveSetup returns to the settings page.
func (m *Model) LeaveSetup() tea.Cmd {
	if m.StopSetupEvents != nil {
		m.StopSetupEvents()
		m.StopSetupEvents = nil
	}
	m.SetupEvents = nil
	m.Page = PageSettings
	// Setup may have written new connection details.
	return LoadSettingsCmd(m.Ctx, m.Settings)
}
