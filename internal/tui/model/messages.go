package model

import (
	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
	"jfrogext/pkg/logging"
)

// ---- Settings messages ----

type SettingsLoadedMsg struct {
	Err error
}

type SaveFinishedMsg struct {
	OK bool
}

type ConnectionTestedMsg struct{}

// ---- Collaborator bridge messages ----

type NavigateMsg struct {
	Route settings.Route
}

type NoticeMsg struct {
	Type MessageType
	Text string
}

// ---- Setup messages ----

type SetupEventMsg struct {
	Event setup.Event
}

type SetupEventsClosedMsg struct{}

// ---- Logging / status bar ----

type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

type ClearStatusBarMsg struct{}
