package setup

import "time"

// Stage tracks the progress of the environment setup command.
type Stage int

const (
	StageIdle Stage = iota
	StageWaitingForUser
	StagePreparingEnv
	StageDone
	StageError
)

// String provides a human-readable representation of the Stage.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageWaitingForUser:
		return "WaitingForUser"
	case StagePreparingEnv:
		return "PreparingEnv"
	case StageDone:
		return "Done"
	case StageError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transitions happen without a new run.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageError
}

// Status is a snapshot of the tracker.
type Status struct {
	Stage     Stage
	RunID     string
	Exited    bool // ExitCode is only meaningful when set
	ExitCode  int
	Err       error
	UpdatedAt time.Time
}

// Event is published to subscribers on every stage change.
type Event struct {
	RunID    string
	Stage    Stage
	Exited   bool
	ExitCode int
	Err      error
	Time     time.Time
}
