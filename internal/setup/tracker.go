package setup

import (
	"context"
	"sync"
	"time"

	"jfrogext/internal/config"
	"jfrogext/pkg/logging"

	"github.com/google/uuid"
)

const subsystem = "Setup"

// Options configure the setup command a Tracker runs.
type Options struct {
	Script   Script
	Args     []string
	Sentinel string
}

// OptionsFromConfig maps the application config onto tracker options.
func OptionsFromConfig(cfg config.AppConfig) Options {
	return Options{
		Script:   Script{Unix: cfg.CLI.Script, Windows: cfg.CLI.WindowsScript},
		Args:     append([]string(nil), cfg.Setup.Args...),
		Sentinel: cfg.Setup.Sentinel,
	}
}

// Tracker owns the setup stage. It runs the setup command through an Executor
// and moves the stage as the command's output streams in:
//
//	Idle -> WaitingForUser -> PreparingEnv -> Done
//	any non-terminal stage -> Error on an execution error
//
// Every SetupEnv starts a new run and resets the stage to WaitingForUser.
// Callbacks that belong to a superseded run are ignored, as are callbacks
// arriving after the run reached a terminal stage.
type Tracker struct {
	exec Executor
	opts Options
	now  func() time.Time

	mu      sync.RWMutex
	status  Status
	subs    map[int]chan Event
	nextSub int
}

// NewTracker creates a tracker in the Idle stage.
func NewTracker(exec Executor, opts Options) *Tracker {
	if opts.Sentinel == "" {
		opts.Sentinel = config.DefaultSentinel
	}
	if len(opts.Args) == 0 {
		opts.Args = append([]string(nil), config.DefaultSetupArgs...)
	}
	return &Tracker{
		exec:   exec,
		opts:   opts,
		now:    time.Now,
		status: Status{Stage: StageIdle},
		subs:   make(map[int]chan Event),
	}
}

// Stage returns the current stage.
func (t *Tracker) Stage() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status.Stage
}

// Snapshot returns a copy of the current status.
func (t *Tracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Subscribe returns a channel receiving every stage change and a function
// that ends the subscription. Events are dropped for subscribers whose buffer is full.
func (t *Tracker) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
			close(ch)
		})
	}
}

// SetupEnv runs the setup command to completion and returns the final status.
// Execution errors end in StageError and are logged, not returned.
func (t *Tracker) SetupEnv(ctx context.Context) Status {
	runID := t.begin()
	t.stream(ctx, runID)
	return t.Snapshot()
}

// Start resets the stage to WaitingForUser and runs the setup command in the
// background. It returns the id of the new run.
func (t *Tracker) Start(ctx context.Context) string {
	runID := t.begin()
	go t.stream(ctx, runID)
	return runID
}

func (t *Tracker) begin() string {
	runID := uuid.NewString()

	t.mu.Lock()
	if t.status.Stage == StageWaitingForUser || t.status.Stage == StagePreparingEnv {
		logging.Warn(subsystem, "Starting setup run %s while run %s is still in progress", runID, t.status.RunID)
	}
	t.status = Status{Stage: StageWaitingForUser, RunID: runID, UpdatedAt: t.now()}
	t.publishLocked()
	t.mu.Unlock()

	return runID
}

func (t *Tracker) stream(ctx context.Context, runID string) {
	logging.Info(subsystem, "Running setup command (run %s)", runID)

	// The error is recorded through OnError; the return value carries nothing new.
	_ = t.exec.Stream(ctx, t.opts.Script, t.opts.Args, StreamHandlers{
		OnOutput: func(out Output) {
			if out.Stream == StreamStderr {
				logging.Debug(subsystem, "stderr: %s", out.Line)
				return
			}
			if out.Line == t.opts.Sentinel {
				if t.transition(runID, StagePreparingEnv, nil, nil) {
					logging.Info(subsystem, "The new environment is being built")
				}
				return
			}
			logging.Debug(subsystem, "stdout: %s", out.Line)
		},
		OnError: func(err error) {
			logging.Error(subsystem, err, "Setup command failed")
			t.transition(runID, StageError, err, nil)
		},
		OnClose: func(exitCode int) {
			if exitCode != 0 {
				logging.Warn(subsystem, "Setup command finished with exit code %d", exitCode)
			} else {
				logging.Info(subsystem, "Setup command finished with exit code %d", exitCode)
			}
			t.transition(runID, StageDone, nil, &exitCode)
		},
	})
}

// transition applies a stage change for runID and reports whether it took effect.
func (t *Tracker) transition(runID string, next Stage, err error, exitCode *int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.RunID != runID {
		logging.Debug(subsystem, "Ignoring %s from superseded run %s", next, runID)
		return false
	}
	if t.status.Stage.IsTerminal() {
		return false
	}
	if next == StagePreparingEnv && t.status.Stage != StageWaitingForUser {
		return false
	}

	t.status.Stage = next
	t.status.UpdatedAt = t.now()
	if err != nil {
		t.status.Err = err
	}
	if exitCode != nil {
		t.status.Exited = true
		t.status.ExitCode = *exitCode
	}
	t.publishLocked()
	return true
}

func (t *Tracker) publishLocked() {
	evt := Event{
		RunID:    t.status.RunID,
		Stage:    t.status.Stage,
		Exited:   t.status.Exited,
		ExitCode: t.status.ExitCode,
		Err:      t.status.Err,
		Time:     t.status.UpdatedAt,
	}
	for _, ch := range t.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
