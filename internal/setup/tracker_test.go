package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedExecutor replays a fixed sequence of callbacks.
type scriptedExecutor struct {
	lines    []Output
	err      error
	exitCode int
	// observe is called before each callback with the tracker stage.
	observe func()
	gotArgs []string
	gotScript Script
}

func (s *scriptedExecutor) Stream(_ context.Context, script Script, args []string, h StreamHandlers) error {
	s.gotArgs = args
	s.gotScript = script
	for _, l := range s.lines {
		if s.observe != nil {
			s.observe()
		}
		h.emitOutput(l)
	}
	if s.observe != nil {
		s.observe()
	}
	if s.err != nil {
		h.emitError(s.err)
		return s.err
	}
	h.emitClose(s.exitCode)
	return nil
}

// manualExecutor hands the handlers to the test.
type manualExecutor struct {
	handlers chan StreamHandlers
}

func newManualExecutor() *manualExecutor {
	return &manualExecutor{handlers: make(chan StreamHandlers, 4)}
}

func (m *manualExecutor) Stream(ctx context.Context, _ Script, _ []string, h StreamHandlers) error {
	m.handlers <- h
	<-ctx.Done()
	return nil
}

func (m *manualExecutor) next(t *testing.T) StreamHandlers {
	t.Helper()
	select {
	case h := <-m.handlers:
		return h
	case <-time.After(2 * time.Second):
		t.Fatal("executor was not invoked")
		return StreamHandlers{}
	}
}

func TestTracker_InitialStageIsIdle(t *testing.T) {
	tr := NewTracker(&scriptedExecutor{}, Options{})
	assert.Equal(t, StageIdle, tr.Stage())
	assert.Empty(t, tr.Snapshot().RunID)
}

func TestTracker_DefaultsArgsAndSentinel(t *testing.T) {
	exec := &scriptedExecutor{}
	tr := NewTracker(exec, Options{Script: Script{Unix: "runcli.sh", Windows: "runcli.bat"}})
	tr.SetupEnv(context.Background())

	assert.Equal(t, []string{"setup", "--format=machine"}, exec.gotArgs)
	assert.Equal(t, "runcli.sh", exec.gotScript.Unix)
	assert.Equal(t, "runcli.bat", exec.gotScript.Windows)
}

func TestTracker_SentinelThenNonZeroExitIsDone(t *testing.T) {
	var seen []Stage
	exec := &scriptedExecutor{
		lines:    []Output{{Line: "Welcome"}, {Line: "PREPARING_ENV"}, {Line: "creating..."}},
		exitCode: 1,
	}
	tr := NewTracker(exec, Options{})
	exec.observe = func() { seen = append(seen, tr.Stage()) }

	status := tr.SetupEnv(context.Background())

	assert.Equal(t, []Stage{StageWaitingForUser, StageWaitingForUser, StagePreparingEnv, StagePreparingEnv}, seen)
	assert.Equal(t, StageDone, status.Stage)
	assert.True(t, status.Exited)
	assert.Equal(t, 1, status.ExitCode)
	assert.NoError(t, status.Err)
}

func TestTracker_CloseWithoutSentinelIsDone(t *testing.T) {
	tr := NewTracker(&scriptedExecutor{lines: []Output{{Line: "nothing to do"}}}, Options{})

	status := tr.SetupEnv(context.Background())
	assert.Equal(t, StageDone, status.Stage)
	assert.Equal(t, 0, status.ExitCode)
}

func TestTracker_SentinelMustMatchExactly(t *testing.T) {
	lines := []Output{
		{Line: " PREPARING_ENV"},
		{Line: "PREPARING_ENV "},
		{Line: "preparing_env"},
		{Stream: StreamStderr, Line: "PREPARING_ENV"},
	}
	var seen []Stage
	exec := &scriptedExecutor{lines: lines}
	tr := NewTracker(exec, Options{})
	exec.observe = func() { seen = append(seen, tr.Stage()) }

	tr.SetupEnv(context.Background())
	for _, s := range seen {
		assert.Equal(t, StageWaitingForUser, s)
	}
}

func TestTracker_ErrorCallbackIsError(t *testing.T) {
	boom := errors.New("script not found")
	tr := NewTracker(&scriptedExecutor{err: boom}, Options{})

	status := tr.SetupEnv(context.Background())
	assert.Equal(t, StageError, status.Stage)
	assert.ErrorIs(t, status.Err, boom)
	assert.False(t, status.Exited)
}

func TestTracker_NewRunResetsTerminalStage(t *testing.T) {
	exec := newManualExecutor()
	tr := NewTracker(exec, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := tr.Start(ctx)
	h := exec.next(t)
	h.OnError(errors.New("boom"))
	require.Equal(t, StageError, tr.Stage())

	second := tr.Start(ctx)
	assert.NotEqual(t, first, second)
	assert.Equal(t, StageWaitingForUser, tr.Stage())
	assert.NoError(t, tr.Snapshot().Err)
	exec.next(t)
}

func TestTracker_IgnoresSupersededRun(t *testing.T) {
	exec := newManualExecutor()
	tr := NewTracker(exec, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr.Start(ctx)
	stale := exec.next(t)
	current := tr.Start(ctx)
	fresh := exec.next(t)

	stale.OnOutput(Output{Line: "PREPARING_ENV"})
	stale.OnClose(0)
	assert.Equal(t, StageWaitingForUser, tr.Stage())
	assert.Equal(t, current, tr.Snapshot().RunID)

	fresh.OnOutput(Output{Line: "PREPARING_ENV"})
	assert.Equal(t, StagePreparingEnv, tr.Stage())
}

func TestTracker_TerminalStageIgnoresLateCallbacks(t *testing.T) {
	exec := newManualExecutor()
	tr := NewTracker(exec, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr.Start(ctx)
	h := exec.next(t)
	h.OnClose(0)
	h.OnError(errors.New("late"))
	h.OnOutput(Output{Line: "PREPARING_ENV"})

	status := tr.Snapshot()
	assert.Equal(t, StageDone, status.Stage)
	assert.NoError(t, status.Err)
}

func TestTracker_SubscribePublishesStageChanges(t *testing.T) {
	exec := &scriptedExecutor{lines: []Output{{Line: "PREPARING_ENV"}}}
	tr := NewTracker(exec, Options{})
	events, unsubscribe := tr.Subscribe(8)
	defer unsubscribe()

	status := tr.SetupEnv(context.Background())

	var stages []Stage
	for i := 0; i < 3; i++ {
		select {
		case evt := <-events:
			assert.Equal(t, status.RunID, evt.RunID)
			stages = append(stages, evt.Stage)
		case <-time.After(time.Second):
			t.Fatal("missing event")
		}
	}
	assert.Equal(t, []Stage{StageWaitingForUser, StagePreparingEnv, StageDone}, stages)
}

func TestTracker_UnsubscribeClosesChannel(t *testing.T) {
	tr := NewTracker(&scriptedExecutor{}, Options{})
	events, unsubscribe := tr.Subscribe(1)
	unsubscribe()
	unsubscribe()

	_, ok := <-events
	assert.False(t, ok)
	// Publishing after unsubscribe must not panic.
	tr.SetupEnv(context.Background())
}

func TestTracker_SlowSubscriberDoesNotBlock(t *testing.T) {
	exec := &scriptedExecutor{lines: []Output{{Line: "PREPARING_ENV"}}}
	tr := NewTracker(exec, Options{})
	_, unsubscribe := tr.Subscribe(1)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		tr.SetupEnv(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SetupEnv blocked on a full subscriber")
	}
}

func TestTracker_NonSentinelLinesNeverChangeStage(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("only the sentinel leaves WaitingForUser", prop.ForAll(
		func(lines []string) bool {
			var outputs []Output
			for _, l := range lines {
				if l == "PREPARING_ENV" {
					continue
				}
				outputs = append(outputs, Output{Line: l})
			}
			ok := true
			exec := &scriptedExecutor{lines: outputs}
			tr := NewTracker(exec, Options{})
			exec.observe = func() {
				if tr.Stage() != StageWaitingForUser {
					ok = false
				}
			}
			return tr.SetupEnv(context.Background()).Stage == StageDone && ok
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
