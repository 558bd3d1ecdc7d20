package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("chatty"))
}

func TestInitForCLI_WritesSubsystemAndError(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Setup", errors.New("boom"), "command failed with %d", 3)

	out := buf.String()
	assert.Contains(t, out, "command failed with 3")
	assert.Contains(t, out, "subsystem=Setup")
	assert.Contains(t, out, "error=boom")
}

func TestInitForCLI_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Info("Settings", "not shown")
	Warn("Settings", "shown")

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitForTUI_SendsEntriesToChannel(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer CloseTUIChannel()

	Debug("TUI", "dropped by filter")
	Info("TUI", "hello %s", "world")

	require.Len(t, ch, 1)
	entry := <-ch
	assert.Equal(t, LevelInfo, entry.Level)
	assert.Equal(t, "TUI", entry.Subsystem)
	assert.Equal(t, "hello world", entry.Message)
	assert.Contains(t, entry.String(), "[INFO] TUI: hello world")
}
