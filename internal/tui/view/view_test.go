package view

import (
	"errors"
	"strings"
	"testing"

	"jfrogext/internal/setup"

	"github.com/stretchr/testify/assert"
)

func TestStageDescription(t *testing.T) {
	tests := []struct {
		name   string
		status setup.Status
		want   string
	}{
		{name: "waiting", status: setup.Status{Stage: setup.StageWaitingForUser}, want: "registration in your browser"},
		{name: "preparing", status: setup.Status{Stage: setup.StagePreparingEnv}, want: "being built"},
		{name: "done", status: setup.Status{Stage: setup.StageDone, Exited: true}, want: "is ready"},
		{name: "done with exit code", status: setup.Status{Stage: setup.StageDone, Exited: true, ExitCode: 2}, want: "exit code 2"},
		{name: "error", status: setup.Status{Stage: setup.StageError, Err: errors.New("script not found")}, want: "Setup failed: script not found"},
		{name: "error without cause", status: setup.Status{Stage: setup.StageError}, want: "Setup failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, StageDescription(tt.status), tt.want)
		})
	}
}

func TestPrepareLogContent(t *testing.T) {
	lines := []string{
		"10:00:00.000 [INFO] [Setup] started",
		"10:00:01.000 [ERROR] [Setup] failed",
		"10:00:02.000 [DEBUG] [Store] loaded",
	}
	out := PrepareLogContent(lines)

	got := strings.Split(out, "\n")
	assert.Len(t, got, 3)
	assert.Contains(t, got[1], "[ERROR] [Setup] failed")
	assert.Empty(t, PrepareLogContent(nil))
}
