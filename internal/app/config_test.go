package app

import (
	"testing"

	"jfrogext/internal/config"
	"jfrogext/internal/tui/model"
	"jfrogext/pkg/logging"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(true, false, "/tmp/jfrogext")

	assert.True(t, cfg.NoTUI)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "/tmp/jfrogext", cfg.ConfigPath)
	assert.Nil(t, cfg.AppConfig, "AppConfig should be nil before loading")
	assert.Equal(t, model.PageSettings, cfg.startPage())

	cfg.SetupFirst = true
	assert.Equal(t, model.PageSetup, cfg.startPage())
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name   string
		debug  bool
		appCfg *config.AppConfig
		want   logging.LogLevel
	}{
		{name: "default", want: logging.LevelInfo},
		{name: "debug flag", debug: true, want: logging.LevelDebug},
		{name: "configured level", appCfg: &config.AppConfig{Log: config.LogConfig{Level: "warn"}}, want: logging.LevelWarn},
		{name: "flag wins", debug: true, appCfg: &config.AppConfig{Log: config.LogConfig{Level: "error"}}, want: logging.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(&Config{Debug: tt.debug}, tt.appCfg))
		})
	}
}
