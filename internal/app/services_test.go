package app

import (
	"path/filepath"
	"testing"

	"jfrogext/internal/config"
	"jfrogext/internal/setup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	appCfg := config.GetDefaultConfig()
	appCfg.Storage.Path = filepath.Join(t.TempDir(), "extension.yaml")

	services, err := InitializeServices(&Config{AppConfig: &appCfg})
	require.NoError(t, err)

	assert.Equal(t, appCfg.Storage.Path, services.Store.Path())
	assert.NotNil(t, services.Verifier)
	assert.NotNil(t, services.Versions)
	assert.Equal(t, setup.StageIdle, services.Tracker.Stage())

	deps := services.SettingsDeps()
	assert.Same(t, services.Store, deps.Store)
	assert.Nil(t, deps.Navigator)
	assert.Nil(t, deps.Notifier)
}

func TestInitializeServices_RequiresLoadedConfig(t *testing.T) {
	_, err := InitializeServices(&Config{})
	assert.Error(t, err)

	_, err = InitializeServices(nil)
	assert.Error(t, err)
}
