package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
	"github.com/FrenchMajesty/dynamic-connectivity/internal/app"
	"github.com/FrenchMajesty/dynamic-connectivity/pkg/snapshot"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := app.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, string(unionfind.StrategyQuickUnion), cfg.Strategy)
	assert.Equal(t, string(snapshot.BackendFile), cfg.Backend)
	assert.Equal(t, "./snapshots", cfg.Store)
	assert.Equal(t, 20, cfg.Grid)
	assert.Equal(t, 30, cfg.Trials)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Verbose)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynconn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: weighted\ntrials: 50\nbackend: bolt\n"), 0644))
	t.Setenv("DYNCONN_TRIALS", "75")

	cfg, err := app.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "weighted", cfg.Strategy)
	assert.Equal(t, "bolt", cfg.Backend)
	assert.Equal(t, 75, cfg.Trials)
	assert.Equal(t, "./snapshots.db", cfg.Store)
}

func TestLoad_StorePerBackend(t *testing.T) {
	for backend, want := range map[string]string{
		"file":   "./snapshots",
		"bolt":   "./snapshots.db",
		"badger": "./snapshots.badger",
	} {
		t.Setenv("DYNCONN_BACKEND", backend)
		cfg, err := app.Load(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Store, backend)
	}

	t.Setenv("DYNCONN_STORE", "/var/lib/dynconn")
	cfg, err := app.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/dynconn", cfg.Store)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DYNCONN_STRATEGY", "fastest")
	_, err := app.Load(viper.New(), "")
	assert.ErrorIs(t, err, unionfind.ErrUnknownStrategy)

	t.Setenv("DYNCONN_STRATEGY", "")
	t.Setenv("DYNCONN_BACKEND", "sqlite")
	_, err = app.Load(viper.New(), "")
	assert.ErrorIs(t, err, snapshot.ErrUnknownBackend)

	_, err = app.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DYNCONN_TEST_LOADENV=from-file\n"), 0644))
	t.Setenv("DYNCONN_TEST_LOADENV", "")
	require.NoError(t, os.Unsetenv("DYNCONN_TEST_LOADENV"))

	require.NoError(t, app.LoadEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("DYNCONN_TEST_LOADENV"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	app.NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	app.NewLogger(&buf, true).Debug("shown", "n", 3)
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "n=3")
}
