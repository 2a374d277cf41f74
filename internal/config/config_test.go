package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Drill.Threshold)
	assert.Nil(t, cfg.Drill.IdleTimeout)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigDecodesDrillAndLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[drill]
threshold = 10
idle-timeout = "90s"
punish = false
hesitation = "2s"
punish-cap = 1024
set = "home-row"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Drill.Threshold)
	assert.Equal(t, 10, *cfg.Drill.Threshold)
	require.NotNil(t, cfg.Drill.IdleTimeout)
	assert.Equal(t, 90*time.Second, cfg.Drill.IdleTimeout.Duration)
	require.NotNil(t, cfg.Drill.Punish)
	assert.False(t, *cfg.Drill.Punish)
	require.NotNil(t, cfg.Drill.Hesitation)
	assert.Equal(t, 2*time.Second, cfg.Drill.Hesitation.Duration)
	require.NotNil(t, cfg.Drill.PunishCap)
	assert.Equal(t, 1024, *cfg.Drill.PunishCap)
	require.NotNil(t, cfg.Drill.Set)
	assert.Equal(t, "home-row", *cfg.Drill.Set)
	assert.Nil(t, cfg.Drill.Corpus)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[drill]\nidle-timeout = \"soon\"\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")

	assert.Equal(t, filepath.Join("/cfg", "tuidrill", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "tuidrill", "corpus.txt"), DefaultCorpusPath())
	assert.Equal(t, filepath.Join("/data", "tuidrill", "library.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "tuidrill", "tuidrill.log"), DefaultLogPath())
}
