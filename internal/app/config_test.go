package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/assets"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "framegrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
workers: 2
assets:
  root: /srv/assets
  poses: /data/poses
`), 0o644))
	t.Setenv("FRAMEGRID_LOG_FORMAT", "json")
	t.Setenv("FRAMEGRID_ASSETS_PROMPTS", "text/prompts")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	want := &Config{
		LogLevel:  "debug",
		LogFormat: "json",
		Workers:   2,
		Assets: AssetsConfig{
			Root:    "/srv/assets",
			Poses:   "/data/poses",
			Prompts: "text/prompts",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	lib := cfg.Assets.Library()
	require.Equal(t, "/data/poses", lib.Dir(assets.Poses))
	require.Equal(t, filepath.Join("/srv/assets", "text/prompts"), lib.Dir(assets.Prompts))
	require.Equal(t, filepath.Join("/srv/assets", "borders"), lib.Dir(assets.Borders))
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\nworkers: 0\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log_level")
	require.Contains(t, err.Error(), "invalid workers")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
