package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/cli"
	"github.com/zclconf/go-cty/cty"
)

func TestParse_Help(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}

	// Act
	cfg, req, exit, err := cli.Parse([]string{"-h"}, out)

	// Assert
	require.NoError(t, err)
	require.True(t, exit)
	require.Nil(t, cfg)
	require.Nil(t, req)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_NoNodePrintsUsage(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}

	// Act
	_, _, exit, err := cli.Parse(nil, out)

	// Assert
	require.NoError(t, err)
	require.True(t, exit)
	require.Contains(t, out.String(), "-node")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}

	// Act
	_, _, _, err := cli.Parse([]string{"-bogus"}, out)

	// Assert
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "flag provided but not defined: -bogus")
}

func TestParse_RunRequest(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}
	args := []string{
		"-node", "ImageBatchReverse",
		"-image", "image=frames",
		"-mask", "mask=m.png",
		"-arg", "count=3",
		"-arg", "label=hello",
		"-arg", `quoted="a b"`,
		"-out", "result",
		"-workers", "2",
		"-log-level", "DEBUG",
	}

	// Act
	cfg, req, exit, err := cli.Parse(args, out)

	// Assert
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "ImageBatchReverse", req.Node)
	require.Equal(t, "result", req.OutDir)
	require.Empty(t, cmp.Diff(map[string]string{"image": "frames"}, req.Images))
	require.Equal(t, "m.png", req.Masks["mask"])
	require.True(t, req.Args["count"].RawEquals(cty.NumberIntVal(3)))
	require.True(t, req.Args["label"].RawEquals(cty.StringVal("hello")))
	require.True(t, req.Args["quoted"].RawEquals(cty.StringVal("a b")))
}

func TestParse_BadPair(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}

	// Act
	_, _, _, err := cli.Parse([]string{"-node", "X", "-arg", "novalue"}, out)

	// Assert
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected name=value")
}

func TestParse_InvalidWorkers(t *testing.T) {
	t.Parallel()

	// Arrange
	out := &bytes.Buffer{}

	// Act
	_, _, _, err := cli.Parse([]string{"-list", "-workers", "0"}, out)

	// Assert
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, exitErr.Message, "invalid workers")
}

func TestParse_ConfigFileWithOverride(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "framegrid.yaml")
	yaml := "log_format: json\nworkers: 8\nassets:\n  root: /srv/assets\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	out := &bytes.Buffer{}

	// Act
	cfg, req, _, err := cli.Parse([]string{"-list", "-config", path, "-workers", "3"}, out)

	// Assert
	require.NoError(t, err)
	require.True(t, req.List)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, "/srv/assets", cfg.Assets.Root)
}
