package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/assets"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func TestLibrary_Dir(t *testing.T) {
	t.Parallel()

	lib := assets.NewLibrary("/srv/assets", map[assets.Kind]string{
		assets.Poses:    "/data/poses",
		assets.Ambience: "sounds",
		assets.Prompts:  "",
	})

	require.Equal(t, filepath.Join("/srv/assets", "borders"), lib.Dir(assets.Borders))
	require.Equal(t, "/data/poses", lib.Dir(assets.Poses))
	require.Equal(t, filepath.Join("/srv/assets", "sounds"), lib.Dir(assets.Ambience))
	require.Equal(t, filepath.Join("/srv/assets", "prompts"), lib.Dir(assets.Prompts))
}

func TestList_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := assets.List(filepath.Join(root, "nope"), "*")
	require.ErrorIs(t, err, assets.ErrDirectoryNotFound)

	writeFiles(t, filepath.Join(root, "empty"))
	_, err = assets.List(filepath.Join(root, "empty"), "*.png")
	require.ErrorIs(t, err, assets.ErrNoMatches)
	require.Contains(t, err.Error(), `"*.png"`)

	writeFiles(t, root, "file.txt")
	_, err = assets.List(filepath.Join(root, "file.txt"), "")
	require.ErrorIs(t, err, assets.ErrDirectoryNotFound)
}

func TestListing_Select(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "c.txt", "a.txt", "b.txt")

	listing, err := assets.List(dir, "*.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, listing.Names)

	i, err := listing.Select(assets.ByIndex, 1, 0)
	require.NoError(t, err)
	require.Equal(t, "b.txt", listing.Names[i])
	require.Equal(t, filepath.Join(dir, "b.txt"), listing.Path(i))

	_, err = listing.Select(assets.ByIndex, 3, 0)
	require.ErrorIs(t, err, assets.ErrIndexOutOfRange)

	i, err = listing.Select(assets.Wrap, -1, 0)
	require.NoError(t, err)
	require.Equal(t, 2, i)

	i, err = listing.Select(assets.Wrap, 7, 0)
	require.NoError(t, err)
	require.Equal(t, 1, i)
}

func TestSelect_RandomIsDeterministic(t *testing.T) {
	t.Parallel()

	seen := map[int]bool{}
	for seed := int64(0); seed < 50; seed++ {
		a, err := assets.Select(10, assets.Random, 0, seed)
		require.NoError(t, err)
		b, err := assets.Select(10, assets.Random, 0, seed)
		require.NoError(t, err)
		require.Equal(t, a, b)
		seen[a] = true
	}
	require.Greater(t, len(seen), 1, "different seeds should reach different entries")
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := assets.ParseMode("wrap")
	require.NoError(t, err)
	require.Equal(t, assets.Wrap, m)

	_, err = assets.ParseMode("round_robin")
	require.Error(t, err)
}
