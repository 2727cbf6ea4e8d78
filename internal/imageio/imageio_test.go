package imageio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/imageio"
	"github.com/vk/framegridgo/internal/tensor"
)

func gradient(h, w int) *tensor.Image {
	im := tensor.NewImage(h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, 0, float32(x)/float32(w-1))
			im.Set(x, y, 1, float32(y)/float32(h-1))
			im.Set(x, y, 2, 0.5)
		}
	}
	return im
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	src := gradient(6, 8)
	path := filepath.Join(dir, "nested", "frame.png")

	// Act
	require.NoError(t, imageio.Save(path, src))
	got, err := imageio.Load(path, false)

	// Assert
	require.NoError(t, err)
	require.True(t, got.SameShape(src))
	for i := range src.Pix {
		require.InDelta(t, src.Pix[i], got.Pix[i], 1.0/255)
	}
}

func TestLoadBatch_ResizesToFirstFrame(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	require.NoError(t, imageio.Save(a, gradient(6, 8)))
	require.NoError(t, imageio.Save(b, gradient(12, 16)))

	// Act
	batch, err := imageio.LoadBatch([]string{a, b})

	// Assert
	require.NoError(t, err)
	n, h, w, c := batch.Shape()
	require.Equal(t, []int{2, 6, 8, 3}, []int{n, h, w, c})
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := imageio.Load(filepath.Join(t.TempDir(), "missing.png"), false)
	require.Error(t, err)

	_, err = imageio.LoadBatch(nil)
	require.Error(t, err)
}

func TestResize(t *testing.T) {
	t.Parallel()

	out := imageio.Resize(tensor.Filled(4, 4, 1, 0.5), 8, 2)
	require.Equal(t, 2, out.Height)
	require.Equal(t, 8, out.Width)
	require.Equal(t, 1, out.Channels)
	for _, v := range out.Pix {
		require.InDelta(t, 0.5, v, 1.0/255)
	}
}

func TestSaveBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := imageio.SaveBatch(dir, "out", tensor.Zeros(3, 2, 2, 3))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "out_00000.png"),
		filepath.Join(dir, "out_00001.png"),
		filepath.Join(dir, "out_00002.png"),
	}, paths)
}
