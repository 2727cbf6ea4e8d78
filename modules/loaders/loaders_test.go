package loaders_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/app"
	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/audioio"
	"github.com/vk/framegridgo/internal/imageio"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/vk/framegridgo/internal/testutil"
	"github.com/vk/framegridgo/modules/loaders"
	"github.com/zclconf/go-cty/cty"
)

func writeText(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

// writeFrames writes n solid frames named f_000.png... valued FrameTag(i, n).
func writeFrames(t *testing.T, dir string, n, height, width int) {
	t.Helper()
	for i := 0; i < n; i++ {
		im := tensor.Filled(height, width, 3, testutil.FrameTag(i, n))
		require.NoError(t, imageio.Save(filepath.Join(dir, "f_"+string(rune('a'+i))+".png"), im))
	}
}

func withRoot(root string) func(*app.Config) {
	return func(cfg *app.Config) { cfg.Assets.Root = root }
}

func TestLoadTextFromDir(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	writeText(t, dir, map[string]string{"a.txt": "alpha\n", "b.txt": "\ufeffbeta\r\n", "c.md": "skip"})
	h := testutil.NewApp(t, nil)

	testCases := []struct {
		name     string
		mode     string
		index    int64
		wantText string
		wantFile string
	}{
		{name: "index", mode: "index", index: 1, wantText: "beta", wantFile: "b.txt"},
		{name: "wrap", mode: "wrap", index: 2, wantText: "alpha", wantFile: "a.txt"},
		{name: "wrap negative", mode: "wrap", index: -1, wantText: "beta", wantFile: "b.txt"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := h.Invoke(t, "LoadTextFromDir", map[string]cty.Value{
				"directory": cty.StringVal(dir),
				"mode":      cty.StringVal(tc.mode),
				"index":     cty.NumberIntVal(tc.index),
			})

			// Assert
			require.Equal(t, tc.wantText, res.Get("text").AsString())
			require.Equal(t, tc.wantFile, res.Get("filename").AsString())
		})
	}
}

func TestLoadTextFromDir_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeText(t, dir, map[string]string{"a.txt": "alpha"})

	testCases := []struct {
		name  string
		input loaders.TextInput
		want  error
	}{
		{name: "missing directory", input: loaders.TextInput{Directory: filepath.Join(dir, "nope"), Pattern: "*.txt", Mode: "wrap"}, want: assets.ErrDirectoryNotFound},
		{name: "no matches", input: loaders.TextInput{Directory: dir, Pattern: "*.json", Mode: "wrap"}, want: assets.ErrNoMatches},
		{name: "index out of range", input: loaders.TextInput{Directory: dir, Pattern: "*.txt", Mode: "index", Index: 3}, want: assets.ErrIndexOutOfRange},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := loaders.OnRunLoadTextFromDir(context.Background(), &loaders.Deps{}, &tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadImagesFromDir(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	writeFrames(t, dir, 3, 4, 4)
	h := testutil.NewApp(t, nil)

	// Act
	res := h.Invoke(t, "LoadImagesFromDir", map[string]cty.Value{
		"directory":  cty.StringVal(dir),
		"index":      cty.NumberIntVal(2),
		"batch_size": cty.NumberIntVal(2),
	})

	// Assert
	images := testutil.Image(t, res, "images")
	require.Equal(t, 2, images.Len())
	require.InDelta(t, testutil.FrameTag(2, 3), images.Frames[0].Pix[0], 1.0/255)
	require.InDelta(t, testutil.FrameTag(0, 3), images.Frames[1].Pix[0], 1.0/255, "selection wraps around")
	require.True(t, res.Get("filenames").RawEquals(cty.ListVal([]cty.Value{cty.StringVal("f_c.png"), cty.StringVal("f_a.png")})))
	require.True(t, res.Get("count").RawEquals(cty.NumberIntVal(2)))
}

func TestLoadImagesFromDir_All(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFrames(t, dir, 3, 4, 4)
	require.NoError(t, imageio.Save(filepath.Join(dir, "f_z.png"), tensor.Filled(8, 8, 3, 1)))

	out, err := loaders.OnRunLoadImagesFromDir(context.Background(), &loaders.Deps{}, &loaders.ImagesInput{
		Directory: dir, Pattern: imageio.Pattern, Mode: "index", BatchSize: 0,
	})
	require.NoError(t, err)
	require.Equal(t, 4, out.Count)
	require.Equal(t, []string{"f_a.png", "f_b.png", "f_c.png", "f_z.png"}, out.Filenames)
	require.Equal(t, 4, out.Images.Frames[3].Width, "frames are resized to the first frame")
}

func TestLoadFrameSequence(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	writeFrames(t, dir, 6, 2, 2)

	// Act
	out, err := loaders.OnRunLoadFrameSequence(context.Background(), &loaders.Deps{}, &loaders.SequenceInput{
		Directory: dir, Pattern: "*.png", StartFrame: 1, FrameCount: 2, Stride: 2,
	})
	require.NoError(t, err)

	// Assert
	require.Equal(t, 2, out.FrameCount)
	require.InDelta(t, testutil.FrameTag(1, 6), out.Images.Frames[0].Pix[0], 1.0/255)
	require.InDelta(t, testutil.FrameTag(3, 6), out.Images.Frames[1].Pix[0], 1.0/255)

	_, err = loaders.OnRunLoadFrameSequence(context.Background(), &loaders.Deps{}, &loaders.SequenceInput{
		Directory: dir, Pattern: "*.png", StartFrame: 6, Stride: 1,
	})
	require.ErrorIs(t, err, assets.ErrIndexOutOfRange)
}

func TestPickBorder(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	border := tensor.NewImage(4, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 || y == 0 || x == 3 || y == 3 {
				border.Set(x, y, 0, 1)
				border.Set(x, y, 3, 1)
			}
		}
	}
	require.NoError(t, imageio.Save(filepath.Join(root, "borders", "frame.png"), border))
	h := testutil.NewApp(t, withRoot(root))
	src := testutil.Constant(2, 4, 4, 3, 0.5)

	// Act
	res := h.Invoke(t, "PickBorder", map[string]cty.Value{"image": tensor.ImageVal(src)})

	// Assert
	out := testutil.Image(t, res, "image")
	require.Equal(t, "frame.png", res.Get("filename").AsString())
	require.Equal(t, []float32{1, 0, 0}, out.Frames[1].Pix[0:3], "opaque border pixels replace the frame")
	require.InDelta(t, 0.5, out.Frames[1].At(1, 1, 0), 1e-6, "transparent border pixels keep the frame")
}

func TestPickBorder_MissingAssets(t *testing.T) {
	t.Parallel()

	h := testutil.NewApp(t, nil)
	_, err := h.App.Invoke(context.Background(), "PickBorder", map[string]cty.Value{
		"image": tensor.ImageVal(testutil.Constant(1, 4, 4, 3, 0.5)),
	})
	require.ErrorIs(t, err, assets.ErrDirectoryNotFound)
	require.ErrorContains(t, err, "borders assets")
}

func TestPickPose(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		require.NoError(t, imageio.Save(filepath.Join(root, "poses", name), tensor.Filled(10, 10, 3, 0.2)))
	}
	h := testutil.NewApp(t, withRoot(root))
	args := map[string]cty.Value{
		"width":  cty.NumberIntVal(32),
		"height": cty.NumberIntVal(16),
		"seed":   cty.NumberIntVal(99),
	}

	// Act
	first := h.Invoke(t, "PickPose", args)
	second := h.Invoke(t, "PickPose", args)

	// Assert
	pose := testutil.Image(t, first, "image")
	_, ph, pw, pc := pose.Shape()
	require.Equal(t, []int{16, 32, 3}, []int{ph, pw, pc})
	require.Equal(t, first.Get("filename").AsString(), second.Get("filename").AsString(), "random selection is seeded")
}

func TestLoadAmbience(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	wave := make([]float32, 8000)
	for i := range wave {
		wave[i] = 0.25
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sounds"), 0o755))
	require.NoError(t, audioio.Save(filepath.Join(root, "sounds", "rain.wav"),
		&tensor.Audio{Waveform: [][]float32{wave}, SampleRate: 8000}))
	h := testutil.NewApp(t, func(cfg *app.Config) {
		cfg.Assets.Root = root
		cfg.Assets.Ambience = "sounds"
	})

	// Act
	res := h.Invoke(t, "LoadAmbience", map[string]cty.Value{
		"gain":        cty.NumberFloatVal(2),
		"max_seconds": cty.NumberFloatVal(0.5),
	})

	// Assert
	audio, err := res.Audio("audio")
	require.NoError(t, err)
	require.Equal(t, "rain.wav", res.Get("filename").AsString())
	require.Equal(t, 4000, audio.Samples())
	require.InDelta(t, 0.5, audio.Waveform[0][100], 1e-3)
}

func TestLoadPromptFromAssets(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	writeText(t, filepath.Join(root, "prompts"), map[string]string{"one.txt": "a castle at dusk\n"})
	h := testutil.NewApp(t, withRoot(root))

	// Act
	res := h.Invoke(t, "LoadPromptFromAssets", nil)

	// Assert
	require.Equal(t, "a castle at dusk", res.Get("text").AsString())
	require.Equal(t, "one.txt", res.Get("filename").AsString())
}
