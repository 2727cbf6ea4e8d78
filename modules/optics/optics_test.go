package optics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/vk/framegridgo/internal/testutil"
	"github.com/vk/framegridgo/modules/optics"
	"github.com/zclconf/go-cty/cty"
)

func TestLensFlare_BrightensAroundLight(t *testing.T) {
	t.Parallel()

	// Arrange
	h := testutil.NewApp(t, nil)
	src := testutil.Constant(2, 32, 32, 3, 0.2)

	// Act
	res := h.Invoke(t, "LensFlare", map[string]cty.Value{
		"image": tensor.ImageVal(src),
		"x":     cty.NumberFloatVal(0.5),
		"y":     cty.NumberFloatVal(0.5),
	})

	// Assert
	out := testutil.Image(t, res, "image")
	require.Equal(t, 2, out.Len())
	testutil.RequireInRange(t, out)
	require.Greater(t, out.Frames[0].At(16, 16, 0), float32(0.3))
	for i, v := range out.Frames[1].Pix {
		require.GreaterOrEqual(t, v, float32(0.2)-1e-6, "screen never darkens, sample %d", i)
	}
	require.Equal(t, float32(0.2), src.Frames[0].Pix[0], "input is not modified")
}

func TestLensFlare_RejectsTwoChannels(t *testing.T) {
	t.Parallel()

	_, err := optics.OnRunLensFlare(context.Background(), &optics.Deps{}, &optics.FlareInput{
		Image: testutil.Constant(1, 4, 4, 2, 0.5), Intensity: 1, Color: "#fff",
	})
	var shapeErr *tensor.ShapeError
	require.True(t, errors.As(err, &shapeErr))
}

func TestVignette(t *testing.T) {
	t.Parallel()

	// Arrange
	h := testutil.NewApp(t, nil)
	src := testutil.Constant(3, 9, 9, 3, 0.8)

	// Act
	res := h.Invoke(t, "Vignette", map[string]cty.Value{
		"image":    tensor.ImageVal(src),
		"strength": cty.NumberFloatVal(1),
		"radius":   cty.NumberFloatVal(0.9),
		"feather":  cty.NumberFloatVal(0.6),
	})

	// Assert
	out := testutil.Image(t, res, "image")
	masks, err := res.Mask("mask")
	require.NoError(t, err)
	require.Equal(t, 3, masks.Len())

	require.Equal(t, float32(0.8), out.Frames[0].At(4, 4, 0), "center is untouched")
	require.Equal(t, float32(0), masks.Frames[0].At(4, 4))
	require.Less(t, out.Frames[0].At(0, 0, 0), float32(0.5), "corners are darkened")
	require.Greater(t, masks.Frames[2].At(0, 0), float32(0.3))
	testutil.RequireInRange(t, out)
}

func TestChromaticAberration(t *testing.T) {
	t.Parallel()

	// Arrange
	src := testutil.Gradient(1, 16, 16, 3)

	// Act
	shifted, err := optics.OnRunChromaticAberration(context.Background(), &optics.Deps{}, &optics.AberrationInput{
		Image: src, Shift: 3, Falloff: 1,
	})
	require.NoError(t, err)
	none, err := optics.OnRunChromaticAberration(context.Background(), &optics.Deps{}, &optics.AberrationInput{
		Image: src, Shift: 0, Falloff: 1,
	})
	require.NoError(t, err)

	// Assert
	testutil.RequireEqualBatches(t, src, none.Image)
	f, g := src.Frames[0], shifted.Image.Frames[0]
	changed := false
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			require.Equal(t, f.At(x, y, 1), g.At(x, y, 1), "green is kept")
			if f.At(x, y, 0) != g.At(x, y, 0) {
				changed = true
			}
		}
	}
	require.True(t, changed, "red is displaced")
}

func TestChromaticAberration_RequiresColor(t *testing.T) {
	t.Parallel()

	_, err := optics.OnRunChromaticAberration(context.Background(), &optics.Deps{}, &optics.AberrationInput{
		Image: testutil.Constant(1, 4, 4, 1, 0.5), Shift: 2, Falloff: 1,
	})
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}
