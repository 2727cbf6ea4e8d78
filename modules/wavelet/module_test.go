package wavelet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/vk/framegridgo/internal/testutil"
	"github.com/vk/framegridgo/modules/wavelet"
	"github.com/zclconf/go-cty/cty"
)

func TestDecompose_ConstantGray(t *testing.T) {
	t.Parallel()

	// Arrange
	h := testutil.NewApp(t, nil)
	src := testutil.Constant(1, 64, 64, 3, 0.5)

	// Act
	res := h.Invoke(t, "WaveletDecompose", map[string]cty.Value{
		"image":  tensor.ImageVal(src),
		"scales": cty.NumberIntVal(3),
	})

	// Assert
	require.Equal(t, []string{"residual", "detail_1", "detail_2", "detail_3", "detail_4",
		"detail_5", "detail_6", "detail_7", "detail_8", "original"}, res.Names())

	for _, v := range testutil.Image(t, res, "residual").Frames[0].Pix {
		require.InDelta(t, 0.5, v, 1e-6)
	}
	for _, name := range []string{"detail_1", "detail_2", "detail_3"} {
		for _, v := range testutil.Image(t, res, name).Frames[0].Pix {
			require.InDelta(t, 0.5, v, 1e-6, name)
		}
	}
	for _, name := range []string{"detail_4", "detail_8"} {
		for _, v := range testutil.Image(t, res, name).Frames[0].Pix {
			require.InDelta(t, 0.5, v, 1e-6, "%s is an unused slot", name)
		}
	}
	testutil.RequireEqualBatches(t, src, testutil.Image(t, res, "original"))
	require.NotSame(t, src.Frames[0], testutil.Image(t, res, "original").Frames[0])

	composed := h.Invoke(t, "WaveletCompose", map[string]cty.Value{
		"residual": res.Get("residual"),
		"detail_1": res.Get("detail_1"),
		"detail_2": res.Get("detail_2"),
		"detail_3": res.Get("detail_3"),
	})
	for _, v := range testutil.Image(t, composed, "image").Frames[0].Pix {
		require.InDelta(t, 0.5, v, 1e-6)
	}
}

func TestDecomposeCompose_RoundTrip(t *testing.T) {
	t.Parallel()

	h := testutil.NewApp(t, nil)
	src := testutil.Gradient(3, 24, 32, 3)

	for _, enc := range []string{"grain", "linear_light"} {
		dec := h.Invoke(t, "WaveletDecompose", map[string]cty.Value{
			"image":    tensor.ImageVal(src),
			"scales":   cty.NumberIntVal(4),
			"encoding": cty.StringVal(enc),
		})

		args := map[string]cty.Value{"encoding": cty.StringVal(enc)}
		for _, name := range dec.Names() {
			if name != "original" {
				args[name] = dec.Get(name)
			}
		}
		out := testutil.Image(t, h.Invoke(t, "WaveletCompose", args), "image")

		require.Equal(t, src.Len(), out.Len())
		for i := range src.Frames {
			for p, v := range src.Frames[i].Pix {
				require.InDelta(t, v, out.Frames[i].Pix[p], 1e-4, "%s frame %d", enc, i)
			}
		}
	}
}

func TestDecompose_RejectsTooManyScales(t *testing.T) {
	t.Parallel()

	h := testutil.NewApp(t, nil)
	_, err := h.App.Invoke(context.Background(), "WaveletDecompose", map[string]cty.Value{
		"image":  tensor.ImageVal(testutil.Constant(1, 8, 8, 3, 0.5)),
		"scales": cty.NumberIntVal(9),
	})
	require.Error(t, err)

	// The handler enforces the arity limit on its own as well.
	_, err = wavelet.OnRunWaveletDecompose(context.Background(), &wavelet.Deps{}, &wavelet.DecomposeInput{
		Image:  testutil.Constant(1, 8, 8, 3, 0.5),
		Scales: 9,
	})
	require.ErrorContains(t, err, "exceeds")
}

func TestCompose_StrengthAndBroadcast(t *testing.T) {
	t.Parallel()

	// Arrange
	residual := testutil.Constant(2, 4, 4, 3, 0.4)
	detail := testutil.Constant(1, 4, 4, 3, 0.6)

	// Act
	out, err := wavelet.OnRunWaveletCompose(context.Background(), &wavelet.Deps{}, &wavelet.ComposeInput{
		Residual:       residual,
		Detail2:        detail,
		Encoding:       "grain",
		DetailStrength: 2,
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 2, out.Image.Len())
	for _, f := range out.Image.Frames {
		for _, v := range f.Pix {
			require.InDelta(t, 0.6, v, 1e-6)
		}
	}
	require.Equal(t, float32(0.4), residual.Frames[0].Pix[0], "residual is untouched")
}

func TestCompose_ShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := wavelet.OnRunWaveletCompose(context.Background(), &wavelet.Deps{}, &wavelet.ComposeInput{
		Residual: testutil.Constant(1, 4, 4, 3, 0.5),
		Detail1:  testutil.Constant(1, 4, 5, 3, 0.5),
		Encoding: "grain",
	})
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.ErrorContains(t, err, "detail_1")

	_, err = wavelet.OnRunWaveletCompose(context.Background(), &wavelet.Deps{}, &wavelet.ComposeInput{
		Residual: testutil.Constant(3, 4, 4, 3, 0.5),
		Detail1:  testutil.Constant(2, 4, 4, 3, 0.5),
		Encoding: "grain",
	})
	require.ErrorAs(t, err, &shapeErr)
}

func TestDecomposeCompose_AllSlotsWired(t *testing.T) {
	t.Parallel()

	h := testutil.NewApp(t, nil)
	src := testutil.Constant(1, 16, 16, 3, 0.5)

	for _, enc := range []string{"grain", "linear_light"} {
		t.Run(enc, func(t *testing.T) {
			// Arrange
			dec := h.Invoke(t, "WaveletDecompose", map[string]cty.Value{
				"image":    tensor.ImageVal(src),
				"scales":   cty.NumberIntVal(3),
				"encoding": cty.StringVal(enc),
			})
			args := map[string]cty.Value{"encoding": cty.StringVal(enc)}
			for _, name := range dec.Names() {
				if name != "original" {
					args[name] = dec.Get(name)
				}
			}

			// Act
			out := testutil.Image(t, h.Invoke(t, "WaveletCompose", args), "image")

			// Assert
			for _, v := range out.Frames[0].Pix {
				require.InDelta(t, 0.5, v, 1e-6)
			}
		})
	}
}
