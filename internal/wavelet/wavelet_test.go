package wavelet_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/vk/framegridgo/internal/wavelet"
)

// smoothImage builds a gradient with gentle variation so that per-scale
// differences stay well inside the encodable range.
func smoothImage(h, w int) *tensor.Image {
	im := tensor.NewImage(h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := float64(x)/float64(w), float64(y)/float64(h)
			im.Set(x, y, 0, float32(0.5+0.3*math.Sin(fx*math.Pi)))
			im.Set(x, y, 1, float32(0.2+0.6*fy))
			im.Set(x, y, 2, float32(0.5+0.2*math.Cos(fx*fy*math.Pi)))
		}
	}
	return im
}

func TestDecompose_ConstantGray(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := tensor.Filled(64, 64, 3, 0.5)

	// --- Act ---
	stack, err := wavelet.Decompose(src, 3, wavelet.Grain)
	require.NoError(t, err)

	// --- Assert ---
	require.Len(t, stack.Details, 3)
	for _, v := range stack.Residual.Pix {
		require.InDelta(t, 0.5, v, 1e-5)
	}
	for i, d := range stack.Details {
		for _, v := range d.Pix {
			require.InDelta(t, 0.5, v, 1e-5, "detail %d", i+1)
		}
	}

	out, err := wavelet.Compose(stack.Residual, stack.Details, wavelet.Grain, 1)
	require.NoError(t, err)
	for _, v := range out.Pix {
		require.InDelta(t, 0.5, v, 1e-5)
	}
}

func TestRoundTrip_WithinTolerance(t *testing.T) {
	t.Parallel()

	for _, enc := range []wavelet.Encoding{wavelet.Grain, wavelet.LinearLight} {
		for scales := 1; scales <= wavelet.MaxScales; scales++ {
			src := smoothImage(24, 32)

			stack, err := wavelet.Decompose(src, scales, enc)
			require.NoError(t, err)
			out, err := wavelet.Compose(stack.Residual, stack.Details, enc, 1)
			require.NoError(t, err)

			for p := range src.Pix {
				require.InDelta(t, src.Pix[p], out.Pix[p], 1e-4, "encoding %s scales %d", enc, scales)
			}
		}
	}
}

func TestRoundTrip_ClampIsLossyForHardEdges(t *testing.T) {
	t.Parallel()

	// For a single white pixel on black the second-scale difference at the
	// peak exceeds 0.5, which the grain encoding cannot store.
	src := tensor.NewImage(9, 9, 1)
	src.Set(4, 4, 0, 1)

	stack, err := wavelet.Decompose(src, 2, wavelet.Grain)
	require.NoError(t, err)
	require.Equal(t, float32(1), stack.Details[1].At(4, 4, 0), "encoded detail saturates")

	out, err := wavelet.Compose(stack.Residual, stack.Details, wavelet.Grain, 1)
	require.NoError(t, err)
	require.Less(t, out.At(4, 4, 0), float32(1))

	// The wider linear-light encoding keeps this difference.
	stack, err = wavelet.Decompose(src, 2, wavelet.LinearLight)
	require.NoError(t, err)
	out, err = wavelet.Compose(stack.Residual, stack.Details, wavelet.LinearLight, 1)
	require.NoError(t, err)
	require.InDelta(t, 1, out.At(4, 4, 0), 1e-4)
}

func TestDecompose_ScaleBounds(t *testing.T) {
	t.Parallel()

	src := tensor.Filled(4, 4, 3, 0.2)

	_, err := wavelet.Decompose(src, 0, wavelet.Grain)
	require.ErrorContains(t, err, "at least 1")

	_, err = wavelet.Decompose(src, wavelet.MaxScales+1, wavelet.Grain)
	require.ErrorContains(t, err, "exceeds")
}

func TestDecompose_DoesNotModifySource(t *testing.T) {
	t.Parallel()

	src := smoothImage(8, 8)
	before := src.Clone()

	_, err := wavelet.Decompose(src, 4, wavelet.Grain)
	require.NoError(t, err)
	require.Equal(t, before.Pix, src.Pix)
}

func TestCompose_RejectsMismatchedDetail(t *testing.T) {
	t.Parallel()

	residual := tensor.Filled(4, 4, 3, 0.5)
	_, err := wavelet.Compose(residual, []*tensor.Image{nil, tensor.Filled(4, 5, 3, 0.5)}, wavelet.Grain, 1)

	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Contains(t, err.Error(), "detail 2")
}

func TestRadius(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.5, wavelet.Radius(0))
	require.Equal(t, 1.5, wavelet.Radius(1))
	require.Equal(t, 63.5, wavelet.Radius(6))
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	enc, err := wavelet.ParseEncoding("")
	require.NoError(t, err)
	require.Equal(t, wavelet.Grain, enc)

	_, err = wavelet.ParseEncoding("overlay")
	require.Error(t, err)
}
