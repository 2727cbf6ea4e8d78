package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/app"
	"github.com/vk/framegridgo/internal/tensor"
)

// Gradient returns n frames of a smooth pattern that differs per frame.
func Gradient(n, height, width, channels int) *tensor.Batch {
	b := &tensor.Batch{Frames: make([]*tensor.Image, n)}
	for i := range b.Frames {
		im := tensor.NewImage(height, width, channels)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				for c := 0; c < channels; c++ {
					v := 0.5 + 0.3*math.Sin(float64(x)*0.4+float64(c)+float64(i)*0.7)*math.Cos(float64(y)*0.3)
					im.Set(x, y, c, float32(v))
				}
			}
		}
		b.Frames[i] = im
	}
	return b
}

// Constant returns n frames filled with v.
func Constant(n, height, width, channels int, v float32) *tensor.Batch {
	b := &tensor.Batch{Frames: make([]*tensor.Image, n)}
	for i := range b.Frames {
		b.Frames[i] = tensor.Filled(height, width, channels, v)
	}
	return b
}

// Indexed returns n 2x2 RGB frames whose samples all equal i/(n+1), so that
// frames can be identified after reordering.
func Indexed(n int) *tensor.Batch {
	b := &tensor.Batch{Frames: make([]*tensor.Image, n)}
	for i := range b.Frames {
		b.Frames[i] = tensor.Filled(2, 2, 3, FrameTag(i, n))
	}
	return b
}

// FrameTag is the sample value of frame i of Indexed(n).
func FrameTag(i, n int) float32 {
	return float32(i+1) / float32(n+1)
}

// Image extracts an image output and fails the test if it is missing.
func Image(t *testing.T, res *app.Result, name string) *tensor.Batch {
	t.Helper()
	b, err := res.Image(name)
	require.NoError(t, err)
	return b
}

// RequireInRange asserts every sample of b lies in [0,1].
func RequireInRange(t *testing.T, b *tensor.Batch) {
	t.Helper()
	for i, f := range b.Frames {
		for _, v := range f.Pix {
			if v < 0 || v > 1 {
				require.Failf(t, "sample out of range", "frame %d has sample %v", i, v)
			}
		}
	}
}

// RequireEqualBatches asserts two batches hold identical samples.
func RequireEqualBatches(t *testing.T, want, got *tensor.Batch) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len(), "frame count")
	for i := range want.Frames {
		require.True(t, want.Frames[i].SameShape(got.Frames[i]), "frame %d shape", i)
		require.Equal(t, want.Frames[i].Pix, got.Frames[i].Pix, "frame %d samples", i)
	}
}
