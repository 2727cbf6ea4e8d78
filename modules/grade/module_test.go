package grade_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/vk/framegridgo/internal/testutil"
	"github.com/vk/framegridgo/modules/grade"
	"github.com/zclconf/go-cty/cty"
)

func neutral(img *tensor.Batch) *grade.GradeInput {
	return &grade.GradeInput{Image: img, Gamma: 1, Gain: 1, Contrast: 1, Saturation: 1}
}

func TestColorGrade_DefaultsAreIdentity(t *testing.T) {
	t.Parallel()

	// Arrange
	h := testutil.NewApp(t, nil)
	src := testutil.Gradient(2, 8, 8, 3)

	// Act
	res := h.Invoke(t, "ColorGrade", map[string]cty.Value{"image": tensor.ImageVal(src)})

	// Assert
	out := testutil.Image(t, res, "image")
	for i, f := range out.Frames {
		for p, v := range f.Pix {
			require.InDelta(t, src.Frames[i].Pix[p], v, 1e-5)
		}
	}
}

func TestColorGrade_Saturation(t *testing.T) {
	t.Parallel()

	// Arrange
	src := testutil.Gradient(1, 4, 4, 3)
	in := neutral(src)
	in.Saturation = 0

	// Act
	out, err := grade.OnRunColorGrade(context.Background(), &grade.Deps{}, in)
	require.NoError(t, err)

	// Assert
	f := out.Image.Frames[0]
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			require.InDelta(t, f.At(x, y, 0), f.At(x, y, 1), 1e-6)
			require.InDelta(t, f.At(x, y, 0), f.At(x, y, 2), 1e-6)
		}
	}
}

func TestColorGrade_LiftGainTemperature(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(*grade.GradeInput)
		want   []float32
	}{
		{name: "lift raises blacks", mutate: func(in *grade.GradeInput) { in.Lift = 0.5 }, want: []float32{0.5, 0.5, 0.5}},
		{name: "gain zero is black", mutate: func(in *grade.GradeInput) { in.Lift = 0.5; in.Gain = 0 }, want: []float32{0, 0, 0}},
		{name: "warm", mutate: func(in *grade.GradeInput) { in.Lift = 0.5; in.Temperature = 1 }, want: []float32{0.6, 0.5, 0.4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := neutral(testutil.Constant(1, 2, 2, 3, 0))
			tc.mutate(in)

			out, err := grade.OnRunColorGrade(context.Background(), &grade.Deps{}, in)
			require.NoError(t, err)

			for c, want := range tc.want {
				require.InDelta(t, want, out.Image.Frames[0].Pix[c], 1e-6)
			}
		})
	}
}

func TestColorGrade_Gray(t *testing.T) {
	t.Parallel()

	in := neutral(testutil.Constant(1, 2, 2, 1, 0.25))
	in.Gamma = 0.5
	in.Temperature = 1

	out, err := grade.OnRunColorGrade(context.Background(), &grade.Deps{}, in)
	require.NoError(t, err)
	require.InDelta(t, 0.0625, out.Image.Frames[0].Pix[0], 1e-6)
}
