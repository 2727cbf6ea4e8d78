package film

import (
	"context"

	"github.com/vk/framegridgo/internal/motion"
	"github.com/vk/framegridgo/internal/paint"
	"github.com/vk/framegridgo/internal/tensor"
)

// FadeInput defines the arguments of the Fade node.
type FadeInput struct {
	Image     *tensor.Batch `fggo:"image"`
	Direction string        `fggo:"direction"`
	Curve     string        `fggo:"curve"`
	Color     string        `fggo:"color"`
}

// FadeOutput holds the faded batch.
type FadeOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunFade blends the batch with a solid color. Fading in, the first frame
// is the color and the last is the untouched frame; fading out reverses
// that. A single frame is the end state of the fade.
func OnRunFade(ctx context.Context, _ *Deps, in *FadeInput) (*FadeOutput, error) {
	if err := in.Image.Validate("Fade"); err != nil {
		return nil, err
	}
	curve, err := motion.Curve(in.Curve)
	if err != nil {
		return nil, err
	}
	col, err := paint.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	begin, end := 0.0, 1.0
	if in.Direction == "out" {
		begin, end = 1, 0
	}

	n, _, _, channels := in.Image.Shape()
	fill := paint.Samples(col, channels)
	color := colorChannels(channels)
	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		visible := float32(motion.Frame(curve, begin, end, i, n))
		dst := f.Clone()
		for p := 0; p < f.Height*f.Width; p++ {
			for c := 0; c < color; c++ {
				o := p*f.Channels + c
				dst.Pix[o] = tensor.Lerp(fill[c], dst.Pix[o], visible)
			}
		}
		return dst.Clamp(), nil
	})
	if err != nil {
		return nil, err
	}
	return &FadeOutput{Image: out}, nil
}
