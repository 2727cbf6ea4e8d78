package optics

import (
	"context"
	"math"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/tensor"
)

// AberrationInput defines the arguments of the ChromaticAberration node.
type AberrationInput struct {
	Image   *tensor.Batch `fggo:"image"`
	Shift   float64       `fggo:"shift"`
	Falloff float64       `fggo:"falloff"`
}

// AberrationOutput holds the shifted batch.
type AberrationOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunChromaticAberration displaces red radially outwards and blue
// inwards by shift·r^falloff pixels, where r is the distance from the
// frame center normalized to 1 at the corners. Green and alpha are kept.
func OnRunChromaticAberration(ctx context.Context, _ *Deps, in *AberrationInput) (*AberrationOutput, error) {
	if err := in.Image.RequireChannels("ChromaticAberration", 3, 4); err != nil {
		return nil, err
	}
	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		return aberrate(f, in.Shift, in.Falloff), nil
	})
	if err != nil {
		return nil, err
	}
	return &AberrationOutput{Image: out}, nil
}

func aberrate(f *tensor.Image, shift, falloff float64) *tensor.Image {
	dst := f.Clone()
	if shift == 0 {
		return dst
	}
	cx, cy := float64(f.Width-1)/2, float64(f.Height-1)/2
	corner := math.Hypot(cx, cy)
	if corner == 0 {
		return dst
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			offset := shift * math.Pow(dist/corner, falloff)
			ux, uy := dx/dist*offset, dy/dist*offset
			// Sampling closer to the center pushes red outwards.
			dst.Set(x, y, 0, filter.Bilinear(f, float64(x)-ux, float64(y)-uy, 0))
			dst.Set(x, y, 2, filter.Bilinear(f, float64(x)+ux, float64(y)+uy, 2))
		}
	}
	return dst
}
