package masks

import (
	"context"
	"math"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/paint"
	"github.com/vk/framegridgo/internal/tensor"
)

// RingInput defines the arguments of the RingMask node.
type RingInput struct {
	Image     *tensor.Batch `fggo:"image"`
	CenterX   float64       `fggo:"center_x"`
	CenterY   float64       `fggo:"center_y"`
	Rings     int           `fggo:"rings"`
	Thickness float64       `fggo:"thickness"`
	Feather   float64       `fggo:"feather"`
	Color     string        `fggo:"color"`
	Opacity   float64       `fggo:"opacity"`
}

// RingOutput holds the painted batch and the ring coverage.
type RingOutput struct {
	Image *tensor.Batch     `fggo:"image"`
	Mask  *tensor.MaskBatch `fggo:"mask"`
}

// OnRunRingMask places ring k (1-based) at radius k·0.5/rings of the
// shorter frame side around the center. The mask is ring coverage; the
// image is the frame blended towards color by coverage·opacity.
func OnRunRingMask(ctx context.Context, _ *Deps, in *RingInput) (*RingOutput, error) {
	if err := in.Image.Validate("RingMask"); err != nil {
		return nil, err
	}
	col, err := paint.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	n, h, w, c := in.Image.Shape()
	rings := ringMask(h, w, in)
	fill := paint.Samples(col, c)
	opacity := float32(in.Opacity)

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		dst := f.Clone()
		for p, m := range rings.Pix {
			for ch := 0; ch < c; ch++ {
				o := p*c + ch
				dst.Pix[o] = tensor.Lerp(dst.Pix[o], fill[ch], m*opacity)
			}
		}
		return dst.Clamp(), nil
	})
	if err != nil {
		return nil, err
	}
	return &RingOutput{Image: out, Mask: perFrame(rings, n)}, nil
}

func ringMask(h, w int, in *RingInput) *tensor.Mask {
	m := tensor.NewMask(h, w)
	side := float64(min(h, w))
	cx, cy := in.CenterX*float64(w), in.CenterY*float64(h)
	spacing := 0.5 / float64(max(in.Rings, 1))
	half := float32(in.Thickness / 2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / side
			k := math.Max(1, math.Min(math.Round(d/spacing), float64(in.Rings)))
			gap := float32(math.Abs(d - k*spacing))
			m.Set(x, y, 1-filter.SmoothStep(half, half+float32(in.Feather), gap))
		}
	}
	return m
}
