package optics

import (
	"context"
	"math"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/paint"
	"github.com/vk/framegridgo/internal/tensor"
)

// VignetteInput defines the arguments of the Vignette node.
type VignetteInput struct {
	Image    *tensor.Batch `fggo:"image"`
	Strength float64       `fggo:"strength"`
	Radius   float64       `fggo:"radius"`
	Feather  float64       `fggo:"feather"`
	Color    string        `fggo:"color"`
}

// VignetteOutput holds the tinted batch and the vignette weight per frame.
type VignetteOutput struct {
	Image *tensor.Batch     `fggo:"image"`
	Mask  *tensor.MaskBatch `fggo:"mask"`
}

// OnRunVignette blends each frame towards the vignette color by a weight
// that is 0 inside radius-feather and reaches strength at radius. Distance
// is normalized so that the frame corners are at 1.
func OnRunVignette(ctx context.Context, _ *Deps, in *VignetteInput) (*VignetteOutput, error) {
	if err := in.Image.Validate("Vignette"); err != nil {
		return nil, err
	}
	col, err := paint.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	n, h, w, c := in.Image.Shape()
	weights := vignetteMask(h, w, in.Strength, in.Radius, in.Feather)
	fill := paint.Samples(col, c)
	color := c
	if c == 2 || c == 4 {
		color--
	}

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		dst := f.Clone()
		for p, m := range weights.Pix {
			for ch := 0; ch < color; ch++ {
				o := p*c + ch
				dst.Pix[o] = tensor.Lerp(dst.Pix[o], fill[ch], m)
			}
		}
		return dst.Clamp(), nil
	})
	if err != nil {
		return nil, err
	}

	masks := &tensor.MaskBatch{Frames: make([]*tensor.Mask, n)}
	for i := range masks.Frames {
		masks.Frames[i] = weights.Clone()
	}
	return &VignetteOutput{Image: out, Mask: masks}, nil
}

func vignetteMask(h, w int, strength, radius, feather float64) *tensor.Mask {
	m := tensor.NewMask(h, w)
	corner := math.Hypot(0.5, 0.5)
	inner := float32(radius - feather)
	for y := 0; y < h; y++ {
		dy := (float64(y)+0.5)/float64(h) - 0.5
		for x := 0; x < w; x++ {
			dx := (float64(x)+0.5)/float64(w) - 0.5
			d := float32(math.Hypot(dx, dy) / corner)
			m.Set(x, y, float32(strength)*filter.SmoothStep(inner, float32(radius), d))
		}
	}
	return m
}
