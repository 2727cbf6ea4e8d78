package masks

import (
	"context"
	"math"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/tensor"
)

// TileInput defines the arguments of the SeamlessTile node.
type TileInput struct {
	Image   *tensor.Batch `fggo:"image"`
	Feather float64       `fggo:"feather"`
}

// TileOutput holds the tileable batch and the seam weights.
type TileOutput struct {
	Image *tensor.Batch     `fggo:"image"`
	Mask  *tensor.MaskBatch `fggo:"mask"`
}

// OnRunSeamlessTile rolls each frame by half its width and height, which
// makes opposite edges continuous and moves the seams to the center cross.
// The seams are then blended with the unrolled frame, which is continuous
// there. The mask holds the weight of the unrolled frame.
func OnRunSeamlessTile(ctx context.Context, _ *Deps, in *TileInput) (*TileOutput, error) {
	if err := in.Image.Validate("SeamlessTile"); err != nil {
		return nil, err
	}
	n, h, w, _ := in.Image.Shape()
	seams := seamMask(h, w, in.Feather)

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		dst := tensor.NewImage(f.Height, f.Width, f.Channels)
		for y := 0; y < f.Height; y++ {
			sy := (y + f.Height/2) % f.Height
			for x := 0; x < f.Width; x++ {
				sx := (x + f.Width/2) % f.Width
				m := seams.At(x, y)
				for c := 0; c < f.Channels; c++ {
					dst.Set(x, y, c, tensor.Lerp(f.At(sx, sy, c), f.At(x, y, c), m))
				}
			}
		}
		return dst, nil
	})
	if err != nil {
		return nil, err
	}
	return &TileOutput{Image: out, Mask: perFrame(seams, n)}, nil
}

func seamMask(h, w int, feather float64) *tensor.Mask {
	m := tensor.NewMask(h, w)
	fx, fy := float32(feather*float64(w)), float32(feather*float64(h))
	for y := 0; y < h; y++ {
		dy := float32(math.Abs(float64(y) + 0.5 - float64(h)/2))
		wy := 1 - filter.SmoothStep(0, fy, dy)
		for x := 0; x < w; x++ {
			dx := float32(math.Abs(float64(x) + 0.5 - float64(w)/2))
			wx := 1 - filter.SmoothStep(0, fx, dx)
			m.Set(x, y, max(wx, wy))
		}
	}
	return m
}
