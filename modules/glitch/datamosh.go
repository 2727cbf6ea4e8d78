package glitch

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/tensor"
)

const datamoshStream = 0xbb67ae8584caa73b

// DatamoshInput defines the arguments of the Datamosh node.
type DatamoshInput struct {
	Images     *tensor.Batch `fggo:"images"`
	BlockSize  int           `fggo:"block_size"`
	Threshold  float64       `fggo:"threshold"`
	HoldChance float64       `fggo:"hold_chance"`
	Seed       int64         `fggo:"seed"`
}

// DatamoshOutput holds the moshed batch.
type DatamoshOutput struct {
	Images *tensor.Batch `fggo:"images"`
}

// OnRunDatamosh walks the batch in order. For every block of frame i whose
// mean absolute change from frame i-1 is below the threshold, a seeded coin
// with probability hold_chance decides whether the block is copied from
// output frame i-1 instead. Frames depend on their predecessors, so the
// batch is processed sequentially.
func OnRunDatamosh(ctx context.Context, _ *Deps, in *DatamoshInput) (*DatamoshOutput, error) {
	if err := in.Images.Validate("Datamosh"); err != nil {
		return nil, err
	}
	out := in.Images.Clone()
	if in.Images.Len() < 2 {
		ctxlog.FromContext(ctx).Warn("Datamosh needs at least two frames, returning input unchanged.", "frames", in.Images.Len())
		return &DatamoshOutput{Images: out}, nil
	}

	rng := rand.New(rand.NewPCG(uint64(in.Seed), datamoshStream))
	bs := max(in.BlockSize, 1)
	src := in.Images.Frames
	for i := 1; i < len(src); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur, prev := out.Frames[i], out.Frames[i-1]
		for by := 0; by < cur.Height; by += bs {
			for bx := 0; bx < cur.Width; bx += bs {
				x1, y1 := min(bx+bs, cur.Width), min(by+bs, cur.Height)
				// Draw unconditionally so the sequence depends only on the seed.
				coin := rng.Float64()
				if blockChange(src[i], src[i-1], bx, by, x1, y1) >= in.Threshold || coin >= in.HoldChance {
					continue
				}
				copyBlock(cur, prev, bx, by, x1, y1)
			}
		}
	}
	return &DatamoshOutput{Images: out}, nil
}

func blockChange(a, b *tensor.Image, x0, y0, x1, y1 int) float64 {
	var sum float64
	for y := y0; y < y1; y++ {
		start, end := a.Offset(x0, y, 0), a.Offset(x1-1, y, a.Channels-1)
		for o := start; o <= end; o++ {
			sum += math.Abs(float64(a.Pix[o] - b.Pix[o]))
		}
	}
	return sum / float64((x1-x0)*(y1-y0)*a.Channels)
}

func copyBlock(dst, src *tensor.Image, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		start, end := dst.Offset(x0, y, 0), dst.Offset(x1-1, y, dst.Channels-1)
		copy(dst.Pix[start:end+1], src.Pix[start:end+1])
	}
}
