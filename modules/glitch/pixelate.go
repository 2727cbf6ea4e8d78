package glitch

import (
	"context"

	"github.com/vk/framegridgo/internal/tensor"
)

// PixelateInput defines the arguments of the DepthPixelate node.
type PixelateInput struct {
	Image    *tensor.Batch     `fggo:"image"`
	Depth    *tensor.MaskBatch `fggo:"depth"`
	MaxBlock int               `fggo:"max_block"`
	Levels   int               `fggo:"levels"`
	Invert   bool              `fggo:"invert"`
}

// PixelateOutput holds the pixelated batch.
type PixelateOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunDepthPixelate quantizes depth into levels. The farthest level uses
// max_block sized cells and the nearest keeps full resolution, with the
// sizes in between spaced linearly. Cells are aligned to the frame origin
// and take the mean of the pixels they cover.
func OnRunDepthPixelate(ctx context.Context, _ *Deps, in *PixelateInput) (*PixelateOutput, error) {
	const op = "DepthPixelate"
	if err := in.Image.Validate(op); err != nil {
		return nil, err
	}
	if err := in.Depth.RequireFor(op, in.Image); err != nil {
		return nil, err
	}
	levels := max(in.Levels, 1)
	sizes := make([]int, levels)
	for l := range sizes {
		sizes[l] = blockSize(in.MaxBlock, l, levels)
	}

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		depth := in.Depth.Frame(i)
		cache := make(map[int]*tensor.Image)
		dst := tensor.NewImage(f.Height, f.Width, f.Channels)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				d := depth.At(x, y)
				if in.Invert {
					d = 1 - d
				}
				level := min(int(tensor.Clamp01(d)*float32(levels)), levels-1)
				pix, ok := cache[sizes[level]]
				if !ok {
					pix = pixelate(f, sizes[level])
					cache[sizes[level]] = pix
				}
				o := f.Offset(x, y, 0)
				copy(dst.Pix[o:o+f.Channels], pix.Pix[o:o+f.Channels])
			}
		}
		return dst, nil
	})
	if err != nil {
		return nil, err
	}
	return &PixelateOutput{Image: out}, nil
}

// blockSize returns the cell size of depth level l; level 0 is the
// farthest.
func blockSize(maxBlock, l, levels int) int {
	if maxBlock <= 1 {
		return 1
	}
	if levels == 1 {
		return maxBlock
	}
	return 1 + (maxBlock-1)*(levels-1-l)/(levels-1)
}

func pixelate(f *tensor.Image, size int) *tensor.Image {
	if size <= 1 {
		return f
	}
	dst := tensor.NewImage(f.Height, f.Width, f.Channels)
	mean := make([]float32, f.Channels)
	for by := 0; by < f.Height; by += size {
		for bx := 0; bx < f.Width; bx += size {
			x1, y1 := min(bx+size, f.Width), min(by+size, f.Height)
			for c := range mean {
				mean[c] = 0
			}
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					for c := range mean {
						mean[c] += f.At(x, y, c)
					}
				}
			}
			count := float32((x1 - bx) * (y1 - by))
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					for c := range mean {
						dst.Set(x, y, c, mean[c]/count)
					}
				}
			}
		}
	}
	return dst
}
