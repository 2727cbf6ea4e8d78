package film

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/tensor"
)

// grainStream separates the grain generator from other seeded nodes.
const grainStream = 0x6a09e667f3bcc908

// GrainInput defines the arguments of the FilmGrain node.
type GrainInput struct {
	Image      *tensor.Batch `fggo:"image"`
	Intensity  float64       `fggo:"intensity"`
	GrainSize  float64       `fggo:"grain_size"`
	Monochrome bool          `fggo:"monochrome"`
	Seed       int64         `fggo:"seed"`
}

// GrainOutput holds the grained batch.
type GrainOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunFilmGrain adds Gaussian grain to every frame. Frame i uses seed+i,
// so the output depends only on the seed and the frame index.
func OnRunFilmGrain(ctx context.Context, _ *Deps, in *GrainInput) (*GrainOutput, error) {
	if err := in.Image.Validate("FilmGrain"); err != nil {
		return nil, err
	}
	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		rng := rand.New(rand.NewPCG(uint64(in.Seed)+uint64(i), grainStream))
		return grainFrame(f, rng, in), nil
	})
	if err != nil {
		return nil, err
	}
	return &GrainOutput{Image: out}, nil
}

func grainFrame(f *tensor.Image, rng *rand.Rand, in *GrainInput) *tensor.Image {
	color := colorChannels(f.Channels)
	noiseChannels := color
	if in.Monochrome {
		noiseChannels = 1
	}
	noise := tensor.NewImage(f.Height, f.Width, noiseChannels)
	for i := range noise.Pix {
		noise.Pix[i] = float32(rng.NormFloat64())
	}
	if in.GrainSize > 1 {
		noise = normalize(filter.GaussianBlurRadius(noise, in.GrainSize/2))
	}

	out := f.Clone()
	amount := float32(in.Intensity)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			l := f.Luma(x, y)
			// Grain is strongest in the midtones and fades towards black and white.
			weight := 0.25 + 3*l*(1-l)
			for c := 0; c < color; c++ {
				n := noise.At(x, y, min(c, noiseChannels-1))
				o := out.Offset(x, y, c)
				out.Pix[o] += amount * weight * n
			}
		}
	}
	return out.Clamp()
}

// normalize rescales im to zero mean and unit variance. Blurring white
// noise shrinks its variance, which would make coarse grain fainter.
func normalize(im *tensor.Image) *tensor.Image {
	var sum, sq float64
	for _, v := range im.Pix {
		sum += float64(v)
	}
	mean := sum / float64(len(im.Pix))
	for _, v := range im.Pix {
		d := float64(v) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(im.Pix)))
	if std == 0 {
		return im
	}
	for i, v := range im.Pix {
		im.Pix[i] = float32((float64(v) - mean) / std)
	}
	return im
}

// colorChannels is the number of leading channels that carry color; a
// trailing alpha channel is left alone.
func colorChannels(channels int) int {
	if channels == 2 || channels == 4 {
		return channels - 1
	}
	return channels
}
