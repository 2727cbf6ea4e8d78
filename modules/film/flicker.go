package film

import (
	"context"
	"math"

	"github.com/vk/framegridgo/internal/expr"
	"github.com/vk/framegridgo/internal/tensor"
)

// FlickerInput defines the arguments of the Flicker node.
type FlickerInput struct {
	Image            *tensor.Batch `fggo:"image"`
	Amplitude        float64       `fggo:"amplitude"`
	Frequency        float64       `fggo:"frequency"`
	FPS              float64       `fggo:"fps"`
	Phase            float64       `fggo:"phase"`
	Expression       string        `fggo:"expression"`
	OffsetExpression string        `fggo:"offset_expression"`
}

// FlickerOutput holds the modulated batch.
type FlickerOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunFlicker multiplies frame i by 1 + amplitude·sin(2π·frequency·t + phase)
// with t = i/fps, then adds the offset. A custom expression replaces the
// sine multiplier. Expressions that fail to compile or evaluate fall back
// to multiplier 1 and offset 0.
func OnRunFlicker(ctx context.Context, _ *Deps, in *FlickerInput) (*FlickerOutput, error) {
	if err := in.Image.Validate("Flicker"); err != nil {
		return nil, err
	}
	vars := []string{"t", "frame", "frames"}
	multiplier := func(values map[string]float64) float64 {
		return 1 + in.Amplitude*math.Sin(2*math.Pi*in.Frequency*values["t"]+in.Phase)
	}
	if in.Expression != "" {
		multiplier = expr.CompileOrDefault(ctx, in.Expression, 1, vars...)
	}
	offset := expr.CompileOrDefault(ctx, in.OffsetExpression, 0, vars...)

	n := in.Image.Len()
	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		values := map[string]float64{
			"t":      float64(i) / in.FPS,
			"frame":  float64(i),
			"frames": float64(n),
		}
		mul, add := float32(multiplier(values)), float32(offset(values))
		dst := f.Clone()
		color := colorChannels(f.Channels)
		for p := 0; p < f.Height*f.Width; p++ {
			for c := 0; c < color; c++ {
				o := p*f.Channels + c
				dst.Pix[o] = dst.Pix[o]*mul + add
			}
		}
		return dst.Clamp(), nil
	})
	if err != nil {
		return nil, err
	}
	return &FlickerOutput{Image: out}, nil
}
