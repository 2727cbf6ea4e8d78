// Package grade implements primary color correction.
package grade

import (
	"context"
	"math"
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/tensor"
)

// temperatureShift is the red/blue offset applied at temperature ±1.
const temperatureShift = 0.1

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because grading is stateless.
type Deps struct{}

// GradeInput defines the arguments of the ColorGrade node.
type GradeInput struct {
	Image       *tensor.Batch `fggo:"image"`
	Lift        float64       `fggo:"lift"`
	Gamma       float64       `fggo:"gamma"`
	Gain        float64       `fggo:"gain"`
	Contrast    float64       `fggo:"contrast"`
	Saturation  float64       `fggo:"saturation"`
	Temperature float64       `fggo:"temperature"`
}

// GradeOutput holds the graded batch.
type GradeOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunColorGrade applies, in order: lift and gain, gamma, contrast around
// mid gray, saturation around Rec.709 luma, and a red/blue temperature
// shift. Saturation and temperature only apply to color frames.
func OnRunColorGrade(ctx context.Context, _ *Deps, in *GradeInput) (*GradeOutput, error) {
	if err := in.Image.Validate("ColorGrade"); err != nil {
		return nil, err
	}
	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		return grade(f, in), nil
	})
	if err != nil {
		return nil, err
	}
	return &GradeOutput{Image: out}, nil
}

func grade(f *tensor.Image, in *GradeInput) *tensor.Image {
	dst := f.Clone()
	color := f.Channels
	if color == 2 || color == 4 {
		color--
	}
	invGamma := 1 / in.Gamma
	tone := func(v float32) float32 {
		x := in.Gain * (float64(v) + in.Lift*(1-float64(v)))
		x = math.Pow(math.Max(x, 0), invGamma)
		x = (x-0.5)*in.Contrast + 0.5
		return float32(x)
	}

	var px [3]float32
	for p := 0; p < f.Height*f.Width; p++ {
		base := p * f.Channels
		for c := 0; c < color; c++ {
			px[c] = tone(dst.Pix[base+c])
		}
		if color == 3 {
			l := 0.2126*px[0] + 0.7152*px[1] + 0.0722*px[2]
			s := float32(in.Saturation)
			for c := range px {
				px[c] = l + (px[c]-l)*s
			}
			px[0] += float32(temperatureShift * in.Temperature)
			px[2] -= float32(temperatureShift * in.Temperature)
		}
		for c := 0; c < color; c++ {
			dst.Pix[base+c] = tensor.Clamp01(px[c])
		}
	}
	return dst
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("OnRunColorGrade", &registry.RegisteredNode{
		NewInput:  func() any { return new(GradeInput) },
		InputType: reflect.TypeOf(GradeInput{}),
		NewDeps:   func(*registry.Env) any { return new(Deps) },
		Fn:        OnRunColorGrade,
	})
}
