// Package wavelet splits an image into Gaussian-difference detail scales
// plus a low-frequency residual, and sums such a stack back into an image.
//
// Scale i blurs the working image with radius 2^i - 0.5. The difference
// between the working image and its blur is stored as a detail layer
// re-centered on 0.5 so it can be displayed and edited as an ordinary
// image; the blur becomes the working image for the next scale. After the
// last scale the working image is the residual.
//
// Detail layers are clamped to [0,1] when stored. Differences whose
// encoded value leaves that range are lost, so reconstruction is exact only
// for images whose per-scale differences fit the encoding. The
// LinearLight encoding halves differences before storing them, trading
// precision for twice the representable range.
package wavelet

import (
	"fmt"
	"math"

	"github.com/vk/framegridgo/internal/filter"
	"github.com/vk/framegridgo/internal/tensor"
)

// MaxScales is the fixed number of detail slots exposed by the nodes.
const MaxScales = 8

// Encoding selects how signed differences are mapped into [0,1].
type Encoding string

const (
	// Grain stores diff + 0.5 and decodes with d - 0.5.
	Grain Encoding = "grain"
	// LinearLight stores diff/2 + 0.5 and decodes with (d - 0.5) * 2.
	LinearLight Encoding = "linear_light"
)

// ParseEncoding validates an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case Grain, LinearLight:
		return Encoding(s), nil
	case "":
		return Grain, nil
	default:
		return "", fmt.Errorf("unknown detail encoding %q (want %q or %q)", s, Grain, LinearLight)
	}
}

// Neutral returns the stored value of a zero difference. A detail layer
// filled with it contributes nothing on composition.
func (e Encoding) Neutral() float32 { return e.encode(0) }

func (e Encoding) encode(diff float32) float32 {
	if e == LinearLight {
		return tensor.Clamp01(diff*0.5 + 0.5)
	}
	return tensor.Clamp01(diff + 0.5)
}

func (e Encoding) decode(d float32) float32 {
	if e == LinearLight {
		return (d - 0.5) * 2
	}
	return d - 0.5
}

// Radius returns the blur radius used at scale index i.
func Radius(i int) float64 {
	return math.Pow(2, float64(i)) - 0.5
}

// Stack is the result of a decomposition of one frame.
type Stack struct {
	Residual *tensor.Image
	Details  []*tensor.Image
}

// Decompose splits src into scales detail layers and a residual. src is not
// modified. scales must be in [1, MaxScales].
func Decompose(src *tensor.Image, scales int, enc Encoding) (*Stack, error) {
	if scales < 1 {
		return nil, fmt.Errorf("wavelet decompose: scales must be at least 1, got %d", scales)
	}
	if scales > MaxScales {
		return nil, fmt.Errorf("wavelet decompose: scales %d exceeds the %d available detail outputs", scales, MaxScales)
	}

	stack := &Stack{Details: make([]*tensor.Image, 0, scales)}
	current := src
	for i := 0; i < scales; i++ {
		blurred := filter.GaussianBlurRadius(current, Radius(i))
		detail := tensor.NewImage(src.Height, src.Width, src.Channels)
		for p := range detail.Pix {
			detail.Pix[p] = enc.encode(current.Pix[p] - blurred.Pix[p])
		}
		stack.Details = append(stack.Details, detail)
		current = blurred
	}
	stack.Residual = current.Clamp()
	return stack, nil
}

// Compose sums decoded detail layers onto residual, scaled by strength, and
// clamps the result to [0,1]. Nil details are skipped. Every detail must
// match the residual's shape.
func Compose(residual *tensor.Image, details []*tensor.Image, enc Encoding, strength float32) (*tensor.Image, error) {
	out := residual.Clone()
	for i, d := range details {
		if d == nil {
			continue
		}
		if !d.SameShape(residual) {
			return nil, &tensor.ShapeError{
				Op:   "wavelet compose",
				Want: "detail shape " + residual.ShapeString(),
				Got:  fmt.Sprintf("%s at detail %d", d.ShapeString(), i+1),
			}
		}
		for p, v := range d.Pix {
			out.Pix[p] += enc.decode(v) * strength
		}
	}
	return out.Clamp(), nil
}
