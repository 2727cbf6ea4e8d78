package wavelet

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/tensor"
	wv "github.com/vk/framegridgo/internal/wavelet"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the wavelet nodes are stateless.
type Deps struct{}

// DecomposeInput defines the arguments of the WaveletDecompose node.
type DecomposeInput struct {
	Image    *tensor.Batch `fggo:"image"`
	Scales   int           `fggo:"scales"`
	Encoding string        `fggo:"encoding"`
}

// DecomposeOutput holds the residual, eight detail slots and the original.
// Slots above the requested scale count are black.
type DecomposeOutput struct {
	Residual *tensor.Batch `fggo:"residual"`
	Detail1  *tensor.Batch `fggo:"detail_1"`
	Detail2  *tensor.Batch `fggo:"detail_2"`
	Detail3  *tensor.Batch `fggo:"detail_3"`
	Detail4  *tensor.Batch `fggo:"detail_4"`
	Detail5  *tensor.Batch `fggo:"detail_5"`
	Detail6  *tensor.Batch `fggo:"detail_6"`
	Detail7  *tensor.Batch `fggo:"detail_7"`
	Detail8  *tensor.Batch `fggo:"detail_8"`
	Original *tensor.Batch `fggo:"original"`
}

// Details returns the detail slots in scale order.
func (o *DecomposeOutput) Details() []*tensor.Batch {
	return []*tensor.Batch{o.Detail1, o.Detail2, o.Detail3, o.Detail4, o.Detail5, o.Detail6, o.Detail7, o.Detail8}
}

// ComposeInput defines the arguments of the WaveletCompose node.
type ComposeInput struct {
	Residual       *tensor.Batch `fggo:"residual"`
	Detail1        *tensor.Batch `fggo:"detail_1"`
	Detail2        *tensor.Batch `fggo:"detail_2"`
	Detail3        *tensor.Batch `fggo:"detail_3"`
	Detail4        *tensor.Batch `fggo:"detail_4"`
	Detail5        *tensor.Batch `fggo:"detail_5"`
	Detail6        *tensor.Batch `fggo:"detail_6"`
	Detail7        *tensor.Batch `fggo:"detail_7"`
	Detail8        *tensor.Batch `fggo:"detail_8"`
	Encoding       string        `fggo:"encoding"`
	DetailStrength float64       `fggo:"detail_strength"`
}

func (in *ComposeInput) details() []*tensor.Batch {
	return []*tensor.Batch{in.Detail1, in.Detail2, in.Detail3, in.Detail4, in.Detail5, in.Detail6, in.Detail7, in.Detail8}
}

// ComposeOutput holds the reconstructed batch.
type ComposeOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunWaveletDecompose splits every frame into in.Scales detail layers
// and a residual.
func OnRunWaveletDecompose(ctx context.Context, _ *Deps, in *DecomposeInput) (*DecomposeOutput, error) {
	const op = "WaveletDecompose"
	if err := in.Image.Validate(op); err != nil {
		return nil, err
	}
	enc, err := wv.ParseEncoding(in.Encoding)
	if err != nil {
		return nil, err
	}
	if in.Scales > wv.MaxScales {
		return nil, fmt.Errorf("%s: scales %d exceeds the %d detail outputs", op, in.Scales, wv.MaxScales)
	}

	stacks := make([]*wv.Stack, in.Image.Len())
	residual, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		s, err := wv.Decompose(f, in.Scales, enc)
		if err != nil {
			return nil, err
		}
		stacks[i] = s
		return s.Residual, nil
	})
	if err != nil {
		return nil, err
	}

	n, h, w, c := in.Image.Shape()
	details := make([]*tensor.Batch, wv.MaxScales)
	for s := range details {
		if s >= in.Scales {
			details[s] = &tensor.Batch{Frames: make([]*tensor.Image, n)}
			for i := range details[s].Frames {
				details[s].Frames[i] = tensor.Filled(h, w, c, enc.Neutral())
			}
			continue
		}
		details[s] = &tensor.Batch{Frames: make([]*tensor.Image, n)}
		for i, st := range stacks {
			details[s].Frames[i] = st.Details[s]
		}
	}

	return &DecomposeOutput{
		Residual: residual,
		Detail1:  details[0],
		Detail2:  details[1],
		Detail3:  details[2],
		Detail4:  details[3],
		Detail5:  details[4],
		Detail6:  details[5],
		Detail7:  details[6],
		Detail8:  details[7],
		Original: in.Image.Clone(),
	}, nil
}

// OnRunWaveletCompose reconstructs frames from a residual and any connected
// detail layers. A detail batch with a single frame is applied to every
// residual frame.
func OnRunWaveletCompose(ctx context.Context, _ *Deps, in *ComposeInput) (*ComposeOutput, error) {
	const op = "WaveletCompose"
	if err := in.Residual.Validate(op); err != nil {
		return nil, err
	}
	enc, err := wv.ParseEncoding(in.Encoding)
	if err != nil {
		return nil, err
	}

	details := in.details()
	n := in.Residual.Len()
	for i, d := range details {
		if d == nil {
			continue
		}
		if err := tensor.RequireSameShape(op, in.Residual, d); err != nil {
			return nil, fmt.Errorf("detail_%d: %w", i+1, err)
		}
		if d.Len() != 1 && d.Len() != n {
			return nil, &tensor.ShapeError{Op: op, Want: fmt.Sprintf("1 or %d frames in detail_%d", n, i+1), Got: fmt.Sprintf("%d frames", d.Len())}
		}
	}

	out, err := tensor.MapFrames(ctx, in.Residual, func(_ context.Context, i int, f *tensor.Image) (*tensor.Image, error) {
		layers := make([]*tensor.Image, len(details))
		for s, d := range details {
			switch {
			case d == nil:
			case d.Len() == 1:
				layers[s] = d.Frames[0]
			default:
				layers[s] = d.Frames[i]
			}
		}
		return wv.Compose(f, layers, enc, float32(in.DetailStrength))
	})
	if err != nil {
		return nil, err
	}
	return &ComposeOutput{Image: out}, nil
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("OnRunWaveletDecompose", &registry.RegisteredNode{
		NewInput:  func() any { return new(DecomposeInput) },
		InputType: reflect.TypeOf(DecomposeInput{}),
		NewDeps:   func(*registry.Env) any { return new(Deps) },
		Fn:        OnRunWaveletDecompose,
	})
	r.RegisterNode("OnRunWaveletCompose", &registry.RegisteredNode{
		NewInput:  func() any { return new(ComposeInput) },
		InputType: reflect.TypeOf(ComposeInput{}),
		NewDeps:   func(*registry.Env) any { return new(Deps) },
		Fn:        OnRunWaveletCompose,
	})
}
