// Package frames implements nodes that rearrange frames of a batch. An
// invalid window is not an error: the node logs a warning and returns a
// copy of its input.
package frames

import (
	"context"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/tensor"
)

// InsertInput defines the arguments of the RangeInsert node.
type InsertInput struct {
	Target *tensor.Batch `fggo:"target"`
	Insert *tensor.Batch `fggo:"insert"`
	Start  int           `fggo:"start"`
	End    int           `fggo:"end"`
}

// InsertOutput holds the spliced batch.
type InsertOutput struct {
	Images     *tensor.Batch `fggo:"images"`
	FrameCount int           `fggo:"frame_count"`
}

// OnRunRangeInsert returns target[:start] + insert + target[end:]. The
// frame count changes when the window and the insert differ in length.
func OnRunRangeInsert(ctx context.Context, _ *Deps, in *InsertInput) (*InsertOutput, error) {
	const op = "RangeInsert"
	if err := tensor.RequireSameShape(op, in.Target, in.Insert); err != nil {
		return nil, err
	}
	n := in.Target.Len()
	if in.Start < 0 || in.End < in.Start || in.End > n {
		ctxlog.FromContext(ctx).Warn("Insert window is outside the target batch, returning target unchanged.",
			"start", in.Start, "end", in.End, "frames", n)
		return &InsertOutput{Images: in.Target.Clone(), FrameCount: n}, nil
	}
	out := tensor.Concat(in.Target.Slice(0, in.Start), in.Insert, in.Target.Slice(in.End, n))
	return &InsertOutput{Images: out, FrameCount: out.Len()}, nil
}

// SwapInput defines the arguments of the RangeSwap node.
type SwapInput struct {
	Images *tensor.Batch `fggo:"images"`
	StartA int           `fggo:"start_a"`
	StartB int           `fggo:"start_b"`
	Length int           `fggo:"length"`
}

// SwapOutput holds the reordered batch.
type SwapOutput struct {
	Images *tensor.Batch `fggo:"images"`
}

// OnRunRangeSwap exchanges frames [a, a+length) with [b, b+length).
func OnRunRangeSwap(ctx context.Context, _ *Deps, in *SwapInput) (*SwapOutput, error) {
	const op = "RangeSwap"
	if err := in.Images.Validate(op); err != nil {
		return nil, err
	}
	n := in.Images.Len()
	a, b, l := in.StartA, in.StartB, in.Length
	if a > b {
		a, b = b, a
	}
	out := in.Images.Clone()
	switch {
	case l < 1 || a < 0 || b+l > n:
		ctxlog.FromContext(ctx).Warn("Swap windows are outside the batch, returning input unchanged.",
			"start_a", in.StartA, "start_b", in.StartB, "length", l, "frames", n)
		return &SwapOutput{Images: out}, nil
	case a+l > b:
		ctxlog.FromContext(ctx).Warn("Swap windows overlap, returning input unchanged.",
			"start_a", in.StartA, "start_b", in.StartB, "length", l)
		return &SwapOutput{Images: out}, nil
	}
	for k := 0; k < l; k++ {
		out.Frames[a+k], out.Frames[b+k] = out.Frames[b+k], out.Frames[a+k]
	}
	return &SwapOutput{Images: out}, nil
}

// StealInput defines the arguments of the RangeSteal node.
type StealInput struct {
	Target *tensor.Batch `fggo:"target"`
	Source *tensor.Batch `fggo:"source"`
	Start  int           `fggo:"start"`
	End    int           `fggo:"end"`
}

// StealOutput holds the patched batch.
type StealOutput struct {
	Images *tensor.Batch `fggo:"images"`
}

// OnRunRangeSteal replaces target frames [start, end) with the source
// frames at the same indices. The frame count never changes.
func OnRunRangeSteal(ctx context.Context, _ *Deps, in *StealInput) (*StealOutput, error) {
	const op = "RangeSteal"
	if err := tensor.RequireSameShape(op, in.Target, in.Source); err != nil {
		return nil, err
	}
	out := in.Target.Clone()
	limit := min(in.Target.Len(), in.Source.Len())
	if in.Start < 0 || in.End <= in.Start || in.End > limit {
		ctxlog.FromContext(ctx).Warn("Steal window does not fit both batches, returning target unchanged.",
			"start", in.Start, "end", in.End, "target_frames", in.Target.Len(), "source_frames", in.Source.Len())
		return &StealOutput{Images: out}, nil
	}
	for i := in.Start; i < in.End; i++ {
		out.Frames[i] = in.Source.Frames[i].Clone()
	}
	return &StealOutput{Images: out}, nil
}
