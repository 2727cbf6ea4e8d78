package tensor

import "fmt"

// Batch is an ordered sequence of equally shaped frames.
type Batch struct {
	Frames []*Image
}

// NewBatch builds a batch and verifies that all frames share one shape.
func NewBatch(frames ...*Image) (*Batch, error) {
	b := &Batch{Frames: frames}
	if err := b.Validate("batch"); err != nil {
		return nil, err
	}
	return b, nil
}

// Zeros allocates a batch of n black frames.
func Zeros(n, height, width, channels int) *Batch {
	b := &Batch{Frames: make([]*Image, n)}
	for i := range b.Frames {
		b.Frames[i] = NewImage(height, width, channels)
	}
	return b
}

// Len returns the number of frames.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Frames)
}

// Shape returns (frames, height, width, channels). An empty batch reports
// zero for every dimension.
func (b *Batch) Shape() (n, height, width, channels int) {
	if b.Len() == 0 {
		return 0, 0, 0, 0
	}
	f := b.Frames[0]
	return len(b.Frames), f.Height, f.Width, f.Channels
}

// Validate checks the batch invariants: at least one frame, no nil frames,
// matching shapes and a Pix length consistent with the declared shape.
func (b *Batch) Validate(op string) error {
	if b.Len() == 0 {
		return &ShapeError{Op: op, Want: "a batch with at least one frame", Got: "an empty batch"}
	}
	first := b.Frames[0]
	for i, f := range b.Frames {
		if f == nil {
			return &ShapeError{Op: op, Want: "non-nil frames", Got: fmt.Sprintf("nil frame at index %d", i)}
		}
		if len(f.Pix) != f.Height*f.Width*f.Channels {
			return &ShapeError{Op: op, Want: fmt.Sprintf("%d samples for %s", f.Height*f.Width*f.Channels, f.ShapeString()), Got: fmt.Sprintf("%d samples at frame %d", len(f.Pix), i)}
		}
		if !f.SameShape(first) {
			return &ShapeError{Op: op, Want: "frame shape " + first.ShapeString(), Got: fmt.Sprintf("%s at frame %d", f.ShapeString(), i)}
		}
	}
	return nil
}

// RequireChannels validates the batch and checks its channel count against
// the allowed set.
func (b *Batch) RequireChannels(op string, allowed ...int) error {
	if err := b.Validate(op); err != nil {
		return err
	}
	c := b.Frames[0].Channels
	for _, a := range allowed {
		if c == a {
			return nil
		}
	}
	return &ShapeError{Op: op, Want: fmt.Sprintf("channels in %v", allowed), Got: fmt.Sprintf("%d channels", c)}
}

// RequireSameShape checks that two batches have the same frame shape. Frame
// counts may differ.
func RequireSameShape(op string, a, b *Batch) error {
	if err := a.Validate(op); err != nil {
		return err
	}
	if err := b.Validate(op); err != nil {
		return err
	}
	if !a.Frames[0].SameShape(b.Frames[0]) {
		return &ShapeError{Op: op, Want: "frame shape " + a.Frames[0].ShapeString(), Got: b.Frames[0].ShapeString()}
	}
	return nil
}

// Clone deep-copies every frame.
func (b *Batch) Clone() *Batch {
	out := &Batch{Frames: make([]*Image, len(b.Frames))}
	for i, f := range b.Frames {
		out.Frames[i] = f.Clone()
	}
	return out
}

// Slice returns a batch that shares frames [start:end] with b. The frames
// are not copied, so the result must be treated as read-only.
func (b *Batch) Slice(start, end int) *Batch {
	return &Batch{Frames: b.Frames[start:end]}
}

// Concat joins batches into a new batch of cloned frames.
func Concat(parts ...*Batch) *Batch {
	out := &Batch{}
	for _, p := range parts {
		for _, f := range p.Frames {
			out.Frames = append(out.Frames, f.Clone())
		}
	}
	return out
}
