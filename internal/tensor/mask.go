package tensor

import "fmt"

// Mask is a single-channel weight map with values in [0,1].
type Mask struct {
	Height int
	Width  int
	Pix    []float32
}

// NewMask allocates a zero-filled mask.
func NewMask(height, width int) *Mask {
	return &Mask{Height: height, Width: width, Pix: make([]float32, height*width)}
}

// At returns the weight at pixel (x, y).
func (m *Mask) At(x, y int) float32 { return m.Pix[y*m.Width+x] }

// Set writes the weight at pixel (x, y).
func (m *Mask) Set(x, y int, v float32) { m.Pix[y*m.Width+x] = v }

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	out := &Mask{Height: m.Height, Width: m.Width, Pix: make([]float32, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// AsImage expands the mask into a single-channel frame.
func (m *Mask) AsImage() *Image {
	im := &Image{Height: m.Height, Width: m.Width, Channels: 1, Pix: make([]float32, len(m.Pix))}
	copy(im.Pix, m.Pix)
	return im
}

// MaskBatch is an ordered sequence of equally sized masks.
type MaskBatch struct {
	Frames []*Mask
}

// Len returns the number of masks.
func (mb *MaskBatch) Len() int {
	if mb == nil {
		return 0
	}
	return len(mb.Frames)
}

// Frame returns the mask paired with image frame i. A single mask is
// broadcast across the whole image batch.
func (mb *MaskBatch) Frame(i int) *Mask {
	if len(mb.Frames) == 1 {
		return mb.Frames[0]
	}
	return mb.Frames[i]
}

// RequireFor checks that the masks can be paired with the image batch:
// same height and width, and either one mask or one per frame.
func (mb *MaskBatch) RequireFor(op string, images *Batch) error {
	if mb.Len() == 0 {
		return &ShapeError{Op: op, Want: "at least one mask", Got: "an empty mask batch"}
	}
	n, h, w, _ := images.Shape()
	if mb.Len() != 1 && mb.Len() != n {
		return &ShapeError{Op: op, Want: fmt.Sprintf("1 or %d masks", n), Got: fmt.Sprintf("%d masks", mb.Len())}
	}
	for i, m := range mb.Frames {
		if m.Height != h || m.Width != w {
			return &ShapeError{Op: op, Want: fmt.Sprintf("mask %dx%d", h, w), Got: fmt.Sprintf("%dx%d at mask %d", m.Height, m.Width, i)}
		}
	}
	return nil
}

// FromImages converts each frame's luminance into a mask.
func FromImages(b *Batch) *MaskBatch {
	out := &MaskBatch{Frames: make([]*Mask, len(b.Frames))}
	for i, f := range b.Frames {
		m := NewMask(f.Height, f.Width)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				m.Set(x, y, Clamp01(f.Luma(x, y)))
			}
		}
		out.Frames[i] = m
	}
	return out
}
