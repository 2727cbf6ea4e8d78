package tensor

import "fmt"

// Image is a single frame of (height, width, channel) samples in [0,1].
type Image struct {
	Height   int
	Width    int
	Channels int
	Pix      []float32
}

// NewImage allocates a zero-filled frame.
func NewImage(height, width, channels int) *Image {
	return &Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]float32, height*width*channels),
	}
}

// Filled allocates a frame with every sample set to v.
func Filled(height, width, channels int, v float32) *Image {
	im := NewImage(height, width, channels)
	for i := range im.Pix {
		im.Pix[i] = v
	}
	return im
}

// Offset returns the index of channel c of pixel (x, y) in Pix.
func (im *Image) Offset(x, y, c int) int {
	return (y*im.Width+x)*im.Channels + c
}

// At returns the sample of channel c at pixel (x, y).
func (im *Image) At(x, y, c int) float32 {
	return im.Pix[im.Offset(x, y, c)]
}

// Set writes the sample of channel c at pixel (x, y).
func (im *Image) Set(x, y, c int, v float32) {
	im.Pix[im.Offset(x, y, c)] = v
}

// Clone returns a deep copy of the frame.
func (im *Image) Clone() *Image {
	out := &Image{Height: im.Height, Width: im.Width, Channels: im.Channels}
	out.Pix = make([]float32, len(im.Pix))
	copy(out.Pix, im.Pix)
	return out
}

// SameShape reports whether two frames have identical dimensions.
func (im *Image) SameShape(other *Image) bool {
	return im.Height == other.Height && im.Width == other.Width && im.Channels == other.Channels
}

// Clamp limits every sample to [0,1] in place. Only call it on frames the
// caller owns.
func (im *Image) Clamp() *Image {
	for i, v := range im.Pix {
		im.Pix[i] = Clamp01(v)
	}
	return im
}

// ShapeString formats the frame shape as HxWxC.
func (im *Image) ShapeString() string {
	return fmt.Sprintf("%dx%dx%d", im.Height, im.Width, im.Channels)
}

// Luma returns the Rec.709 luminance of pixel (x, y). Frames with fewer
// than three channels return their first channel.
func (im *Image) Luma(x, y int) float32 {
	o := im.Offset(x, y, 0)
	if im.Channels < 3 {
		return im.Pix[o]
	}
	return 0.2126*im.Pix[o] + 0.7152*im.Pix[o+1] + 0.0722*im.Pix[o+2]
}

// Clamp01 limits v to the closed unit interval.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
