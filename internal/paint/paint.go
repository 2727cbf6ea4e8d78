// Package paint bridges gg drawing surfaces and tensor frames: color
// parsing, per-channel color samples and layer compositing.
package paint

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/gg"
	"github.com/vk/framegridgo/internal/tensor"
	"golang.org/x/image/draw"
)

// ParseColor parses a hex color in RGB, RGBA, RRGGBB or RRGGBBAA form with
// an optional leading '#'.
func ParseColor(s string) (gg.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("invalid color %q: expected 3, 4, 6 or 8 hex digits", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("invalid color %q: %q is not a hex digit", s, r)
		}
	}
	return gg.Hex(hex), nil
}

// Samples returns c as one value per frame channel. Gray frames get the
// Rec.709 luminance, and a trailing alpha channel gets the color's alpha.
func Samples(c gg.RGBA, channels int) []float32 {
	luma := float32(0.2126*c.R + 0.7152*c.G + 0.0722*c.B)
	switch channels {
	case 1:
		return []float32{luma}
	case 2:
		return []float32{luma, float32(c.A)}
	case 3:
		return []float32{float32(c.R), float32(c.G), float32(c.B)}
	default:
		out := []float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
		for len(out) < channels {
			out = append(out, float32(c.A))
		}
		return out[:channels]
	}
}

// Canvas returns an empty RGBA drawing context the size of im.
func Canvas(im *tensor.Image) *gg.Context {
	return gg.NewContext(im.Width, im.Height)
}

// BlendMode selects how a layer is combined with a frame.
type BlendMode int

const (
	// Normal is source-over compositing.
	Normal BlendMode = iota
	// Screen lightens the frame by the layer's color.
	Screen
	// Add sums the layer onto the frame.
	Add
)

// Composite returns a copy of dst with the premultiplied layer blended onto
// it. Samples are clamped to [0,1].
func Composite(dst *tensor.Image, layer *image.RGBA, mode BlendMode) *tensor.Image {
	out := dst.Clone()
	color := dst.Channels
	if color == 2 || color >= 4 {
		color--
	}
	b := layer.Bounds()
	for y := 0; y < out.Height && y < b.Dy(); y++ {
		for x := 0; x < out.Width && x < b.Dx(); x++ {
			p := layer.PixOffset(b.Min.X+x, b.Min.Y+y)
			a := float32(layer.Pix[p+3]) / 255
			if a == 0 {
				continue
			}
			src := [3]float32{
				float32(layer.Pix[p]) / 255,
				float32(layer.Pix[p+1]) / 255,
				float32(layer.Pix[p+2]) / 255,
			}
			if color == 1 {
				src[0] = 0.2126*src[0] + 0.7152*src[1] + 0.0722*src[2]
			}
			for c := 0; c < color; c++ {
				o := out.Offset(x, y, c)
				d := out.Pix[o]
				switch mode {
				case Screen:
					out.Pix[o] = 1 - (1-d)*(1-src[c])
				case Add:
					out.Pix[o] = d + src[c]
				default:
					out.Pix[o] = d*(1-a) + src[c]
				}
			}
			if color < out.Channels && mode == Normal {
				o := out.Offset(x, y, color)
				out.Pix[o] = out.Pix[o] + a*(1-out.Pix[o])
			}
		}
	}
	return out.Clamp()
}

// Layer flushes dc and returns its pixels as premultiplied RGBA.
func Layer(dc *gg.Context) *image.RGBA {
	_ = dc.FlushGPU()
	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
