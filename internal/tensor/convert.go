package tensor

import (
	"image"
	"image/color"
)

// FromImage converts a decoded image into an RGB frame, or RGBA when
// keepAlpha is set. Colors are un-premultiplied.
func FromImage(src image.Image, keepAlpha bool) *Image {
	bounds := src.Bounds()
	channels := 3
	if keepAlpha {
		channels = 4
	}
	im := NewImage(bounds.Dy(), bounds.Dx(), channels)
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			c := color.NRGBA64Model.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			o := im.Offset(x, y, 0)
			im.Pix[o] = float32(c.R) / 0xffff
			im.Pix[o+1] = float32(c.G) / 0xffff
			im.Pix[o+2] = float32(c.B) / 0xffff
			if keepAlpha {
				im.Pix[o+3] = float32(c.A) / 0xffff
			}
		}
	}
	return im
}

// ToImage converts a frame into an 8-bit NRGBA image. One-channel frames
// become gray, two-channel frames are treated as gray plus alpha.
func ToImage(im *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			o := im.Offset(x, y, 0)
			var r, g, b, a float32 = 0, 0, 0, 1
			switch im.Channels {
			case 1:
				r, g, b = im.Pix[o], im.Pix[o], im.Pix[o]
			case 2:
				r, g, b, a = im.Pix[o], im.Pix[o], im.Pix[o], im.Pix[o+1]
			case 3:
				r, g, b = im.Pix[o], im.Pix[o+1], im.Pix[o+2]
			default:
				r, g, b, a = im.Pix[o], im.Pix[o+1], im.Pix[o+2], im.Pix[o+3]
			}
			out.SetNRGBA(x, y, color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)})
		}
	}
	return out
}

// MaskFromImage converts the alpha channel of src into a mask, falling back
// to luminance for images without transparency.
func MaskFromImage(src image.Image) *Mask {
	bounds := src.Bounds()
	m := NewMask(bounds.Dy(), bounds.Dx())
	opaque := true
	for y := 0; y < m.Height && opaque; y++ {
		for x := 0; x < m.Width; x++ {
			if _, _, _, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA(); a != 0xffff {
				opaque = false
				break
			}
		}
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := color.NRGBA64Model.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			if opaque {
				m.Set(x, y, (0.2126*float32(c.R)+0.7152*float32(c.G)+0.0722*float32(c.B))/0xffff)
			} else {
				m.Set(x, y, float32(c.A)/0xffff)
			}
		}
	}
	return m
}

func to8(v float32) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
