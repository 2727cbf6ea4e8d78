package filter

import (
	"math"

	"github.com/vk/framegridgo/internal/tensor"
)

// Bilinear samples channel c of im at the continuous position (x, y), where
// integer coordinates are pixel centers. Positions outside the frame clamp
// to the nearest edge pixel.
func Bilinear(im *tensor.Image, x, y float64, c int) float32 {
	x = math.Max(0, math.Min(x, float64(im.Width-1)))
	y = math.Max(0, math.Min(y, float64(im.Height-1)))
	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, im.Width-1), min(y0+1, im.Height-1)
	fx, fy := float32(x-float64(x0)), float32(y-float64(y0))

	top := tensor.Lerp(im.At(x0, y0, c), im.At(x1, y0, c), fx)
	bottom := tensor.Lerp(im.At(x0, y1, c), im.At(x1, y1, c), fx)
	return tensor.Lerp(top, bottom, fy)
}
