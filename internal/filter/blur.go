package filter

import "github.com/vk/framegridgo/internal/tensor"

// GaussianBlur returns a blurred copy of src. The 2D Gaussian of the given
// size and sigma is applied as a horizontal then a vertical pass; for a
// normalized isotropic Gaussian this matches the full 2D convolution.
func GaussianBlur(src *tensor.Image, size int, sigma float64) *tensor.Image {
	return Convolve(src, GaussianKernel(size, sigma))
}

// GaussianBlurRadius blurs with sigma equal to radius and the kernel size
// derived from it.
func GaussianBlurRadius(src *tensor.Image, radius float64) *tensor.Image {
	return GaussianBlur(src, KernelSize(radius), radius)
}

// Convolve applies a separable symmetric kernel along both axes with
// reflect padding. src is never modified.
func Convolve(src *tensor.Image, kernel []float32) *tensor.Image {
	tmp := tensor.NewImage(src.Height, src.Width, src.Channels)
	horizontal(src, tmp, kernel)
	dst := tensor.NewImage(src.Height, src.Width, src.Channels)
	vertical(tmp, dst, kernel)
	return dst
}

func horizontal(src, dst *tensor.Image, kernel []float32) {
	half := len(kernel) / 2
	c := src.Channels
	for y := 0; y < src.Height; y++ {
		row := y * src.Width * c
		for x := 0; x < src.Width; x++ {
			o := row + x*c
			for k, w := range kernel {
				sx := Reflect(x+k-half, src.Width)
				so := row + sx*c
				for ch := 0; ch < c; ch++ {
					dst.Pix[o+ch] += src.Pix[so+ch] * w
				}
			}
		}
	}
}

func vertical(src, dst *tensor.Image, kernel []float32) {
	half := len(kernel) / 2
	c := src.Channels
	stride := src.Width * c
	for y := 0; y < src.Height; y++ {
		for k, w := range kernel {
			sy := Reflect(y+k-half, src.Height)
			srow := src.Pix[sy*stride : (sy+1)*stride]
			drow := dst.Pix[y*stride : (y+1)*stride]
			for i, v := range srow {
				drow[i] += v * w
			}
		}
	}
}

// BlurMask blurs a mask with the same reflect-padded separable Gaussian.
func BlurMask(m *tensor.Mask, radius float64) *tensor.Mask {
	if radius <= 0 {
		return m.Clone()
	}
	blurred := GaussianBlurRadius(m.AsImage(), radius)
	return &tensor.Mask{Height: m.Height, Width: m.Width, Pix: blurred.Pix}
}
