package filter

import "math"

// KernelSize returns the odd kernel width used for a Gaussian of the given
// radius: 2*ceil(3*radius)+1, never below 3.
func KernelSize(radius float64) int {
	if radius <= 0 {
		return 3
	}
	size := 2*int(math.Ceil(radius*3)) + 1
	if size < 3 {
		size = 3
	}
	if size%2 == 0 {
		size++
	}
	return size
}

// GaussianKernel returns a normalized 1D Gaussian of the given size with
// standard deviation sigma. The size is forced odd.
func GaussianKernel(size int, sigma float64) []float32 {
	if size%2 == 0 {
		size++
	}
	if sigma <= 0 {
		k := make([]float32, size)
		k[size/2] = 1
		return k
	}

	half := size / 2
	twoSigmaSq := 2 * sigma * sigma
	weights := make([]float64, size)
	sum := 0.0
	for i := range weights {
		x := float64(i - half)
		weights[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += weights[i]
	}

	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// GaussianKernel2D samples a size×size Gaussian with standard deviation
// sigma and normalizes it to sum to one. Rows are returned in y order.
func GaussianKernel2D(size int, sigma float64) [][]float32 {
	if size%2 == 0 {
		size++
	}
	half := size / 2
	twoSigmaSq := 2 * sigma * sigma
	raw := make([][]float64, size)
	sum := 0.0
	for y := range raw {
		raw[y] = make([]float64, size)
		for x := range raw[y] {
			if sigma <= 0 {
				if x == half && y == half {
					raw[y][x] = 1
				}
			} else {
				dx, dy := float64(x-half), float64(y-half)
				raw[y][x] = math.Exp(-(dx*dx + dy*dy) / twoSigmaSq)
			}
			sum += raw[y][x]
		}
	}

	kernel := make([][]float32, size)
	for y := range raw {
		kernel[y] = make([]float32, size)
		for x := range raw[y] {
			kernel[y][x] = float32(raw[y][x] / sum)
		}
	}
	return kernel
}

// Reflect maps an out-of-range index onto [0, n) by mirroring at the
// borders without repeating the edge sample.
func Reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
