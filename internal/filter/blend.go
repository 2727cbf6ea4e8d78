package filter

// Screen blends b over a with the screen operator.
func Screen(a, b float32) float32 {
	return 1 - (1-a)*(1-b)
}

// Over composites b onto a with coverage alpha.
func Over(a, b, alpha float32) float32 {
	return a*(1-alpha) + b*alpha
}

// SmoothStep is the cubic Hermite step between edge0 and edge1.
func SmoothStep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
