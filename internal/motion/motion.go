// Package motion samples easing curves for parameters that change over the
// frames of a batch.
package motion

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var curves = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"ease_in":        ease.InQuad,
	"ease_out":       ease.OutQuad,
	"ease_in_out":    ease.InOutQuad,
	"cubic_in":       ease.InCubic,
	"cubic_out":      ease.OutCubic,
	"cubic_in_out":   ease.InOutCubic,
	"sine_in":        ease.InSine,
	"sine_out":       ease.OutSine,
	"sine_in_out":    ease.InOutSine,
	"expo_in":        ease.InExpo,
	"expo_out":       ease.OutExpo,
	"bounce_out":     ease.OutBounce,
	"elastic_out":    ease.OutElastic,
	"back_in_out":    ease.InOutBack,
	"circular_in":    ease.InCirc,
	"circular_out":   ease.OutCirc,
	"quartic_in_out": ease.InOutQuart,
}

// Curve looks up an easing function by name.
func Curve(name string) (ease.TweenFunc, error) {
	fn, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing curve %q", name)
	}
	return fn, nil
}

// Curves returns the sorted curve names.
func Curves() []string {
	names := make([]string, 0, len(curves))
	for n := range curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Frame samples the curve going from begin to end at frame i of a batch of
// n frames. The first frame yields begin and the last yields end; a batch
// of one frame yields end.
func Frame(fn ease.TweenFunc, begin, end float64, i, n int) float64 {
	if n <= 1 {
		return end
	}
	duration := float32(n - 1)
	tween := gween.New(float32(begin), float32(end), duration, fn)
	v, _ := tween.Update(float32(i))
	return float64(v)
}
