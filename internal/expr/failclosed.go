package expr

import (
	"context"
	"errors"

	"github.com/vk/framegridgo/internal/ctxlog"
)

// Func is a compiled expression bound to a fallback value.
type Func func(values map[string]float64) float64

// CompileOrDefault compiles src into a Func that never fails. A blank
// expression yields a Func returning fallback silently. Compile errors and
// evaluation errors are logged once per occurrence and yield fallback.
func CompileOrDefault(ctx context.Context, src string, fallback float64, vars ...string) Func {
	logger := ctxlog.FromContext(ctx)

	prog, err := Compile(src, vars...)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			logger.Warn("Expression rejected, using neutral value.", "expression", src, "fallback", fallback, "error", err)
		}
		return func(map[string]float64) float64 { return fallback }
	}

	return func(values map[string]float64) float64 {
		v, err := prog.Eval(values)
		if err != nil {
			logger.Warn("Expression evaluation failed, using neutral value.", "expression", src, "fallback", fallback, "error", err)
			return fallback
		}
		return v
	}
}
