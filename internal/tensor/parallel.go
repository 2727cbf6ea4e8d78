package tensor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type workersKey struct{}

// WithWorkers returns a context that bounds per-frame parallelism to n
// goroutines. Values below 1 mean one worker.
func WithWorkers(ctx context.Context, n int) context.Context {
	if n < 1 {
		n = 1
	}
	return context.WithValue(ctx, workersKey{}, n)
}

// Workers returns the frame worker limit carried by ctx, defaulting to
// GOMAXPROCS.
func Workers(ctx context.Context) int {
	if n, ok := ctx.Value(workersKey{}).(int); ok {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// FrameFunc transforms frame i of a batch. It must not modify src.
type FrameFunc func(ctx context.Context, i int, src *Image) (*Image, error)

// MapFrames applies fn to every frame of src and collects the results in
// input order. Frames are processed concurrently up to Workers(ctx); the
// first error cancels the remaining work.
func MapFrames(ctx context.Context, src *Batch, fn FrameFunc) (*Batch, error) {
	out := &Batch{Frames: make([]*Image, len(src.Frames))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(ctx))
	for i, frame := range src.Frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, i, frame)
			if err != nil {
				return err
			}
			out.Frames[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
