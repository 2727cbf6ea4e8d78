package optics

import (
	"context"
	"math"

	"github.com/gogpu/gg"
	"github.com/vk/framegridgo/internal/paint"
	"github.com/vk/framegridgo/internal/tensor"
)

// FlareInput defines the arguments of the LensFlare node.
type FlareInput struct {
	Image        *tensor.Batch `fggo:"image"`
	X            float64       `fggo:"x"`
	Y            float64       `fggo:"y"`
	Intensity    float64       `fggo:"intensity"`
	Ghosts       int           `fggo:"ghosts"`
	GhostSpacing float64       `fggo:"ghost_spacing"`
	Color        string        `fggo:"color"`
	Halo         bool          `fggo:"halo"`
}

// FlareOutput holds the flared batch.
type FlareOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunLensFlare draws the flare once per frame size and screens it onto
// every frame.
func OnRunLensFlare(ctx context.Context, _ *Deps, in *FlareInput) (*FlareOutput, error) {
	if err := in.Image.RequireChannels("LensFlare", 1, 3, 4); err != nil {
		return nil, err
	}
	col, err := paint.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}

	dc := paint.Canvas(in.Image.Frames[0])
	defer dc.Close()
	if err := drawFlare(dc, in, col); err != nil {
		return nil, err
	}
	layer := paint.Layer(dc)

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		return paint.Composite(f, layer, paint.Screen), nil
	})
	if err != nil {
		return nil, err
	}
	return &FlareOutput{Image: out}, nil
}

func drawFlare(dc *gg.Context, in *FlareInput, col gg.RGBA) error {
	w, h := float64(dc.Width()), float64(dc.Height())
	diag := math.Hypot(w, h)
	lx, ly := in.X*w, in.Y*h
	alpha := in.Intensity

	glowRadius := 0.35 * diag
	glow := gg.NewRadialGradientBrush(lx, ly, 0, glowRadius).
		AddColorStop(0, gg.RGBA2(col.R, col.G, col.B, alpha)).
		AddColorStop(0.3, gg.RGBA2(col.R, col.G, col.B, alpha*0.35)).
		AddColorStop(1, gg.RGBA2(col.R, col.G, col.B, 0))
	dc.SetFillBrush(glow)
	dc.DrawCircle(lx, ly, glowRadius)
	if err := dc.Fill(); err != nil {
		return err
	}

	// Ghosts sit on the line from the light through the frame center.
	cx, cy := w/2, h/2
	for k := 1; k <= in.Ghosts; k++ {
		t := 2 * float64(k) * in.GhostSpacing
		gx, gy := lx+(cx-lx)*t, ly+(cy-ly)*t
		r := diag * (0.015 + 0.012*float64(k%3))
		tint := col.Lerp(gg.RGB(0.6, 0.8, 1), float64(k)/float64(in.Ghosts+1))
		dc.SetRGBA(tint.R, tint.G, tint.B, alpha*0.2)
		dc.DrawCircle(gx, gy, r)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	if in.Halo {
		dc.SetRGBA(col.R, col.G, col.B, alpha*0.15)
		dc.SetLineWidth(diag * 0.012)
		dc.DrawCircle(lx, ly, 0.22*diag)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}
