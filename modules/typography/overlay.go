package typography

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"github.com/vk/framegridgo/internal/paint"
	"github.com/vk/framegridgo/internal/tensor"
	"golang.org/x/image/font/gofont/goregular"
)

// lineSpacing is the line advance as a multiple of the font size.
const lineSpacing = 1.2

var regular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// OverlayInput defines the arguments of the TextOverlay node.
type OverlayInput struct {
	Image    *tensor.Batch `fggo:"image"`
	Text     string        `fggo:"text"`
	FontSize float64       `fggo:"font_size"`
	X        float64       `fggo:"x"`
	Y        float64       `fggo:"y"`
	AnchorX  float64       `fggo:"anchor_x"`
	AnchorY  float64       `fggo:"anchor_y"`
	Color    string        `fggo:"color"`
}

// OverlayOutput holds the captioned batch.
type OverlayOutput struct {
	Image *tensor.Batch `fggo:"image"`
}

// OnRunTextOverlay renders the text block once and composites it onto every
// frame. (x, y) is a fraction of the frame size; the anchor selects which
// point of the block sits there, (0, 0) being its top-left corner. Each
// line is aligned horizontally on its own.
func OnRunTextOverlay(ctx context.Context, _ *Deps, in *OverlayInput) (*OverlayOutput, error) {
	if err := in.Image.RequireChannels("TextOverlay", 1, 3, 4); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return &OverlayOutput{Image: in.Image.Clone()}, nil
	}
	col, err := paint.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	source, err := regular()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	dc := paint.Canvas(in.Image.Frames[0])
	defer dc.Close()
	dc.SetFont(source.Face(in.FontSize))
	dc.SetRGBA(col.R, col.G, col.B, col.A)

	lines := strings.Split(strings.ReplaceAll(in.Text, "\r\n", "\n"), "\n")
	advance := in.FontSize * lineSpacing
	px := in.X * float64(dc.Width())
	top := in.Y*float64(dc.Height()) - in.AnchorY*advance*float64(len(lines))
	for i, line := range lines {
		dc.DrawStringAnchored(line, px, top+float64(i)*advance, in.AnchorX, 1)
	}
	layer := paint.Layer(dc)

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		return paint.Composite(f, layer, paint.Normal), nil
	})
	if err != nil {
		return nil, err
	}
	return &OverlayOutput{Image: out}, nil
}
