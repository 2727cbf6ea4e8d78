package loaders

import (
	"context"

	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/audioio"
	"github.com/vk/framegridgo/internal/imageio"
	"github.com/vk/framegridgo/internal/tensor"
)

// BorderInput defines the arguments of the PickBorder node.
type BorderInput struct {
	Image *tensor.Batch `fggo:"image"`
	Mode  string        `fggo:"mode"`
	Index int           `fggo:"index"`
	Seed  int64         `fggo:"seed"`
}

// AssetImageOutput holds an image and the asset file it came from.
type AssetImageOutput struct {
	Image    *tensor.Batch `fggo:"image"`
	Filename string        `fggo:"filename"`
}

// OnRunPickBorder scales the selected border to the frame size and
// composites it over every frame using the border's alpha channel.
func OnRunPickBorder(ctx context.Context, deps *Deps, in *BorderInput) (*AssetImageOutput, error) {
	if err := in.Image.RequireChannels("PickBorder", 3, 4); err != nil {
		return nil, err
	}
	listing, i, err := pickAsset(deps.Assets, assets.Borders, imageio.Pattern, in.Mode, in.Index, in.Seed)
	if err != nil {
		return nil, err
	}
	border, err := imageio.Load(listing.Path(i), true)
	if err != nil {
		return nil, err
	}
	_, h, w, _ := in.Image.Shape()
	border = imageio.Resize(border, w, h)

	out, err := tensor.MapFrames(ctx, in.Image, func(_ context.Context, _ int, f *tensor.Image) (*tensor.Image, error) {
		dst := f.Clone()
		for p := 0; p < f.Height*f.Width; p++ {
			alpha := border.Pix[p*4+3]
			for c := 0; c < 3; c++ {
				o := p*f.Channels + c
				dst.Pix[o] = tensor.Lerp(dst.Pix[o], border.Pix[p*4+c], alpha)
			}
			if f.Channels == 4 {
				o := p*4 + 3
				dst.Pix[o] = dst.Pix[o] + alpha*(1-dst.Pix[o])
			}
		}
		return dst.Clamp(), nil
	})
	if err != nil {
		return nil, err
	}
	return &AssetImageOutput{Image: out, Filename: listing.Names[i]}, nil
}

// PoseInput defines the arguments of the PickPose node.
type PoseInput struct {
	Width  int    `fggo:"width"`
	Height int    `fggo:"height"`
	Mode   string `fggo:"mode"`
	Index  int    `fggo:"index"`
	Seed   int64  `fggo:"seed"`
}

// OnRunPickPose loads the selected pose as a single RGB frame of the
// requested size.
func OnRunPickPose(_ context.Context, deps *Deps, in *PoseInput) (*AssetImageOutput, error) {
	listing, i, err := pickAsset(deps.Assets, assets.Poses, imageio.Pattern, in.Mode, in.Index, in.Seed)
	if err != nil {
		return nil, err
	}
	pose, err := imageio.Load(listing.Path(i), false)
	if err != nil {
		return nil, err
	}
	batch, err := tensor.NewBatch(imageio.Resize(pose, in.Width, in.Height))
	if err != nil {
		return nil, err
	}
	return &AssetImageOutput{Image: batch, Filename: listing.Names[i]}, nil
}

// AmbienceInput defines the arguments of the LoadAmbience node.
type AmbienceInput struct {
	Mode       string  `fggo:"mode"`
	Index      int     `fggo:"index"`
	Seed       int64   `fggo:"seed"`
	Gain       float64 `fggo:"gain"`
	MaxSeconds float64 `fggo:"max_seconds"`
}

// AmbienceOutput holds the track and its file name.
type AmbienceOutput struct {
	Audio    *tensor.Audio `fggo:"audio"`
	Filename string        `fggo:"filename"`
}

// OnRunLoadAmbience loads the selected WAV track, applies gain and
// truncates it to max_seconds when that is positive.
func OnRunLoadAmbience(_ context.Context, deps *Deps, in *AmbienceInput) (*AmbienceOutput, error) {
	listing, i, err := pickAsset(deps.Assets, assets.Ambience, audioio.Pattern, in.Mode, in.Index, in.Seed)
	if err != nil {
		return nil, err
	}
	track, err := audioio.Load(listing.Path(i))
	if err != nil {
		return nil, err
	}
	return &AmbienceOutput{Audio: audioio.Process(track, in.Gain, in.MaxSeconds), Filename: listing.Names[i]}, nil
}
