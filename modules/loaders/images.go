package loaders

import (
	"context"
	"fmt"

	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/imageio"
	"github.com/vk/framegridgo/internal/tensor"
)

// ImagesInput defines the arguments of the LoadImagesFromDir node.
type ImagesInput struct {
	Directory string `fggo:"directory"`
	Pattern   string `fggo:"pattern"`
	Mode      string `fggo:"mode"`
	Index     int    `fggo:"index"`
	Seed      int64  `fggo:"seed"`
	BatchSize int    `fggo:"batch_size"`
	KeepAlpha bool   `fggo:"keep_alpha"`
}

// ImagesOutput holds the loaded batch and the names of its files.
type ImagesOutput struct {
	Images    *tensor.Batch `fggo:"images"`
	Filenames []string      `fggo:"filenames"`
	Count     int           `fggo:"count"`
}

// OnRunLoadImagesFromDir loads batch_size files starting at the selected
// one, wrapping around the end of the listing. Frames are resized to the
// first frame's size.
func OnRunLoadImagesFromDir(_ context.Context, _ *Deps, in *ImagesInput) (*ImagesOutput, error) {
	var (
		listing *assets.Listing
		start   int
		err     error
	)
	n := in.BatchSize
	if n == 0 {
		listing, err = assets.List(in.Directory, in.Pattern)
		if err == nil {
			n = listing.Len()
		}
	} else {
		listing, start, err = pick(in.Directory, in.Pattern, in.Mode, in.Index, in.Seed)
	}
	if err != nil {
		return nil, err
	}

	paths := make([]string, n)
	names := make([]string, n)
	for k := range paths {
		i := (start + k) % listing.Len()
		paths[k], names[k] = listing.Path(i), listing.Names[i]
	}
	batch, err := loadFrames(paths, in.KeepAlpha)
	if err != nil {
		return nil, err
	}
	return &ImagesOutput{Images: batch, Filenames: names, Count: batch.Len()}, nil
}

// SequenceInput defines the arguments of the LoadFrameSequence node.
type SequenceInput struct {
	Directory  string `fggo:"directory"`
	Pattern    string `fggo:"pattern"`
	StartFrame int    `fggo:"start_frame"`
	FrameCount int    `fggo:"frame_count"`
	Stride     int    `fggo:"stride"`
}

// SequenceOutput holds the loaded frames.
type SequenceOutput struct {
	Images     *tensor.Batch `fggo:"images"`
	FrameCount int           `fggo:"frame_count"`
}

// OnRunLoadFrameSequence loads every stride-th file from start_frame, in
// name order, up to frame_count frames (0 means no limit).
func OnRunLoadFrameSequence(_ context.Context, _ *Deps, in *SequenceInput) (*SequenceOutput, error) {
	listing, err := assets.List(in.Directory, in.Pattern)
	if err != nil {
		return nil, err
	}
	if in.StartFrame < 0 || in.StartFrame >= listing.Len() {
		return nil, fmt.Errorf("start_frame: %w: %d not in [0, %d)", assets.ErrIndexOutOfRange, in.StartFrame, listing.Len())
	}
	stride := max(in.Stride, 1)
	var paths []string
	for i := in.StartFrame; i < listing.Len(); i += stride {
		if in.FrameCount > 0 && len(paths) == in.FrameCount {
			break
		}
		paths = append(paths, listing.Path(i))
	}
	batch, err := imageio.LoadBatch(paths)
	if err != nil {
		return nil, err
	}
	return &SequenceOutput{Images: batch, FrameCount: batch.Len()}, nil
}

func loadFrames(paths []string, keepAlpha bool) (*tensor.Batch, error) {
	if !keepAlpha {
		return imageio.LoadBatch(paths)
	}
	b := &tensor.Batch{Frames: make([]*tensor.Image, len(paths))}
	for i, p := range paths {
		f, err := imageio.Load(p, true)
		if err != nil {
			return nil, err
		}
		if i > 0 && (f.Width != b.Frames[0].Width || f.Height != b.Frames[0].Height) {
			f = imageio.Resize(f, b.Frames[0].Width, b.Frames[0].Height)
		}
		b.Frames[i] = f
	}
	return b, nil
}
