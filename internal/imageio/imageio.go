// Package imageio reads and writes frames on disk.
//
// Decoding supports PNG, JPEG and GIF from the standard library plus BMP,
// TIFF and WebP from golang.org/x/image. Frames are always written as PNG.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/vk/framegridgo/internal/tensor"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pattern matches the file names of every decodable format.
const Pattern = "*.png;*.PNG;*.jpg;*.JPG;*.jpeg;*.JPEG;*.gif;*.bmp;*.tif;*.tiff;*.webp"

// Decode reads and decodes one image file.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes an image file into a frame.
func Load(path string, keepAlpha bool) (*tensor.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return tensor.FromImage(img, keepAlpha), nil
}

// LoadMask decodes an image file into a mask.
func LoadMask(path string) (*tensor.Mask, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return tensor.MaskFromImage(img), nil
}

// LoadBatch decodes files into one RGB batch. Frames that differ in size
// from the first are resized to match it.
func LoadBatch(paths []string) (*tensor.Batch, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files given")
	}
	b := &tensor.Batch{Frames: make([]*tensor.Image, 0, len(paths))}
	for _, p := range paths {
		img, err := Decode(p)
		if err != nil {
			return nil, err
		}
		if len(b.Frames) > 0 {
			first := b.Frames[0]
			if bounds := img.Bounds(); bounds.Dx() != first.Width || bounds.Dy() != first.Height {
				img = scale(img, first.Width, first.Height)
			}
		}
		b.Frames = append(b.Frames, tensor.FromImage(img, false))
	}
	return b, nil
}

// Resize returns src scaled to width x height with Catmull-Rom resampling.
func Resize(src *tensor.Image, width, height int) *tensor.Image {
	if src.Width == width && src.Height == height {
		return src.Clone()
	}
	scaled := scale(tensor.ToImage(src), width, height)
	out := tensor.FromImage(scaled, src.Channels == 4)
	if src.Channels == 1 {
		return toGray(out)
	}
	return out
}

func scale(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func toGray(rgb *tensor.Image) *tensor.Image {
	out := tensor.NewImage(rgb.Height, rgb.Width, 1)
	for y := 0; y < rgb.Height; y++ {
		for x := 0; x < rgb.Width; x++ {
			out.Set(x, y, 0, rgb.At(x, y, 0))
		}
	}
	return out
}

// Save writes a frame as PNG, creating parent directories.
func Save(path string, im *tensor.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, tensor.ToImage(im)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// SaveBatch writes every frame as dir/<prefix>_<index>.png and returns the
// written paths.
func SaveBatch(dir, prefix string, b *tensor.Batch) ([]string, error) {
	paths := make([]string, 0, b.Len())
	for i, f := range b.Frames {
		p := filepath.Join(dir, fmt.Sprintf("%s_%05d.png", prefix, i))
		if err := Save(p, f); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
