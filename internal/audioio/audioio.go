// Package audioio decodes and encodes PCM WAV clips.
package audioio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/vk/framegridgo/internal/tensor"
)

// Pattern matches the file names Load can decode.
const Pattern = "*.wav;*.WAV"

var errInvalidWAV = errors.New("not a valid WAV file")

// Load decodes a PCM WAV file into per-channel float samples in [-1, 1].
func Load(path string) (*tensor.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, errInvalidWAV)
	}
	if !supportedDepth(int(d.BitDepth)) {
		return nil, fmt.Errorf("%s: %w: unsupported bit depth %d", path, errInvalidWAV, d.BitDepth)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%s: %w: no channels", path, errInvalidWAV)
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}
	if !supportedDepth(depth) {
		return nil, fmt.Errorf("%s: %w: unsupported bit depth %d", path, errInvalidWAV, depth)
	}
	full := float32(int64(1) << (depth - 1))

	samples := len(buf.Data) / channels
	a := &tensor.Audio{Waveform: make([][]float32, channels), SampleRate: buf.Format.SampleRate, Path: path}
	for c := range a.Waveform {
		a.Waveform[c] = make([]float32, samples)
	}
	for i := 0; i < samples; i++ {
		for c := 0; c < channels; c++ {
			a.Waveform[c][i] = float32(buf.Data[i*channels+c]) / full
		}
	}
	return a, nil
}

func supportedDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// Save encodes a clip as 16-bit PCM WAV.
func Save(path string, a *tensor.Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	channels, samples := a.Channels(), a.Samples()
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: a.SampleRate},
		Data:           make([]int, channels*samples),
		SourceBitDepth: 16,
	}
	for i := 0; i < samples; i++ {
		for c := 0; c < channels; c++ {
			v := a.Waveform[c][i]
			v = max(-1, min(1, v))
			buf.Data[i*channels+c] = int(v * 32767)
		}
	}

	enc := wav.NewEncoder(f, a.SampleRate, 16, channels, 1)
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Process returns a copy of a scaled by gain and, when maxSeconds is
// positive, truncated to that duration. Samples are clamped to [-1, 1].
func Process(a *tensor.Audio, gain, maxSeconds float64) *tensor.Audio {
	n := a.Samples()
	if maxSeconds > 0 && a.SampleRate > 0 {
		if limit := int(maxSeconds * float64(a.SampleRate)); limit < n {
			n = limit
		}
	}
	out := &tensor.Audio{Waveform: make([][]float32, a.Channels()), SampleRate: a.SampleRate, Path: a.Path}
	g := float32(gain)
	for c, ch := range a.Waveform {
		out.Waveform[c] = make([]float32, n)
		for i := 0; i < n; i++ {
			out.Waveform[c][i] = max(-1, min(1, ch[i]*g))
		}
	}
	return out
}
