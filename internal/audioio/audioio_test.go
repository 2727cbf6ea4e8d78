package audioio_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/audioio"
	"github.com/vk/framegridgo/internal/tensor"
)

func clip() *tensor.Audio {
	left := make([]float32, 800)
	right := make([]float32, 800)
	for i := range left {
		left[i] = 0.5
		right[i] = -0.25
	}
	return &tensor.Audio{Waveform: [][]float32{left, right}, SampleRate: 8000}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	// Arrange
	path := filepath.Join(t.TempDir(), "tone.wav")

	// Act
	require.NoError(t, audioio.Save(path, clip()))
	got, err := audioio.Load(path)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 2, got.Channels())
	require.Equal(t, 800, got.Samples())
	require.Equal(t, 8000, got.SampleRate)
	require.Equal(t, path, got.Path)
	require.InDelta(t, 0.5, got.Waveform[0][10], 1e-3)
	require.InDelta(t, -0.25, got.Waveform[1][10], 1e-3)
}

func TestLoad_RejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "noise.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not riff data"), 0o644))

	_, err := audioio.Load(path)
	require.Error(t, err)
}

// pcmHeader returns a mono 8 kHz WAV file with the given bit depth and
// four data bytes.
func pcmHeader(bits uint16) []byte {
	var b bytes.Buffer
	le := func(v any) { _ = binary.Write(&b, binary.LittleEndian, v) }
	b.WriteString("RIFF")
	le(uint32(36 + 4))
	b.WriteString("WAVEfmt ")
	le(uint32(16))
	le(uint16(1))
	le(uint16(1))
	le(uint32(8000))
	le(uint32(8000 * 2))
	le(uint16(2))
	le(bits)
	b.WriteString("data")
	le(uint32(4))
	b.Write([]byte{0, 0, 0, 0})
	return b.Bytes()
}

func TestLoad_RejectsUnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	for _, bits := range []uint16{0, 12} {
		// Arrange
		path := filepath.Join(t.TempDir(), "broken.wav")
		require.NoError(t, os.WriteFile(path, pcmHeader(bits), 0o644))

		// Act
		_, err := audioio.Load(path)

		// Assert
		require.ErrorContains(t, err, "not a valid WAV file", "bit depth %d", bits)
	}
}

func TestProcess(t *testing.T) {
	t.Parallel()

	// Arrange
	src := clip()

	// Act
	out := audioio.Process(src, 3, 0.05)

	// Assert
	require.Equal(t, 400, out.Samples())
	require.Equal(t, float32(1), out.Waveform[0][0], "gain clamps to full scale")
	require.Equal(t, float32(-0.75), out.Waveform[1][0])
	require.Equal(t, float32(0.5), src.Waveform[0][0], "source is untouched")
	require.Equal(t, 0.05, out.Seconds())
}
