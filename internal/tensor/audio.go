package tensor

// Audio is a decoded clip: one sample slice per channel.
type Audio struct {
	Waveform   [][]float32
	SampleRate int
	Path       string
}

// Channels returns the number of audio channels.
func (a *Audio) Channels() int { return len(a.Waveform) }

// Samples returns the per-channel sample count.
func (a *Audio) Samples() int {
	if len(a.Waveform) == 0 {
		return 0
	}
	return len(a.Waveform[0])
}

// Seconds returns the clip duration.
func (a *Audio) Seconds() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(a.Samples()) / float64(a.SampleRate)
}
