// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// Waveform returns the value of one channel at one frame index.
type Waveform func(frame, channel int) float32

// MockSource generates frames from a Waveform. It satisfies audio.Source
// without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	waveform   Waveform

	// FailAfter makes ReadSamples return ErrMockFailure once this many
	// frames were produced. Negative disables it.
	FailAfter int
	Closed    bool
}

// ErrMockFailure is returned by a MockSource configured with FailAfter.
var ErrMockFailure = errors.New("mock source failure")

// NewMockSource creates a source producing frames frames per channel.
func NewMockSource(sampleRate, channels, frames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
		FailAfter:  -1,
	}
}

// NewSilentSource creates a source of zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource creates a source holding value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewSineSource creates a sine tone at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource creates frames whose value is frame/frames, so the position
// of a sample can be recovered from its value.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAfter >= 0 && m.generated >= m.FailAfter {
		return 0, ErrMockFailure
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	if m.FailAfter >= 0 {
		count = min(count, m.FailAfter-m.generated)
	}

	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += count

	if m.generated >= m.frames {
		return count * m.channels, io.EOF
	}
	return count * m.channels, nil
}
