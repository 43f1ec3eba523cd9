// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/pitchpractice/internal/audiotest"
)

func TestMonoMixer_Mix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		values   []float32
		want     float32
	}{
		{"mono passthrough", 1, []float32{0.5}, 0.5},
		{"stereo", 2, []float32{0.4, 0.6}, 0.5},
		{"stereo opposite", 2, []float32{1, -1}, 0},
		{"three channels", 3, []float32{0.3, 0.6, 0.9}, 0.6},
		{"quad", 4, []float32{0.1, 0.2, 0.3, 0.4}, 0.25},
		{"5.1", 6, []float32{0.6, 0.6, 0.6, 0.6, 0.6, 0.6}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_, ch int) float32 {
				return tt.values[ch]
			})
			mixer := NewMonoMixer(src)

			if mixer.Channels() != 1 {
				t.Errorf("Channels() = %d, want 1", mixer.Channels())
			}
			if mixer.SampleRate() != 8000 {
				t.Errorf("SampleRate() = %d, want 8000", mixer.SampleRate())
			}

			got := drain(t, mixer, 32)
			if len(got) != 100 {
				t.Fatalf("got %d frames, want 100", len(got))
			}
			for i, v := range got {
				if math.Abs(float64(v-tt.want)) > 1e-6 {
					t.Fatalf("frame %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestMonoMixer_LargeReadGrowsScratch(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 2, 20000, 0.2))
	buf := make([]float32, 10000)

	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10000 {
		t.Errorf("ReadSamples() = %d frames, want 10000", n)
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 5))
	buf := make([]float32, 16)

	n, err := mixer.ReadSamples(buf)
	if n != 5 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() = %d, %v; want 5, EOF", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v; want 0, EOF", n, err)
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 1<<30, 440)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		_, _ = mixer.ReadSamples(buf)
	}
}
