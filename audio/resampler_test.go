// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/pitchpractice/internal/audiotest"
)

// drain reads src to exhaustion and returns everything it produced.
func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRatePassesThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 100)
	got := drain(t, NewResampler(src, 8000), 32)

	if len(got) != 100 {
		t.Fatalf("got %d samples, want 100", len(got))
	}
	for i, v := range got {
		if want := float32(i) / 100; v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		srcRate   int
		dstRate   int
		frames    int
		want      int
		tolerance int
	}{
		{"44.1k to 16k", 44100, 16000, 44100, 16000, 0},
		{"48k to 44.1k", 48000, 44100, 48000, 44100, 2},
		{"8k to 16k", 8000, 16000, 8000, 16000, 4},
		{"22.05k to 44.1k", 22050, 44100, 22050, 44100, 4},
		{"extreme down", 96000, 8000, 96000, 8000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 440)
			got := len(drain(t, NewResampler(src, tt.dstRate), 4096))

			if got < tt.want-tt.tolerance || got > tt.want+tt.tolerance {
				t.Errorf("resampled length = %d, want %d (±%d)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestResampler_ConstantSignalStaysConstant(t *testing.T) {
	t.Parallel()

	for _, dst := range []int{8000, 16000, 48000} {
		src := audiotest.NewConstantSource(22050, 2, 2205, 0.5)
		for i, v := range drain(t, NewResampler(src, dst), 1024) {
			if math.Abs(float64(v-0.5)) > 1e-5 {
				t.Fatalf("dst %d: sample %d = %v, want 0.5", dst, i, v)
			}
		}
	}
}

func TestResampler_StartsOnFirstFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(1000, 1, 10, func(frame, _ int) float32 {
		return float32(frame + 1)
	})
	got := drain(t, NewResampler(src, 2000), 64)

	if len(got) == 0 || got[0] != 1 {
		t.Fatalf("first output = %v, want the first source frame (1)", got)
	}
	if got[2] != 2 {
		t.Errorf("output 2 = %v, want source frame 1 (2)", got[2])
	}
}

func TestResampler_StereoChannelsKeptApart(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4410, func(_, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return -0.75
	})
	got := drain(t, NewResampler(src, 16000), 512)

	if len(got)%2 != 0 {
		t.Fatalf("interleaved output has odd length %d", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if math.Abs(float64(got[i]-0.25)) > 1e-5 || math.Abs(float64(got[i+1]+0.75)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.25, -0.75)", i/2, got[i], got[i+1])
		}
	}
}

func TestResampler_ShortSources(t *testing.T) {
	t.Parallel()

	empty := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	if n, err := empty.ReadSamples(make([]float32, 16)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("empty source ReadSamples() = %d, %v; want 0, EOF", n, err)
	}

	single := NewResampler(audiotest.NewConstantSource(8000, 1, 1, 0.3), 16000)
	got := drain(t, single, 16)
	if len(got) == 0 {
		t.Fatal("single-frame source produced no output")
	}
	for _, v := range got {
		if math.Abs(float64(v-0.3)) > 1e-6 {
			t.Errorf("single-frame output = %v, want 0.3", v)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 1, 44100, 440)
	src.FailAfter = 100

	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	var err error
	for range 10 {
		if _, err = r.ReadSamples(buf); err != nil {
			break
		}
	}
	if !errors.Is(err, audiotest.ErrMockFailure) {
		t.Errorf("ReadSamples() error = %v, want ErrMockFailure", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(48000, 2, 48000, 440), 44100)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
