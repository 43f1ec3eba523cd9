// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/pitchpractice/audio"
	"github.com/ik5/pitchpractice/formats/aiff"
	"github.com/ik5/pitchpractice/formats/mp3"
	"github.com/ik5/pitchpractice/formats/vorbis"
	"github.com/ik5/pitchpractice/formats/wav"
	"github.com/ik5/pitchpractice/timedbuf"
)

// DefaultRegistry returns a registry holding every decoder in this module.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Name, wav.Decoder{})
	reg.Register(mp3.Name, mp3.Decoder{})
	reg.Register(vorbis.Name, vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register(aiff.Name, aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// Loader turns encoded audio into mono buffers at one sample rate.
type Loader struct {
	reg        *audio.Registry
	sampleRate int
	bufferSize int
	opts       []timedbuf.Option
}

// New returns a Loader producing buffers at sampleRate. opts are applied to
// every buffer it builds.
func New(reg *audio.Registry, sampleRate int, opts ...timedbuf.Option) (*Loader, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%d Hz: %w", sampleRate, audio.ErrInvalidSampleRate)
	}
	if reg == nil {
		reg = DefaultRegistry()
	}

	return &Loader{
		reg:        reg,
		sampleRate: sampleRate,
		bufferSize: audio.DefaultBufferSize,
		opts:       opts,
	}, nil
}

// SampleRate of the buffers the loader builds.
func (l *Loader) SampleRate() int { return l.sampleRate }

// Decode reads r as format and returns its samples mixed to mono at the
// loader's sample rate.
func (l *Loader) Decode(r io.Reader, format string) ([]float32, error) {
	dec, ok := l.reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	defer src.Close()

	samples, err := audio.CollectMono(src, l.sampleRate, l.bufferSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return samples, nil
}

// DecodeFile is Decode for a file, choosing the decoder by extension.
func (l *Loader) DecodeFile(path string) ([]float32, error) {
	format := filepath.Ext(path)
	if _, ok := l.reg.ForPath(path); !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	samples, err := l.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Load decodes r into a new buffer whose capacity is the decoded length.
func (l *Loader) Load(r io.Reader, format string) (*timedbuf.Buffer, error) {
	samples, err := l.Decode(r, format)
	if err != nil {
		return nil, err
	}
	return l.build(samples)
}

// LoadFile decodes the file at path into a new buffer.
func (l *Loader) LoadFile(path string) (*timedbuf.Buffer, error) {
	samples, err := l.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return l.build(samples)
}

func (l *Loader) build(samples []float32) (*timedbuf.Buffer, error) {
	buf, err := timedbuf.FromSamples(samples, l.sampleRate, l.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return buf, nil
}

// Load decodes r with the default registry at sampleRate.
func Load(r io.Reader, format string, sampleRate int) (*timedbuf.Buffer, error) {
	l, err := New(nil, sampleRate)
	if err != nil {
		return nil, err
	}
	return l.Load(r, format)
}

// LoadFile decodes the file at path with the default registry at sampleRate.
func LoadFile(path string, sampleRate int) (*timedbuf.Buffer, error) {
	l, err := New(nil, sampleRate)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// Export writes the whole buffer to w as a mono 16-bit PCM WAV.
func Export(w io.WriteSeeker, buf *timedbuf.Buffer) error {
	if err := wav.WriteMono16(w, buf.SampleRate(), buf.Snapshot()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ExportFile writes the buffer to a new WAV file at path.
func ExportFile(path string, buf *timedbuf.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	return Export(f, buf)
}
