// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// ErrUnsupportedBitDepth is returned for integer PCM that is not 8, 16, 24
// or 32 bits deep.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// PCMReader is the reading half of the go-audio WAV and AIFF decoders.
type PCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// PCMSource adapts a go-audio PCMReader to Source, normalizing integer
// samples to [-1, 1].
type PCMSource struct {
	dec      PCMReader
	format   *goaudio.Format
	bitDepth int
	offset   int
	scale    float32
	intBuf   *goaudio.IntBuffer
	closer   io.Closer
}

// NewPCMSource wraps dec, which yields interleaved integer samples of
// bitDepth bits in format. go-audio hands out 8-bit samples unsigned, so
// those are centred on 128.
func NewPCMSource(dec PCMReader, format *goaudio.Format, bitDepth int) (*PCMSource, error) {
	offset := 0
	switch bitDepth {
	case 8:
		offset = 128
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d-bit: %w", bitDepth, ErrUnsupportedBitDepth)
	}
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrNoChannels
	}

	return &PCMSource{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		offset:   offset,
		scale:    1 / float32(int64(1)<<(bitDepth-1)),
	}, nil
}

// WithCloser makes Close release c, typically the file being decoded.
func (s *PCMSource) WithCloser(c io.Closer) *PCMSource {
	s.closer = c
	return s
}

func (s *PCMSource) SampleRate() int { return s.format.SampleRate }
func (s *PCMSource) Channels() int   { return s.format.NumChannels }

func (s *PCMSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return DefaultBufferSize
}

func (s *PCMSource) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	// The go-audio decoders fill the whole buffer unless the data ran out.
	if n < len(dst) || errors.Is(err, io.EOF) {
		return n, io.EOF
	}
	return n, nil
}

// AsReadSeeker returns r itself when it can seek, otherwise an in-memory
// copy of its content. The go-audio decoders need to seek between chunks.
func AsReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
