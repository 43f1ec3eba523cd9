// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/pitchpractice/audio"
	"github.com/ik5/pitchpractice/utils"
)

// Name is the registry key for this format.
const Name = "mp3"

// go-mp3 always decodes to interleaved stereo 16-bit little-endian PCM.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is the subset of gomp3.Decoder the source needs.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

type source struct {
	dec    mp3Reader
	buf    []byte
	closer io.Closer
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	switch err {
	case nil:
	case io.ErrUnexpectedEOF, io.EOF:
		err = io.EOF
	default:
		return 0, fmt.Errorf("%w", err)
	}

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:])))
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src := &source{
		dec: dec,
		buf: make([]byte, 8192),
	}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}
