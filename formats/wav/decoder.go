// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/pitchpractice/audio"
)

// Name is the registry key for this format.
const Name = "wav"

// Format tags accepted in the fmt chunk.
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode validates the RIFF/WAVE header and returns a Source over the PCM
// data chunk. Readers that cannot seek are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.AsReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("seeking to PCM data: %w", err)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("format tag %d: %w", dec.WavAudioFormat, ErrNotPCM)
	}

	src, err := audio.NewPCMSource(dec, dec.Format(), int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if c, ok := r.(io.Closer); ok {
		src.WithCloser(c)
	}
	return src, nil
}
