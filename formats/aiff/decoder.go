// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/pitchpractice/audio"
)

// Name is the registry key for this format.
const Name = "aiff"

type Decoder struct{}

// Decode validates the FORM/AIFF header and returns a Source over the sound
// data. Readers that cannot seek are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.AsReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading AIFF info: %w", err)
	}

	format := dec.Format()
	if format == nil || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	src, err := audio.NewPCMSource(dec, format, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if c, ok := r.(io.Closer); ok {
		src.WithCloser(c)
	}
	return src, nil
}
