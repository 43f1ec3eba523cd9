// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/pitchpractice/utils"
)

// lowpassAlpha is the one-pole coefficient applied to source frames when
// downsampling.
const lowpassAlpha = 0.5

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row
// before it is treated as exhausted.
const maxEmptyReads = 16

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// When the rates already match it passes samples through untouched.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames holds t-1, t0, t+1, t+2 around the interpolation point.
	frames [4][]float32
	valid  [4]bool
	primed bool
	eof    bool

	// pos is the fractional position between frames[1] and frames[2].
	pos float64

	srcBuf []float32

	lowpass  bool
	lpState  []float32
	lpPrimed bool
}

// NewResampler wraps src so that it produces dstRate Hz. A dstRate that is
// not positive leaves the stream at its source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		srcBuf:   make([]float32, channels),
		lowpass:  ratio > 1.0,
		lpState:  make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one source frame into dst. It reports false once the
// source has no more complete frames.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for range maxEmptyReads {
		n, err := r.src.ReadSamples(r.srcBuf)
		if errors.Is(err, io.EOF) {
			r.eof = true
			err = nil
		}
		if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n >= r.channels {
			copy(dst, r.srcBuf)
			r.filter(dst)
			return true, nil
		}
		if r.eof {
			return false, nil
		}
	}

	r.eof = true
	return false, nil
}

// filter applies the anti-aliasing low-pass when downsampling.
func (r *Resampler) filter(frame []float32) {
	if !r.lowpass {
		return
	}
	if !r.lpPrimed {
		copy(r.lpState, frame)
		r.lpPrimed = true
	}

	for c := range frame {
		frame[c] = lowpassAlpha*frame[c] + (1-lowpassAlpha)*r.lpState[c]
		r.lpState[c] = frame[c]
	}
}

// prime fills the interpolation window. The first source frame doubles as
// t-1, so output starts exactly on it.
func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.frames[0], r.frames[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < len(r.frames) && !r.eof; i++ {
		if r.valid[i], err = r.readFrame(r.frames[i]); err != nil {
			return err
		}
	}

	// A single-frame source still yields a held value.
	if !r.valid[2] {
		copy(r.frames[2], r.frames[1])
		r.valid[2] = true
	}

	r.primed = true
	return nil
}

// advance slides the window forward by one source frame.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.valid[0], r.valid[1], r.valid[2], r.valid[3] = r.valid[1], r.valid[2], r.valid[3], false

	if !r.eof {
		ok, err := r.readFrame(r.frames[3])
		if err != nil {
			return err
		}
		r.valid[3] = ok
	}

	if !r.valid[2] {
		return io.EOF
	}
	return nil
}

func (r *Resampler) interpolate(dst []float32, x float32) {
	for c := range r.channels {
		y1 := r.frames[1][c]
		y2 := r.frames[2][c]

		y0 := y1
		if r.valid[0] {
			y0 = r.frames[0][c]
		}
		y3 := y2
		if r.valid[3] {
			y3 = r.frames[3][c]
		}

		dst[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
	}
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.ratio == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return r.partial(written, err)
			}
		}

		r.interpolate(dst[written*r.channels:], float32(r.pos))
		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

func (r *Resampler) partial(frames int, err error) (int, error) {
	if errors.Is(err, io.EOF) && frames == 0 {
		return 0, io.EOF
	}
	return frames * r.channels, err
}
