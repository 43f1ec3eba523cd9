// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"sync"

	"github.com/ik5/pitchpractice/timedbuf"
	"github.com/ik5/pitchpractice/utils"
)

// Recorder appends capture chunks to a buffer at consecutive positions.
type Recorder struct {
	mu      sync.Mutex
	buf     *timedbuf.Buffer
	rate    int
	start   int
	written int
	scratch []float32
	partial []byte
}

// NewRecorder attaches to buf. sampleRate is the capture rate and must
// equal the buffer's.
func NewRecorder(buf *timedbuf.Buffer, sampleRate int) (*Recorder, error) {
	if sampleRate != buf.SampleRate() {
		return nil, fmt.Errorf("recorder at %d Hz, buffer at %d Hz: %w",
			sampleRate, buf.SampleRate(), ErrSampleRateMismatch)
	}
	return &Recorder{buf: buf, rate: sampleRate}, nil
}

// Start moves the cursor to atSeconds. The next chunk lands there.
func (r *Recorder) Start(atSeconds float64) error {
	idx, err := timedbuf.IndexAt(atSeconds, r.rate)
	if err != nil {
		return fmt.Errorf("start at %vs: %w", atSeconds, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.start = idx
	r.written = 0
	r.partial = r.partial[:0]
	return nil
}

// Write stores chunk at the cursor and advances it by len(chunk) samples.
// On error the cursor does not move.
func (r *Recorder) Write(chunk []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeLocked(chunk)
}

func (r *Recorder) writeLocked(chunk []float32) error {
	at := r.start + r.written
	if err := r.buf.WriteAt(chunk, at); err != nil {
		return fmt.Errorf("write at sample %d: %w", at, err)
	}
	r.written += len(chunk)
	return nil
}

// WriteBytes decodes little-endian float32 samples, the layout capture
// devices deliver, and writes them like Write. A trailing partial sample is
// held until the next call.
func (r *Recorder) WriteBytes(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.partial) > 0 {
		p = append(append([]byte(nil), r.partial...), p...)
	}

	n := len(p) / 4
	if cap(r.scratch) < n {
		r.scratch = make([]float32, n)
	}
	samples := r.scratch[:utils.DecodeFloat32LE(r.scratch[:n], p)]

	if err := r.writeLocked(samples); err != nil {
		return err
	}

	r.partial = append(r.partial[:0], p[4*n:]...)
	return nil
}

// Position is the cursor in seconds.
func (r *Recorder) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return float64(r.start+r.written) / float64(r.rate)
}
