// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/pitchpractice/timedbuf"
)

var _ beep.Streamer = (*Player)(nil)

// Player streams a buffer from a cursor as stereo frames, the mono signal
// copied to both channels. It drains when the cursor reaches the end of
// the buffer.
type Player struct {
	mu      sync.Mutex
	buf     *timedbuf.Buffer
	rate    int
	pos     int
	scratch []float32
	err     error
}

// NewPlayer attaches to buf. sampleRate is the output rate and must equal
// the buffer's.
func NewPlayer(buf *timedbuf.Buffer, sampleRate int) (*Player, error) {
	if sampleRate != buf.SampleRate() {
		return nil, fmt.Errorf("player at %d Hz, buffer at %d Hz: %w",
			sampleRate, buf.SampleRate(), ErrSampleRateMismatch)
	}
	return &Player{buf: buf, rate: sampleRate}, nil
}

// Stream implements beep.Streamer.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return 0, false
	}

	if cap(p.scratch) < len(samples) {
		p.scratch = make([]float32, len(samples))
	}
	window := p.scratch[:len(samples)]

	n, err := p.buf.ReadIntoAt(window, p.pos)
	if err != nil {
		p.err = fmt.Errorf("read at sample %d: %w", p.pos, err)
		return 0, false
	}
	if n == 0 {
		return 0, false
	}

	for i, v := range window[:n] {
		samples[i] = [2]float64{float64(v), float64(v)}
	}
	p.pos += n
	return n, true
}

// Err implements beep.Streamer.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Seek moves the cursor to seconds and clears a previous error.
func (p *Player) Seek(seconds float64) error {
	idx, err := timedbuf.IndexAt(seconds, p.rate)
	if err != nil {
		return fmt.Errorf("seek to %vs: %w", seconds, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pos = idx
	p.err = nil
	return nil
}

// Position is the cursor in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return float64(p.pos) / float64(p.rate)
}
