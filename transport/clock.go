// SPDX-License-Identifier: EPL-2.0

// Package transport keeps the shared playback position of a practice
// session in logical seconds.
package transport

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// ErrNegativePosition is returned when seeking before zero or to NaN.
var ErrNegativePosition = errors.New("transport position must be a non-negative number")

// Clock is a play/pause/seek clock. The zero value is not usable; create
// one with New.
type Clock struct {
	mu      sync.Mutex
	now     func() time.Time
	playing bool
	base    float64
	anchor  time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the wall clock, mostly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// New returns a paused clock at position zero.
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts advancing the position. Calling it while playing does nothing.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return
	}
	c.playing = true
	c.anchor = c.now()
}

// Pause freezes the position.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playing {
		return
	}
	c.base = c.positionLocked()
	c.playing = false
}

// Stop pauses and rewinds to zero.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.playing = false
	c.base = 0
}

// Seek moves the position to seconds without changing the play state.
func (c *Clock) Seek(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return fmt.Errorf("seek to %v: %w", seconds, ErrNegativePosition)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.base = seconds
	c.anchor = c.now()
	return nil
}

// Position returns the current position in seconds.
func (c *Clock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.positionLocked()
}

// Playing reports whether the position is advancing.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.playing
}

func (c *Clock) positionLocked() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.anchor).Seconds()
}
