// SPDX-License-Identifier: EPL-2.0

package pitchpractice

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ik5/pitchpractice/timedbuf"
)

// Config holds the settings shared by every part of a session.
type Config struct {
	// SampleRate is the one rate used by the buffer, the loader, the
	// recorder and the player.
	SampleRate int

	// DefaultDuration sizes the buffer when the score length is unknown.
	DefaultDuration float64

	// MaxDuration caps buffer growth in seconds. Zero means unbounded.
	MaxDuration float64

	// ChunkSize is the number of samples per capture or playback callback.
	ChunkSize int

	// Logger receives session events. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns 44.1 kHz, a 60 second default, unbounded growth
// and 1024-sample chunks.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		DefaultDuration: timedbuf.DefaultDuration,
		ChunkSize:       1024,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidConfig)
	case !finite(c.DefaultDuration) || c.DefaultDuration <= 0:
		return fmt.Errorf("default duration %v: %w", c.DefaultDuration, ErrInvalidConfig)
	case !finite(c.MaxDuration) || c.MaxDuration < 0:
		return fmt.Errorf("max duration %v: %w", c.MaxDuration, ErrInvalidConfig)
	case c.ChunkSize <= 0:
		return fmt.Errorf("chunk size %d: %w", c.ChunkSize, ErrInvalidConfig)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
