// SPDX-License-Identifier: EPL-2.0

package timedbuf

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultDuration is the expected length, in seconds, to size a buffer with
// when the caller has no score to derive it from.
const DefaultDuration = 60.0

// indexTolerance absorbs float64 rounding in seconds*rate products, so that
// 0.29s at 100Hz addresses sample 29 and not 28. Past one sample it scales
// with the index, since the rounding error of k/rate*rate grows with k.
const (
	indexTolerance    = 1e-9
	relativeTolerance = 1e-12
)

// maxIndex is the highest sample index a time may address.
const maxIndex = math.MaxInt32

// Buffer is a growable mono sample store addressed by time.
//
// The zero value is not usable; construct with New or FromSamples.
type Buffer struct {
	mu         sync.RWMutex
	samples    []float32
	sampleRate int

	// maxCapacity bounds growth in samples; 0 means unbounded.
	maxCapacity int
	maxSeconds  float64
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithMaxDuration caps the buffer at the given number of seconds. Writes that
// would grow past the cap fail with ErrCapacityExceeded. A zero value leaves
// the buffer unbounded.
func WithMaxDuration(seconds float64) Option {
	return func(b *Buffer) {
		b.maxSeconds = seconds
	}
}

// New returns a zero-filled buffer sized for expectedSeconds of audio at
// sampleRate. Callers without a known duration should pass DefaultDuration.
func New(expectedSeconds float64, sampleRate int, opts ...Option) (*Buffer, error) {
	if math.IsNaN(expectedSeconds) || math.IsInf(expectedSeconds, 0) {
		return nil, fmt.Errorf("expected duration %v: %w", expectedSeconds, ErrInvalidTime)
	}
	if expectedSeconds < 0 {
		return nil, fmt.Errorf("expected duration %v: %w", expectedSeconds, ErrInvalidDuration)
	}

	b, err := newBuffer(sampleRate, opts)
	if err != nil {
		return nil, err
	}

	capacity, err := IndexAt(expectedSeconds, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("expected duration %v: %w", expectedSeconds, err)
	}
	if b.maxCapacity > 0 && capacity > b.maxCapacity {
		capacity = b.maxCapacity
	}

	b.samples = make([]float32, capacity)
	return b, nil
}

// FromSamples returns a buffer holding a copy of decoded mono samples at
// sampleRate. Its capacity is len(samples).
func FromSamples(samples []float32, sampleRate int, opts ...Option) (*Buffer, error) {
	b, err := newBuffer(sampleRate, opts)
	if err != nil {
		return nil, err
	}

	if err := b.Replace(samples); err != nil {
		return nil, err
	}
	return b, nil
}

func newBuffer(sampleRate int, opts []Option) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate %d: %w", sampleRate, ErrInvalidSampleRate)
	}

	b := &Buffer{sampleRate: sampleRate}
	for _, opt := range opts {
		opt(b)
	}

	switch {
	case math.IsNaN(b.maxSeconds) || b.maxSeconds < 0:
		return nil, fmt.Errorf("max duration %v: %w", b.maxSeconds, ErrInvalidDuration)
	case b.maxSeconds > 0:
		limit, err := IndexAt(b.maxSeconds, sampleRate)
		if err != nil {
			limit = maxIndex
		}
		b.maxCapacity = max(limit, 1)
	}

	return b, nil
}

// IndexAt converts a time in seconds to a sample index at sampleRate,
// rounding down.
func IndexAt(seconds float64, sampleRate int) (int, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, ErrInvalidTime
	}
	if seconds < 0 {
		return 0, ErrNegativeStartTime
	}

	idx := floorIndex(seconds * float64(sampleRate))
	if idx > maxIndex {
		return 0, ErrInvalidTime
	}
	return int(idx), nil
}

func floorIndex(x float64) float64 {
	return math.Floor(x + max(indexTolerance, math.Abs(x)*relativeTolerance))
}

// SampleRate of the stored stream in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Capacity returns the number of samples currently allocated.
func (b *Buffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.samples)
}

// Seconds returns the capacity expressed in seconds.
func (b *Buffer) Seconds() float64 {
	return float64(b.Capacity()) / float64(b.sampleRate)
}

// Duration returns the capacity expressed as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Write copies chunk into the buffer starting at startSeconds, growing the
// capacity first when the chunk runs past the end. An empty chunk is a no-op.
func (b *Buffer) Write(chunk []float32, startSeconds float64) error {
	start, err := IndexAt(startSeconds, b.sampleRate)
	if err != nil {
		return fmt.Errorf("write at %vs: %w", startSeconds, err)
	}
	if err := b.WriteAt(chunk, start); err != nil {
		return fmt.Errorf("write at %vs: %w", startSeconds, err)
	}
	return nil
}

// WriteAt is Write addressed by sample index. Streams that advance a cursor
// sample by sample use it so that positions never pass through float
// seconds.
func (b *Buffer) WriteAt(chunk []float32, start int) error {
	if start < 0 {
		return ErrNegativeStartTime
	}
	if len(chunk) == 0 {
		return nil
	}

	end := start + len(chunk)
	if start > maxIndex || end > maxIndex {
		return ErrInvalidTime
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if end > len(b.samples) {
		if err := b.growLocked(end); err != nil {
			return err
		}
	}

	copy(b.samples[start:end], chunk)
	return nil
}

// growLocked doubles the capacity until it covers required samples.
// b.mu must be held for writing.
func (b *Buffer) growLocked(required int) error {
	if b.maxCapacity > 0 && required > b.maxCapacity {
		return ErrCapacityExceeded
	}

	capacity := max(len(b.samples), 1)
	for capacity < required {
		if capacity > maxIndex/2 {
			capacity = required
			break
		}
		capacity *= 2
	}
	if b.maxCapacity > 0 && capacity > b.maxCapacity {
		capacity = b.maxCapacity
	}

	grown := make([]float32, capacity)
	copy(grown, b.samples)
	b.samples = grown

	return nil
}

// Read returns a copy of the samples in [startSeconds, endSeconds).
// The range is clamped into the buffer; an empty or inverted range returns
// an empty slice.
func (b *Buffer) Read(startSeconds, endSeconds float64) ([]float32, error) {
	start, err := IndexAt(startSeconds, b.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("read at %vs: %w", startSeconds, err)
	}
	if math.IsNaN(endSeconds) {
		return nil, fmt.Errorf("read until %vs: %w", endSeconds, ErrInvalidTime)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	lo := min(start, len(b.samples))
	hi := max(b.endIndexLocked(endSeconds), lo)

	out := make([]float32, hi-lo)
	copy(out, b.samples[lo:hi])
	return out, nil
}

// ReadInto copies up to len(dst) samples starting at startSeconds into dst
// and returns how many were copied. It does not allocate, which makes it
// suitable for audio callbacks. Samples of dst past the returned count are
// left untouched.
func (b *Buffer) ReadInto(dst []float32, startSeconds float64) (int, error) {
	start, err := IndexAt(startSeconds, b.sampleRate)
	if err != nil {
		return 0, fmt.Errorf("read at %vs: %w", startSeconds, err)
	}
	return b.ReadIntoAt(dst, start)
}

// ReadIntoAt is ReadInto addressed by sample index.
func (b *Buffer) ReadIntoAt(dst []float32, start int) (int, error) {
	if start < 0 {
		return 0, ErrNegativeStartTime
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if start >= len(b.samples) {
		return 0, nil
	}
	return copy(dst, b.samples[start:]), nil
}

func (b *Buffer) endIndexLocked(seconds float64) int {
	n := len(b.samples)
	if seconds <= 0 {
		return 0
	}

	idx := floorIndex(seconds * float64(b.sampleRate))
	if idx >= float64(n) {
		return n
	}
	return int(idx)
}

// Replace discards the current content and capacity and stores a copy of
// samples instead.
func (b *Buffer) Replace(samples []float32) error {
	if b.maxCapacity > 0 && len(samples) > b.maxCapacity {
		return fmt.Errorf("load %d samples: %w", len(samples), ErrCapacityExceeded)
	}

	loaded := make([]float32, len(samples))
	copy(loaded, samples)

	b.mu.Lock()
	b.samples = loaded
	b.mu.Unlock()

	return nil
}

// Snapshot returns a copy of every stored sample.
func (b *Buffer) Snapshot() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}
