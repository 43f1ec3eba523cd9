// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"testing"

	"github.com/ik5/pitchpractice/timedbuf"
	"github.com/ik5/pitchpractice/utils"
)

func newBuffer(t *testing.T, seconds float64, rate int) *timedbuf.Buffer {
	t.Helper()

	buf, err := timedbuf.New(seconds, rate)
	if err != nil {
		t.Fatalf("timedbuf.New() error = %v", err)
	}
	return buf
}

func TestNewRecorder_RateMismatch(t *testing.T) {
	t.Parallel()

	buf := newBuffer(t, 1, 44100)
	if _, err := NewRecorder(buf, 48000); !errors.Is(err, ErrSampleRateMismatch) {
		t.Errorf("NewRecorder() error = %v, want %v", err, ErrSampleRateMismatch)
	}
}

func TestRecorder_Write(t *testing.T) {
	t.Parallel()

	buf := newBuffer(t, 0.1, 100)
	rec, err := NewRecorder(buf, 100)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	if err := rec.Start(0.02); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for _, chunk := range [][]float32{{1, 2}, {3}, {4, 5, 6}} {
		if err := rec.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if got := rec.Position(); got != 0.08 {
		t.Errorf("Position() = %v, want 0.08", got)
	}

	got, err := buf.Read(0, 0.1)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []float32{0, 0, 1, 2, 3, 4, 5, 6, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Read() = %v, want %v", got, want)
		}
	}
}

func TestRecorder_WritePastEndGrows(t *testing.T) {
	t.Parallel()

	buf := newBuffer(t, 0.05, 100)
	rec, err := NewRecorder(buf, 100)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	if err := rec.Start(0.04); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := rec.Write(make([]float32, 20)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.Capacity(); got != 40 {
		t.Errorf("Capacity() = %d, want 40", got)
	}
}

func TestRecorder_WriteBytes(t *testing.T) {
	t.Parallel()

	buf := newBuffer(t, 0.1, 100)
	rec, err := NewRecorder(buf, 100)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	raw := make([]byte, 4*3)
	utils.EncodeFloat32LE(raw, []float32{0.25, -0.5, 0.75})

	// Split inside the second sample.
	if err := rec.WriteBytes(raw[:6]); err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}
	if got := rec.Position(); got != 0.01 {
		t.Errorf("Position() after partial = %v, want 0.01", got)
	}
	if err := rec.WriteBytes(raw[6:]); err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}

	got, err := buf.Read(0, 0.03)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []float32{0.25, -0.5, 0.75}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Read() = %v, want %v", got, want)
		}
	}
}

func TestRecorder_CapacityExceeded(t *testing.T) {
	t.Parallel()

	buf, err := timedbuf.New(0.1, 100, timedbuf.WithMaxDuration(0.1))
	if err != nil {
		t.Fatalf("timedbuf.New() error = %v", err)
	}
	rec, err := NewRecorder(buf, 100)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	if err := rec.Start(0.08); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := rec.Write(make([]float32, 5)); !errors.Is(err, timedbuf.ErrCapacityExceeded) {
		t.Fatalf("Write() error = %v, want %v", err, timedbuf.ErrCapacityExceeded)
	}
	if got := rec.Position(); got != 0.08 {
		t.Errorf("Position() = %v, want cursor unchanged at 0.08", got)
	}
}

func TestRecorder_StartInvalid(t *testing.T) {
	t.Parallel()

	rec, err := NewRecorder(newBuffer(t, 1, 100), 100)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	if err := rec.Start(-1); !errors.Is(err, timedbuf.ErrNegativeStartTime) {
		t.Errorf("Start() error = %v, want %v", err, timedbuf.ErrNegativeStartTime)
	}
}

// lateChunks returns count chunks of size samples whose values never repeat
// within a 1000 sample window, and their concatenation.
func lateChunks(count, size int) ([][]float32, []float32) {
	all := make([]float32, count*size)
	for i := range all {
		all[i] = float32(i%1000 + 1)
	}

	chunks := make([][]float32, count)
	for i := range chunks {
		chunks[i] = all[i*size : (i+1)*size]
	}
	return chunks, all
}

func TestRecorder_ContiguousLateInSession(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a 512s buffer")
	}
	t.Parallel()

	const (
		rate  = 44100
		start = 22579228 - 2000
	)
	chunks, want := lateChunks(100, 441)
	end := start + len(want)

	buf := newBuffer(t, float64(end)/rate, rate)
	rec, err := NewRecorder(buf, rate)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	if err := rec.Start(float64(start) / rate); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i, chunk := range chunks {
		if err := rec.Write(chunk); err != nil {
			t.Fatalf("Write() chunk %d error = %v", i, err)
		}
	}

	snap := buf.Snapshot()
	if len(snap) != end {
		t.Fatalf("Snapshot() has %d samples, want %d", len(snap), end)
	}
	if snap[start-1] != 0 {
		t.Errorf("sample before start = %v, want 0", snap[start-1])
	}
	for i, v := range want {
		if snap[start+i] != v {
			t.Fatalf("sample %d = %v, want %v", start+i, snap[start+i], v)
		}
	}
}
