// SPDX-License-Identifier: EPL-2.0

package timedbuf

import (
	"sync"
	"testing"
)

// TestBuffer_ConcurrentWritersAndReaders runs disjoint writers, some of them
// forcing growth, against readers of the same regions. Run with -race.
func TestBuffer_ConcurrentWritersAndReaders(t *testing.T) {
	t.Parallel()

	const (
		rate       = 1000
		writers    = 8
		readers    = 4
		regionSize = 250
		iterations = 200
	)

	// Sized for half the writers so the rest grow the buffer mid-run.
	buf, err := New(float64(writers*regionSize/2)/rate, rate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	regionStart := func(w int) float64 {
		return float64(w*regionSize) / rate
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers*iterations)

	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			chunk := make([]float32, regionSize)
			for i := range chunk {
				chunk[i] = float32(w + 1)
			}
			for range iterations {
				if err := buf.Write(chunk, regionStart(w)); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	var torn sync.Map
	for r := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			dst := make([]float32, regionSize)
			for i := range iterations {
				w := (r + i) % writers
				got, err := buf.Read(regionStart(w), regionStart(w+1))
				if err != nil {
					errs <- err
					return
				}
				if !uniform(got, float32(w+1)) {
					torn.Store(w, got)
				}

				n, err := buf.ReadInto(dst, regionStart(w))
				if err != nil {
					errs <- err
					return
				}
				if !uniform(dst[:n], float32(w+1)) {
					torn.Store(w, dst[:n])
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent call error = %v", err)
	}
	torn.Range(func(key, value any) bool {
		t.Errorf("region %v observed a torn write: %v", key, value)
		return true
	})

	if buf.Capacity() < writers*regionSize {
		t.Errorf("Capacity() = %d, want >= %d", buf.Capacity(), writers*regionSize)
	}
	got := buf.Snapshot()
	for w := range writers {
		region := got[w*regionSize : (w+1)*regionSize]
		if !uniform(region, float32(w+1)) || region[0] != float32(w+1) {
			t.Errorf("region %d final content not fully written", w)
		}
	}
}

// uniform reports whether a region is entirely untouched (zero) or entirely
// holds want. Anything else means a reader saw part of a write.
func uniform(region []float32, want float32) bool {
	if len(region) == 0 {
		return true
	}

	first := region[0]
	if first != 0 && first != want {
		return false
	}
	for _, v := range region {
		if v != first {
			return false
		}
	}
	return true
}
