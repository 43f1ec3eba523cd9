// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBufferSize is the read chunk used when a caller passes none.
const DefaultBufferSize = 4096

// CollectMono drains src through a Resampler and a MonoMixer and returns
// every sample as one mono slice at targetRate.
//
// The pipeline mirrors what a practice session needs from a decoded file:
// the buffer it feeds stores a single channel at a fixed rate, so the
// conversion happens here, once, at load time.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	samples, err := audio.CollectMono(src, 44100, 4096)
func CollectMono(src Source, targetRate int, bufferSize int) ([]float32, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("collect at %d Hz: %w", targetRate, ErrInvalidSampleRate)
	}
	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	mono := NewMonoMixer(NewResampler(src, targetRate))

	out := make([]float32, 0, targetRate*2)
	buf := make([]float32, bufferSize)
	empty := 0

	for {
		n, err := mono.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("collect samples: %w", err)
		}

		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			return nil, fmt.Errorf("collect samples: %w", io.ErrNoProgress)
		}
	}
}
