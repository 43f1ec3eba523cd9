// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/pitchpractice/utils"
)

// encodeChunk is how many samples are converted per encoder write.
const encodeChunk = 8192

// WriteMono16 writes samples as a mono 16-bit PCM WAV at sampleRate.
// The encoder seeks back to patch the header sizes, so w must be seekable.
func WriteMono16(w io.WriteSeeker, sampleRate int, samples []float32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%d Hz: %w", sampleRate, ErrInvalidSampleRate)
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, 1, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, min(len(samples), encodeChunk)),
		SourceBitDepth: 16,
	}

	for start := 0; start < len(samples); start += encodeChunk {
		chunk := samples[start:min(start+encodeChunk, len(samples))]

		buf.Data = buf.Data[:len(chunk)]
		for i, v := range chunk {
			buf.Data[i] = int(utils.Float32ToInt16(v))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing header: %w", err)
	}
	return nil
}
